package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/trofybr/trofy-pedidos-api/stores"
	"gorm.io/gorm"
)

// LinkController exposes the bookmark CRUD under /api/links. It is
// independent of the order lifecycle.
type LinkController struct {
	store *stores.LinkStore
}

// NewLinkController creates a new LinkController
func NewLinkController(store *stores.LinkStore) *LinkController {
	return &LinkController{store: store}
}

// List handles GET /api/links
func (lc *LinkController) List(c *gin.Context) {
	links, err := lc.store.FindAll()
	if err != nil {
		log.Printf("Erro ao buscar links: %v", err)
		linkError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao buscar links")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": links})
}

// Get handles GET /api/links/:id
func (lc *LinkController) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		linkError(c, http.StatusBadRequest, "VALIDATION_ERROR", "ID inválido")
		return
	}

	link, err := lc.store.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			linkError(c, http.StatusNotFound, "NOT_FOUND", "Link não encontrado")
			return
		}
		log.Printf("Erro ao buscar link: %v", err)
		linkError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao buscar link")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": link})
}

// Create handles POST /api/links
func (lc *LinkController) Create(c *gin.Context) {
	var input stores.CreateLinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		linkError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Corpo da requisição inválido")
		return
	}

	link, err := lc.store.Create(input)
	if err != nil {
		linkError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": link})
}

// Update handles PUT /api/links/:id
func (lc *LinkController) Update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		linkError(c, http.StatusBadRequest, "VALIDATION_ERROR", "ID inválido")
		return
	}

	var input stores.UpdateLinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		linkError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Corpo da requisição inválido")
		return
	}

	link, err := lc.store.Update(id, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			linkError(c, http.StatusNotFound, "NOT_FOUND", "Link não encontrado")
			return
		}
		if isValidationError(err) {
			linkError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		log.Printf("Erro ao atualizar link: %v", err)
		linkError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao atualizar link")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": link})
}

// Delete handles DELETE /api/links/:id
func (lc *LinkController) Delete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		linkError(c, http.StatusBadRequest, "VALIDATION_ERROR", "ID inválido")
		return
	}

	deleted, err := lc.store.Delete(id)
	if err != nil {
		log.Printf("Erro ao remover link: %v", err)
		linkError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao remover link")
		return
	}
	if !deleted {
		linkError(c, http.StatusNotFound, "NOT_FOUND", "Link não encontrado")
		return
	}
	c.Status(http.StatusNoContent)
}

func linkError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func isValidationError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "invalid") || strings.Contains(msg, "no valid fields")
}
