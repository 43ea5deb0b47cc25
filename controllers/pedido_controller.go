package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trofybr/trofy-pedidos-api/metrics"
	"github.com/trofybr/trofy-pedidos-api/models"
	"github.com/trofybr/trofy-pedidos-api/services"
	"github.com/trofybr/trofy-pedidos-api/stores"
	"gorm.io/gorm"
)

// PedidoController orchestrates the order pipeline: persist, mirror to the
// spreadsheet, notify the IA service
type PedidoController struct {
	store    *stores.PedidoStore
	mirror   services.MirrorService
	notifier services.NotifierService
}

// NewPedidoController creates a new PedidoController with its collaborators
func NewPedidoController(store *stores.PedidoStore, mirror services.MirrorService, notifier services.NotifierService) *PedidoController {
	return &PedidoController{store: store, mirror: mirror, notifier: notifier}
}

// CreatePedidoRequest represents the request body for creating an order.
// Any status sent by the caller is ignored.
type CreatePedidoRequest struct {
	Nome           string  `json:"nome"`
	Email          string  `json:"email"`
	Telefone       string  `json:"telefone"`
	CPF            string  `json:"cpf"`
	Endereco       string  `json:"endereco"`
	Cidade         string  `json:"cidade"`
	Estado         string  `json:"estado"`
	CEP            string  `json:"cep"`
	BonusEscolhido *string `json:"bonus_escolhido"`
	TipoTrofeu     string  `json:"tipo_trofeu"`
}

// UpdateStatusRequest represents the request body for a status update.
// Each field is independently optional; nil leaves the prior value.
type UpdateStatusRequest struct {
	Status   *string `json:"status"`
	Rastreio *string `json:"rastreio"`
}

// CreatePedido handles POST /pedidos
func (pc *PedidoController) CreatePedido(c *gin.Context) {
	var req CreatePedidoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Corpo da requisição inválido",
		})
		return
	}

	if strings.TrimSpace(req.TipoTrofeu) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "O campo tipo_trofeu é obrigatório e não pode estar vazio",
		})
		return
	}

	pedido := models.Pedido{
		Nome:           req.Nome,
		Email:          req.Email,
		Telefone:       req.Telefone,
		CPF:            req.CPF,
		Endereco:       req.Endereco,
		Cidade:         req.Cidade,
		Estado:         req.Estado,
		CEP:            req.CEP,
		BonusEscolhido: req.BonusEscolhido,
		Status:         models.StatusNovoPedido,
		TipoTrofeu:     req.TipoTrofeu,
	}

	id, err := pc.store.Insert(&pedido)
	if err != nil {
		log.Printf("Erro ao criar pedido: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Erro ao processar o pedido",
		})
		return
	}
	metrics.PedidosCriadosTotal.Inc()

	// Persistence succeeded; the mirror and notify steps are best-effort
	// and reported per step instead of failing the whole request.
	mirrored, notified := pc.fanOut(c, &pedido, id, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"id":      id,
		"steps": gin.H{
			"persisted": true,
			"mirrored":  mirrored,
			"notified":  notified,
		},
	})
}

// UpdateStatus handles PUT /pedidos/:id
func (pc *PedidoController) UpdateStatus(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "ID de pedido inválido",
		})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Corpo da requisição inválido",
		})
		return
	}

	pedido, err := pc.store.UpdateStatus(id, req.Status, req.Rastreio)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Pedido não encontrado",
			})
			return
		}
		log.Printf("Erro ao atualizar pedido: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Erro ao atualizar o pedido",
		})
		return
	}
	metrics.StatusAtualizadosTotal.Inc()

	mirrored, notified := pc.fanOut(c, pedido, id, false)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"steps": gin.H{
			"persisted": true,
			"mirrored":  mirrored,
			"notified":  notified,
		},
	})
}

// ListPedidos handles GET /pedidos
func (pc *PedidoController) ListPedidos(c *gin.Context) {
	pedidos, err := pc.store.List()
	if err != nil {
		log.Printf("Erro ao buscar pedidos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Erro ao buscar pedidos",
		})
		return
	}
	c.JSON(http.StatusOK, pedidos)
}

// History handles GET /pedidos/:id/historico
func (pc *PedidoController) History(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "ID de pedido inválido",
		})
		return
	}

	if _, err := pc.store.Get(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Pedido não encontrado",
			})
			return
		}
		log.Printf("Erro ao buscar pedido: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Erro ao buscar histórico",
		})
		return
	}

	historico, err := pc.store.History(id)
	if err != nil {
		log.Printf("Erro ao buscar histórico: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Erro ao buscar histórico",
		})
		return
	}
	c.JSON(http.StatusOK, historico)
}

// Health handles GET /health - static liveness, no dependency checks
func (pc *PedidoController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "API Trofy",
		"version":   "1.0.0",
	})
}

// Teste handles GET /teste (diagnostic only)
func (pc *PedidoController) Teste(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"mensagem": "API está funcionando corretamente!",
		"data":     time.Now().UTC().Format(time.RFC3339),
	})
}

// IAHealth handles GET /ia/health, probing the notifier endpoint
func (pc *PedidoController) IAHealth(c *gin.Context) {
	c.JSON(http.StatusOK, pc.notifier.CheckHealth(c.Request.Context()))
}

// fanOut runs the best-effort mirror and notify steps for a persisted
// order, returning their outcomes
func (pc *PedidoController) fanOut(c *gin.Context, pedido *models.Pedido, id uint, created bool) (mirrored, notified bool) {
	ctx := c.Request.Context()

	var err error
	if created {
		mirrored, err = pc.mirror.AddPedido(ctx, id, pedido)
	} else {
		var rastreio string
		if pedido.Rastreio != nil {
			rastreio = *pedido.Rastreio
		}
		mirrored, err = pc.mirror.UpdatePedido(ctx, id, pedido.Status, rastreio)
	}
	if err != nil {
		metrics.PlanilhaFalhasTotal.Inc()
		log.Printf("Erro ao espelhar pedido %d na planilha: %v", id, err)
	}

	result, err := pc.notifier.Notify(ctx, pedido)
	switch {
	case err != nil:
		metrics.NotificacaoFalhasTotal.Inc()
		log.Printf("Erro ao notificar IA para o pedido %d: %v", id, err)
	case !result.Sent:
		metrics.NotificacaoPuladasTotal.Inc()
	default:
		notified = true
	}
	return mirrored, notified
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
