package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/trofybr/trofy-pedidos-api/config"
	"github.com/trofybr/trofy-pedidos-api/models"
	"github.com/trofybr/trofy-pedidos-api/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type integrationEnv struct {
	router   *gin.Engine
	mirror   *services.MockMirror
	notifier *services.MockNotifier
}

func setupIntegration(t *testing.T) *integrationEnv {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Pedido{}, &models.HistoricoStatus{}, &models.Link{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	cfg := &config.Config{Port: "3000", DBPath: ":memory:"}
	mirror := services.NewMockMirror()
	notifier := services.NewMockNotifier()
	return &integrationEnv{
		router:   setupRouter(cfg, db, mirror, notifier),
		mirror:   mirror,
		notifier: notifier,
	}
}

func (e *integrationEnv) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// Full order lifecycle: create, list, update status, list again.
func TestOrderLifecycle(t *testing.T) {
	env := setupIntegration(t)

	// POST /pedidos
	w := env.do(http.MethodPost, "/pedidos", map[string]interface{}{
		"nome":        "A",
		"email":       "a@a.com",
		"telefone":    "11999999999",
		"cpf":         "000.000.000-00",
		"endereco":    "R1",
		"cidade":      "C",
		"estado":      "S",
		"cep":         "00000-000",
		"tipo_trofeu": "Gold",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var created map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created["success"].(bool))
	assert.Equal(t, float64(1), created["id"])

	// GET /pedidos shows the new order with the forced initial status
	w = env.do(http.MethodGet, "/pedidos", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var pedidos []map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &pedidos))
	assert.Len(t, pedidos, 1)
	assert.Equal(t, float64(1), pedidos[0]["id"])
	assert.Equal(t, "Novo pedido", pedidos[0]["status"])

	// PUT /pedidos/1
	w = env.do(http.MethodPut, "/pedidos/1", map[string]interface{}{
		"status":   "Enviado",
		"rastreio": "BR123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.True(t, updated["success"].(bool))

	// GET /pedidos reflects the change
	w = env.do(http.MethodGet, "/pedidos", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &pedidos))
	assert.Equal(t, "Enviado", pedidos[0]["status"])
	assert.Equal(t, "BR123", pedidos[0]["rastreio"])

	// Both collaborators saw both events
	assert.True(t, env.mirror.Added(1))
	assert.Len(t, env.mirror.Updates(), 1)
	assert.Len(t, env.notifier.Notifications(), 2)
}

func TestCreateWithoutTipoTrofeuPersistsNothing(t *testing.T) {
	env := setupIntegration(t)

	w := env.do(http.MethodPost, "/pedidos", map[string]interface{}{
		"nome":     "A",
		"email":    "a@a.com",
		"telefone": "11999999999",
		"cpf":      "000.000.000-00",
		"endereco": "R1",
		"cidade":   "C",
		"estado":   "S",
		"cep":      "00000-000",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodGet, "/pedidos", nil)
	var pedidos []map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &pedidos))
	assert.Empty(t, pedidos)
	assert.Empty(t, env.notifier.Notifications())
}

func TestDiagnosticEndpoints(t *testing.T) {
	env := setupIntegration(t)

	w := env.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var health map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "API Trofy", health["service"])

	w = env.do(http.MethodGet, "/teste", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/ia/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLinksRoutesAreWired(t *testing.T) {
	env := setupIntegration(t)

	w := env.do(http.MethodPost, "/api/links", map[string]interface{}{
		"title": "Painel",
		"url":   "https://painel.example.com",
	})
	assert.Equal(t, http.StatusCreated, w.Code, "without LINKS_JWT_SECRET the auth middleware is a passthrough")

	w = env.do(http.MethodGet, "/api/links", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
