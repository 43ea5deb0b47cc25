package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/trofybr/trofy-pedidos-api/models"
	"github.com/trofybr/trofy-pedidos-api/services"
	"github.com/trofybr/trofy-pedidos-api/stores"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type pedidoTestEnv struct {
	router   *gin.Engine
	store    *stores.PedidoStore
	mirror   *services.MockMirror
	notifier *services.MockNotifier
}

func setupPedidoTest(t *testing.T) *pedidoTestEnv {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Pedido{}, &models.HistoricoStatus{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	env := &pedidoTestEnv{
		store:    stores.NewPedidoStore(db),
		mirror:   services.NewMockMirror(),
		notifier: services.NewMockNotifier(),
	}

	controller := NewPedidoController(env.store, env.mirror, env.notifier)
	router := gin.New()
	router.POST("/pedidos", controller.CreatePedido)
	router.PUT("/pedidos/:id", controller.UpdateStatus)
	router.GET("/pedidos", controller.ListPedidos)
	router.GET("/pedidos/:id/historico", controller.History)
	router.GET("/health", controller.Health)
	router.GET("/teste", controller.Teste)
	env.router = router
	return env
}

func validCreateBody() map[string]interface{} {
	return map[string]interface{}{
		"nome":        "Ana Souza",
		"email":       "ana@example.com",
		"telefone":    "11999999999",
		"cpf":         "000.000.000-00",
		"endereco":    "Rua das Flores, 1",
		"cidade":      "São Paulo",
		"estado":      "SP",
		"cep":         "00000-000",
		"tipo_trofeu": "Gold",
	}
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreatePedido(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, env *pedidoTestEnv, response map[string]interface{})
	}{
		{
			name:           "successfully create order",
			body:           validCreateBody(),
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, env *pedidoTestEnv, response map[string]interface{}) {
				assert.True(t, response["success"].(bool))
				assert.Equal(t, float64(1), response["id"])

				steps := response["steps"].(map[string]interface{})
				assert.True(t, steps["persisted"].(bool))
				assert.True(t, steps["mirrored"].(bool))
				assert.True(t, steps["notified"].(bool))

				saved, err := env.store.Get(1)
				assert.NoError(t, err)
				assert.Equal(t, models.StatusNovoPedido, saved.Status)
				assert.True(t, env.mirror.Added(1))
				assert.Len(t, env.notifier.Notifications(), 1)
			},
		},
		{
			name: "status in request body is ignored",
			body: func() map[string]interface{} {
				b := validCreateBody()
				b["status"] = "Entregue"
				return b
			}(),
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, env *pedidoTestEnv, response map[string]interface{}) {
				saved, err := env.store.Get(1)
				assert.NoError(t, err)
				assert.Equal(t, models.StatusNovoPedido, saved.Status,
					"creation always forces the initial status")
			},
		},
		{
			name: "missing tipo_trofeu",
			body: func() map[string]interface{} {
				b := validCreateBody()
				delete(b, "tipo_trofeu")
				return b
			}(),
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, env *pedidoTestEnv, response map[string]interface{}) {
				assert.False(t, response["success"].(bool))
				assert.Contains(t, response["error"].(string), "tipo_trofeu")

				views, err := env.store.List()
				assert.NoError(t, err)
				assert.Empty(t, views, "validation failures must not persist rows")
				assert.Empty(t, env.notifier.Notifications(), "validation failures have no side effects")
			},
		},
		{
			name: "blank tipo_trofeu",
			body: func() map[string]interface{} {
				b := validCreateBody()
				b["tipo_trofeu"] = "   "
				return b
			}(),
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, env *pedidoTestEnv, response map[string]interface{}) {
				views, err := env.store.List()
				assert.NoError(t, err)
				assert.Empty(t, views)
			},
		},
		{
			name: "missing nome surfaces as store failure",
			body: func() map[string]interface{} {
				b := validCreateBody()
				delete(b, "nome")
				return b
			}(),
			expectedStatus: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, env *pedidoTestEnv, response map[string]interface{}) {
				assert.False(t, response["success"].(bool))
				assert.Equal(t, "Erro ao processar o pedido", response["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupPedidoTest(t)

			w := doJSON(env.router, http.MethodPost, "/pedidos", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			if tt.checkResponse != nil {
				tt.checkResponse(t, env, response)
			}
		})
	}
}

func TestCreatePedidoDownstreamFailuresAreReported(t *testing.T) {
	env := setupPedidoTest(t)
	env.mirror.AddErr = fmt.Errorf("planilha indisponível")
	env.notifier.NotifyErr = fmt.Errorf("IA fora do ar")

	w := doJSON(env.router, http.MethodPost, "/pedidos", validCreateBody())
	assert.Equal(t, http.StatusOK, w.Code,
		"once persistence succeeded, downstream failures no longer fail the request")

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response["success"].(bool))

	steps := response["steps"].(map[string]interface{})
	assert.True(t, steps["persisted"].(bool))
	assert.False(t, steps["mirrored"].(bool))
	assert.False(t, steps["notified"].(bool))

	saved, err := env.store.Get(1)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusNovoPedido, saved.Status, "the order is durable regardless")
}

func TestCreatePedidoUnconfiguredCollaborators(t *testing.T) {
	env := setupPedidoTest(t)
	env.mirror.Unconfigured = true
	env.notifier.Skipped = true

	w := doJSON(env.router, http.MethodPost, "/pedidos", validCreateBody())
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response["success"].(bool))

	steps := response["steps"].(map[string]interface{})
	assert.False(t, steps["mirrored"].(bool))
	assert.False(t, steps["notified"].(bool))
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		body           map[string]interface{}
		expectedStatus int
		check          func(t *testing.T, env *pedidoTestEnv)
	}{
		{
			name:           "update status and tracking",
			path:           "/pedidos/1",
			body:           map[string]interface{}{"status": "Enviado", "rastreio": "BR123"},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, env *pedidoTestEnv) {
				saved, err := env.store.Get(1)
				assert.NoError(t, err)
				assert.Equal(t, "Enviado", saved.Status)
				assert.Equal(t, "BR123", *saved.Rastreio)

				updates := env.mirror.Updates()
				assert.Len(t, updates, 1)
				assert.Equal(t, "Enviado", updates[0].Status)
				assert.Equal(t, "BR123", updates[0].Rastreio)
				assert.Len(t, env.notifier.Notifications(), 1)
			},
		},
		{
			name:           "tracking only leaves status untouched",
			path:           "/pedidos/1",
			body:           map[string]interface{}{"rastreio": "BR999"},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, env *pedidoTestEnv) {
				saved, err := env.store.Get(1)
				assert.NoError(t, err)
				assert.Equal(t, models.StatusNovoPedido, saved.Status)
				assert.Equal(t, "BR999", *saved.Rastreio)
			},
		},
		{
			name:           "status only leaves tracking untouched",
			path:           "/pedidos/1",
			body:           map[string]interface{}{"status": "Cancelado"},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, env *pedidoTestEnv) {
				saved, err := env.store.Get(1)
				assert.NoError(t, err)
				assert.Equal(t, "Cancelado", saved.Status)
				assert.Nil(t, saved.Rastreio)
			},
		},
		{
			name:           "unknown id",
			path:           "/pedidos/42",
			body:           map[string]interface{}{"status": "Enviado"},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "non-numeric id",
			path:           "/pedidos/abc",
			body:           map[string]interface{}{"status": "Enviado"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupPedidoTest(t)
			w := doJSON(env.router, http.MethodPost, "/pedidos", validCreateBody())
			assert.Equal(t, http.StatusOK, w.Code)
			env.notifier.Clear()

			w = doJSON(env.router, http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var response map[string]interface{}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.True(t, response["success"].(bool))
			}
			if tt.check != nil {
				tt.check(t, env)
			}
		})
	}
}

func TestListPedidos(t *testing.T) {
	env := setupPedidoTest(t)

	for _, nome := range []string{"Primeiro", "Segundo"} {
		body := validCreateBody()
		body["nome"] = nome
		w := doJSON(env.router, http.MethodPost, "/pedidos", body)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(env.router, http.MethodGet, "/pedidos", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var pedidos []map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &pedidos))
	assert.Len(t, pedidos, 2)
	assert.Equal(t, "Segundo", pedidos[0]["nome"], "newest order comes first")
	assert.Regexp(t, `^\d{2}/\d{2}/\d{4} \d{2}:\d{2}$`, pedidos[0]["criado_em"])
}

func TestPedidoHistory(t *testing.T) {
	env := setupPedidoTest(t)

	w := doJSON(env.router, http.MethodPost, "/pedidos", validCreateBody())
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(env.router, http.MethodPut, "/pedidos/1", map[string]interface{}{"status": "Enviado"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(env.router, http.MethodGet, "/pedidos/1/historico", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var historico []map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &historico))
	assert.Len(t, historico, 2)
	assert.Equal(t, "Enviado", historico[0]["novo_status"])

	w = doJSON(env.router, http.MethodGet, "/pedidos/42/historico", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	env := setupPedidoTest(t)

	w := doJSON(env.router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
	assert.Equal(t, "API Trofy", response["service"])
	assert.Equal(t, "1.0.0", response["version"])
	assert.NotEmpty(t, response["timestamp"])
}

func TestTesteEndpoint(t *testing.T) {
	env := setupPedidoTest(t)

	w := doJSON(env.router, http.MethodGet, "/teste", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "API está funcionando corretamente!", response["mensagem"])
	assert.NotEmpty(t, response["data"])
}
