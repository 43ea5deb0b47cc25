package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/trofybr/trofy-pedidos-api/models"
)

// APIClient is the typed HTTP client the admin dashboard uses to talk to
// the order service
type APIClient struct {
	BaseURL string
	HTTP    *http.Client
}

// NewAPIClient creates a client for the given base URL
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// StepOutcomes reports which pipeline steps succeeded on the server
type StepOutcomes struct {
	Persisted bool `json:"persisted"`
	Mirrored  bool `json:"mirrored"`
	Notified  bool `json:"notified"`
}

// UpdateResponse is the body of a successful status update
type UpdateResponse struct {
	Success bool         `json:"success"`
	Steps   StepOutcomes `json:"steps"`
	Error   string       `json:"error,omitempty"`
}

// HealthResponse is the body of the service liveness endpoint
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	Version   string `json:"version"`
}

// CheckHealth verifies the API is reachable
func (c *APIClient) CheckHealth(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.get(ctx, "/health", &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// ListPedidos fetches all orders
func (c *APIClient) ListPedidos(ctx context.Context) ([]models.PedidoView, error) {
	var pedidos []models.PedidoView
	if err := c.get(ctx, "/pedidos", &pedidos); err != nil {
		return nil, err
	}
	return pedidos, nil
}

// History fetches the status history of one order
func (c *APIClient) History(ctx context.Context, id uint) ([]models.HistoricoStatus, error) {
	var historico []models.HistoricoStatus
	if err := c.get(ctx, fmt.Sprintf("/pedidos/%d/historico", id), &historico); err != nil {
		return nil, err
	}
	return historico, nil
}

// UpdateStatus submits a status and/or tracking-code change. Nil fields are
// sent as JSON null and leave the server-side value unchanged.
func (c *APIClient) UpdateStatus(ctx context.Context, id uint, status, rastreio *string) (*UpdateResponse, error) {
	body, err := json.Marshal(map[string]*string{
		"status":   status,
		"rastreio": rastreio,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		fmt.Sprintf("%s/pedidos/%d", c.BaseURL, id), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro de conexão com a API: %w", err)
	}
	defer resp.Body.Close()

	var update UpdateResponse
	if err := json.NewDecoder(resp.Body).Decode(&update); err != nil {
		return nil, fmt.Errorf("resposta inválida da API: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if update.Error != "" {
			return nil, fmt.Errorf("erro %d: %s", resp.StatusCode, update.Error)
		}
		return nil, fmt.Errorf("erro %d ao atualizar o pedido", resp.StatusCode)
	}
	return &update, nil
}

func (c *APIClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("erro de conexão com a API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("erro na API: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
