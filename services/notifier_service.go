package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/trofybr/trofy-pedidos-api/models"
)

const notifierPlaceholderHost = "seuservidor.local"

// NotifyResult reports the outcome of a notification attempt. A skipped
// delivery (unconfigured endpoint) is not an error.
type NotifyResult struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message,omitempty"`
}

// HealthStatus is the structured result of a notifier health probe.
// Failures are captured here rather than raised.
type HealthStatus struct {
	Status   string                 `json:"status"`
	Message  string                 `json:"message,omitempty"`
	Response map[string]interface{} `json:"response,omitempty"`
}

// NotifierService pushes order-state changes to the external IA service
type NotifierService interface {
	// Notify performs a single, at-most-once POST of the order state.
	// Network or non-2xx failures are returned as errors; there is no retry.
	Notify(ctx context.Context, pedido *models.Pedido) (*NotifyResult, error)

	// CheckHealth probes the IA service health endpoint.
	CheckHealth(ctx context.Context) HealthStatus
}

// IANotifier implements NotifierService over HTTP
type IANotifier struct {
	baseURL      string
	client       *http.Client
	healthClient *http.Client
}

// NewIANotifier creates a notifier for the given base URL. The notify call
// carries a 5 second timeout, the health probe 3 seconds.
func NewIANotifier(baseURL string) *IANotifier {
	return &IANotifier{
		baseURL:      strings.TrimRight(baseURL, "/"),
		client:       &http.Client{Timeout: 5 * time.Second},
		healthClient: &http.Client{Timeout: 3 * time.Second},
	}
}

type notifyPayload struct {
	Nome       string  `json:"nome"`
	Telefone   string  `json:"telefone"`
	Status     string  `json:"status"`
	TipoTrofeu string  `json:"tipo_trofeu"`
	Rastreio   *string `json:"rastreio"`
	Timestamp  string  `json:"timestamp"`
}

func (n *IANotifier) configured() bool {
	return n.baseURL != "" && !strings.Contains(n.baseURL, notifierPlaceholderHost)
}

// Notify sends the minimal order payload to the IA notify endpoint
func (n *IANotifier) Notify(ctx context.Context, pedido *models.Pedido) (*NotifyResult, error) {
	payload := notifyPayload{
		Nome:       pedido.Nome,
		Telefone:   pedido.Telefone,
		Status:     pedido.Status,
		TipoTrofeu: pedido.TipoTrofeu,
		Rastreio:   pedido.Rastreio,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}

	if !n.configured() {
		log.Printf("URL da IA não configurada. Notificação não enviada.")
		return &NotifyResult{Sent: false, Message: "URL da IA não configurada"}, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notify payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/notify", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build notify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao notificar IA: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("erro ao notificar IA: status %d", resp.StatusCode)
	}

	log.Printf("Notificação enviada para IA: pedido de %s, status %q", pedido.Nome, pedido.Status)
	return &NotifyResult{Sent: true}, nil
}

// CheckHealth probes the IA health endpoint, returning failures as a
// structured status
func (n *IANotifier) CheckHealth(ctx context.Context) HealthStatus {
	if !n.configured() {
		return HealthStatus{Status: "error", Message: "URL da IA não configurada"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/health", nil)
	if err != nil {
		return HealthStatus{Status: "error", Message: err.Error()}
	}

	resp, err := n.healthClient.Do(req)
	if err != nil {
		return HealthStatus{Status: "error", Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return HealthStatus{Status: "error", Message: fmt.Sprintf("status %d", resp.StatusCode)}
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return HealthStatus{Status: "error", Message: err.Error()}
	}
	return HealthStatus{Status: "ok", Response: body}
}
