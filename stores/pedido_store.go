package stores

import (
	"fmt"
	"strings"

	"github.com/trofybr/trofy-pedidos-api/models"
	"gorm.io/gorm"
)

// PedidoStore owns persistent order records. Handlers receive an explicitly
// constructed store rather than reaching for a shared connection.
type PedidoStore struct {
	db *gorm.DB
}

// NewPedidoStore creates a new PedidoStore backed by db
func NewPedidoStore(db *gorm.DB) *PedidoStore {
	return &PedidoStore{db: db}
}

// Insert persists a new order and returns its generated identifier.
// All contact and address fields are required; status defaults to
// "Novo pedido" when the caller did not set one.
func (s *PedidoStore) Insert(pedido *models.Pedido) (uint, error) {
	if err := validateRequired(pedido); err != nil {
		return 0, err
	}

	if strings.TrimSpace(pedido.Status) == "" {
		pedido.Status = models.StatusNovoPedido
	}

	if err := s.db.Create(pedido).Error; err != nil {
		return 0, fmt.Errorf("failed to insert pedido: %w", err)
	}

	// Opening history entry so the detail view never shows an empty list
	historico := models.HistoricoStatus{
		PedidoID:   pedido.ID,
		NovoStatus: pedido.Status,
		Rastreio:   pedido.Rastreio,
	}
	if err := s.db.Create(&historico).Error; err != nil {
		return 0, fmt.Errorf("failed to record pedido history: %w", err)
	}

	return pedido.ID, nil
}

// List returns all orders, most-recently-created first, with
// display-formatted timestamps.
func (s *PedidoStore) List() ([]models.PedidoView, error) {
	var pedidos []models.Pedido
	if err := s.db.Order("criado_em DESC, id DESC").Find(&pedidos).Error; err != nil {
		return nil, fmt.Errorf("failed to list pedidos: %w", err)
	}

	views := make([]models.PedidoView, 0, len(pedidos))
	for _, p := range pedidos {
		views = append(views, p.View())
	}
	return views, nil
}

// Get returns a single order by id. Returns gorm.ErrRecordNotFound when
// the id does not exist.
func (s *PedidoStore) Get(id uint) (*models.Pedido, error) {
	var pedido models.Pedido
	if err := s.db.First(&pedido, id).Error; err != nil {
		return nil, err
	}
	return &pedido, nil
}

// UpdateStatus updates the status and/or tracking code of an order. Each
// parameter is independently optional: nil leaves the existing value
// unchanged. atualizado_em advances automatically and is never settable
// by callers. Returns gorm.ErrRecordNotFound for an unknown id.
func (s *PedidoStore) UpdateStatus(id uint, status, rastreio *string) (*models.Pedido, error) {
	var pedido models.Pedido
	if err := s.db.First(&pedido, id).Error; err != nil {
		return nil, err
	}

	statusAnterior := pedido.Status
	updates := map[string]interface{}{}
	if status != nil {
		updates["status"] = *status
	}
	if rastreio != nil {
		updates["rastreio"] = *rastreio
	}
	if len(updates) == 0 {
		return &pedido, nil
	}

	if err := s.db.Model(&pedido).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update pedido %d: %w", id, err)
	}

	if err := s.db.First(&pedido, id).Error; err != nil {
		return nil, err
	}

	historico := models.HistoricoStatus{
		PedidoID:       pedido.ID,
		StatusAnterior: &statusAnterior,
		NovoStatus:     pedido.Status,
		Rastreio:       pedido.Rastreio,
	}
	if err := s.db.Create(&historico).Error; err != nil {
		return nil, fmt.Errorf("failed to record pedido history: %w", err)
	}

	return &pedido, nil
}

// History returns the status changes of an order, newest first.
func (s *PedidoStore) History(pedidoID uint) ([]models.HistoricoStatus, error) {
	var historico []models.HistoricoStatus
	err := s.db.Where("pedido_id = ?", pedidoID).
		Order("criado_em DESC, id DESC").
		Find(&historico).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load pedido history: %w", err)
	}
	return historico, nil
}

func validateRequired(pedido *models.Pedido) error {
	required := map[string]string{
		"nome":        pedido.Nome,
		"email":       pedido.Email,
		"telefone":    pedido.Telefone,
		"cpf":         pedido.CPF,
		"endereco":    pedido.Endereco,
		"cidade":      pedido.Cidade,
		"estado":      pedido.Estado,
		"cep":         pedido.CEP,
		"tipo_trofeu": pedido.TipoTrofeu,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("campo obrigatório ausente: %s", field)
		}
	}
	return nil
}
