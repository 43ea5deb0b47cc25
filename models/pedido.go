package models

import (
	"time"
)

// StatusNovoPedido is the status assigned to every order at creation,
// regardless of what the caller sent.
const StatusNovoPedido = "Novo pedido"

// DisplayTimeLayout is the format used for timestamps returned by the
// listing endpoint. Callers needing further processing must re-parse.
const DisplayTimeLayout = "02/01/2006 15:04"

// Pedido represents a customer's trophy order
type Pedido struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Nome           string    `gorm:"not null" json:"nome"`
	Email          string    `gorm:"not null" json:"email"`
	Telefone       string    `gorm:"not null" json:"telefone"`
	CPF            string    `gorm:"column:cpf;not null" json:"cpf"`
	Endereco       string    `gorm:"not null" json:"endereco"`
	Cidade         string    `gorm:"not null" json:"cidade"`
	Estado         string    `gorm:"not null" json:"estado"`
	CEP            string    `gorm:"column:cep;not null" json:"cep"`
	Rastreio       *string   `json:"rastreio"`                                           // nullable, set only after shipment
	Status         string    `gorm:"not null;default:'Novo pedido';index" json:"status"` // Novo pedido, Em processamento, Enviado, Entregue, Cancelado
	BonusEscolhido *string   `gorm:"column:bonus_escolhido" json:"bonus_escolhido"`
	TipoTrofeu     string    `gorm:"column:tipo_trofeu;not null" json:"tipo_trofeu"`
	CriadoEm       time.Time `gorm:"column:criado_em;autoCreateTime;index" json:"criado_em"`
	AtualizadoEm   time.Time `gorm:"column:atualizado_em;autoUpdateTime" json:"atualizado_em"`
}

// TableName specifies the table name for the Pedido model
func (Pedido) TableName() string {
	return "pedidos"
}

// PedidoView is the listing representation of a Pedido. Timestamps are
// display-formatted strings rather than raw instants.
type PedidoView struct {
	ID             uint    `json:"id"`
	Nome           string  `json:"nome"`
	Email          string  `json:"email"`
	Telefone       string  `json:"telefone"`
	CPF            string  `json:"cpf"`
	Endereco       string  `json:"endereco"`
	Cidade         string  `json:"cidade"`
	Estado         string  `json:"estado"`
	CEP            string  `json:"cep"`
	Rastreio       *string `json:"rastreio"`
	Status         string  `json:"status"`
	BonusEscolhido *string `json:"bonus_escolhido"`
	TipoTrofeu     string  `json:"tipo_trofeu"`
	CriadoEm       string  `json:"criado_em"`
	AtualizadoEm   string  `json:"atualizado_em"`
}

// View converts a Pedido to its display representation.
func (p Pedido) View() PedidoView {
	return PedidoView{
		ID:             p.ID,
		Nome:           p.Nome,
		Email:          p.Email,
		Telefone:       p.Telefone,
		CPF:            p.CPF,
		Endereco:       p.Endereco,
		Cidade:         p.Cidade,
		Estado:         p.Estado,
		CEP:            p.CEP,
		Rastreio:       p.Rastreio,
		Status:         p.Status,
		BonusEscolhido: p.BonusEscolhido,
		TipoTrofeu:     p.TipoTrofeu,
		CriadoEm:       p.CriadoEm.Format(DisplayTimeLayout),
		AtualizadoEm:   p.AtualizadoEm.Format(DisplayTimeLayout),
	}
}

// HistoricoStatus records one status or tracking-code change of an order
type HistoricoStatus struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	PedidoID       uint      `gorm:"not null;index" json:"pedido_id"`
	Pedido         Pedido    `gorm:"foreignKey:PedidoID" json:"-"`
	StatusAnterior *string   `gorm:"column:status_anterior" json:"status_anterior"`
	NovoStatus     string    `gorm:"column:novo_status;not null" json:"novo_status"`
	Rastreio       *string   `json:"rastreio"`
	CriadoEm       time.Time `gorm:"column:criado_em;autoCreateTime" json:"criado_em"`
}

// TableName specifies the table name for the HistoricoStatus model
func (HistoricoStatus) TableName() string {
	return "historico_status"
}
