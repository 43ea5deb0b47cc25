package admin

import (
	"strings"

	"github.com/trofybr/trofy-pedidos-api/models"
)

// ItensPorPagina is the fixed page size of the dashboard table
const ItensPorPagina = 10

// Filtros holds the active dashboard filters
type Filtros struct {
	Status string
	Busca  string
}

// State is the per-session dashboard state: the full order list, the
// filtered subset, the active filters, the 1-based pagination cursor and
// the selected order.
type State struct {
	Pedidos     []models.PedidoView
	Filtrados   []models.PedidoView
	Filtros     Filtros
	Pagina      int
	Selecionado *models.PedidoView
}

// NewState creates an empty dashboard state on page 1
func NewState() *State {
	return &State{Pagina: 1}
}

// Load replaces the order list and re-applies the active filters
func (s *State) Load(pedidos []models.PedidoView) {
	s.Pedidos = pedidos
	s.ApplyFilters()
}

// ApplyFilters recomputes the filtered subset. The status filter is an
// exact case-insensitive match; the free-text filter is a case-insensitive
// substring match over nome and email plus a verbatim substring match over
// telefone, combined with AND semantics. Re-filtering always resets
// pagination to page 1.
func (s *State) ApplyFilters() {
	busca := strings.ToLower(s.Filtros.Busca)

	filtrados := make([]models.PedidoView, 0, len(s.Pedidos))
	for _, p := range s.Pedidos {
		if s.Filtros.Status != "" && !strings.EqualFold(p.Status, s.Filtros.Status) {
			continue
		}
		if busca != "" &&
			!strings.Contains(strings.ToLower(p.Nome), busca) &&
			!strings.Contains(strings.ToLower(p.Email), busca) &&
			!strings.Contains(p.Telefone, busca) {
			continue
		}
		filtrados = append(filtrados, p)
	}

	s.Filtrados = filtrados
	s.Pagina = 1
}

// ResetFilters clears both filters and restores the full list
func (s *State) ResetFilters() {
	s.Filtros = Filtros{}
	s.ApplyFilters()
}

// PageCount returns ceil(len(filtered) / page size)
func (s *State) PageCount() int {
	return (len(s.Filtrados) + ItensPorPagina - 1) / ItensPorPagina
}

// ChangePage moves the cursor by direcao (±1) and reports whether the page
// changed. Moving past either bound is a no-op.
func (s *State) ChangePage(direcao int) bool {
	nova := s.Pagina + direcao
	if nova < 1 || nova > s.PageCount() {
		return false
	}
	s.Pagina = nova
	return true
}

// CurrentPage returns the slice of filtered orders on the current page
func (s *State) CurrentPage() []models.PedidoView {
	inicio := (s.Pagina - 1) * ItensPorPagina
	if inicio >= len(s.Filtrados) {
		return nil
	}
	fim := inicio + ItensPorPagina
	if fim > len(s.Filtrados) {
		fim = len(s.Filtrados)
	}
	return s.Filtrados[inicio:fim]
}

// Select marks the order with the given id as selected, returning it.
// Selection works over the full list, not just the filtered subset.
func (s *State) Select(id uint) *models.PedidoView {
	for i := range s.Pedidos {
		if s.Pedidos[i].ID == id {
			s.Selecionado = &s.Pedidos[i]
			return s.Selecionado
		}
	}
	s.Selecionado = nil
	return nil
}

// Replace swaps the in-memory record matching pedido.ID and re-applies the
// filters, as the dashboard does after a successful status update.
func (s *State) Replace(pedido models.PedidoView) {
	for i := range s.Pedidos {
		if s.Pedidos[i].ID == pedido.ID {
			s.Pedidos[i] = pedido
			break
		}
	}
	if s.Selecionado != nil && s.Selecionado.ID == pedido.ID {
		s.Selecionado = &pedido
	}
	s.ApplyFilters()
}
