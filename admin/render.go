package admin

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/trofybr/trofy-pedidos-api/models"
	"github.com/trofybr/trofy-pedidos-api/utils"
)

// RenderTable writes the current page of the dashboard as a table
func RenderTable(w io.Writer, s *State) {
	pagina := s.CurrentPage()
	if len(pagina) == 0 {
		fmt.Fprintln(w, "Nenhum pedido encontrado com os filtros atuais.")
		return
	}

	table := tablewriter.NewTable(w)
	table.Header("ID", "Nome", "Telefone", "Tipo de Troféu", "Status", "Criado em")
	for _, p := range pagina {
		table.Append([]string{
			strconv.FormatUint(uint64(p.ID), 10),
			p.Nome,
			utils.FormatarTelefone(p.Telefone),
			p.TipoTrofeu,
			p.Status,
			p.CriadoEm,
		})
	}
	if err := table.Render(); err != nil {
		fmt.Fprintf(w, "erro ao renderizar a tabela: %v\n", err)
		return
	}

	totalPaginas := s.PageCount()
	if totalPaginas == 0 {
		totalPaginas = 1
	}
	fmt.Fprintf(w, "Página %d de %d — exibindo %d de %d pedidos\n",
		s.Pagina, totalPaginas, len(pagina), len(s.Filtrados))
}

// RenderDetail writes the detail view of one order
func RenderDetail(w io.Writer, p *models.PedidoView) {
	fmt.Fprintf(w, "Pedido #%d\n", p.ID)
	fmt.Fprintf(w, "  Cliente:   %s\n", p.Nome)
	fmt.Fprintf(w, "  Email:     %s\n", p.Email)
	fmt.Fprintf(w, "  Telefone:  %s\n", utils.FormatarTelefone(p.Telefone))
	fmt.Fprintf(w, "  CPF:       %s\n", utils.FormatarCPF(p.CPF))
	fmt.Fprintf(w, "  Endereço:  %s, %s - %s\n", p.Endereco, p.Cidade, p.Estado)
	fmt.Fprintf(w, "  CEP:       %s\n", utils.FormatarCEP(p.CEP))
	fmt.Fprintf(w, "  Troféu:    %s\n", p.TipoTrofeu)
	if p.BonusEscolhido != nil && *p.BonusEscolhido != "" {
		fmt.Fprintf(w, "  Bônus:     %s\n", *p.BonusEscolhido)
	} else {
		fmt.Fprintln(w, "  Bônus:     Sem bônus")
	}
	fmt.Fprintf(w, "  Status:    %s\n", p.Status)
	if p.Rastreio != nil && *p.Rastreio != "" {
		fmt.Fprintf(w, "  Rastreio:  %s\n", *p.Rastreio)
	}
	fmt.Fprintf(w, "  Criado em: %s (atualizado em %s)\n", p.CriadoEm, p.AtualizadoEm)
}

// RenderHistory writes the status history of an order
func RenderHistory(w io.Writer, historico []models.HistoricoStatus) {
	if len(historico) == 0 {
		fmt.Fprintln(w, "  Sem histórico de atualizações.")
		return
	}
	fmt.Fprintln(w, "  Histórico de atualizações:")
	for _, h := range historico {
		linha := fmt.Sprintf("    %s — %s", h.CriadoEm.Format(models.DisplayTimeLayout), h.NovoStatus)
		if h.StatusAnterior != nil {
			linha += fmt.Sprintf(" (antes: %s)", *h.StatusAnterior)
		}
		if h.Rastreio != nil && *h.Rastreio != "" {
			linha += fmt.Sprintf(" [rastreio %s]", *h.Rastreio)
		}
		fmt.Fprintln(w, linha)
	}
}
