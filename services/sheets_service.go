package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/trofybr/trofy-pedidos-api/models"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const sheetName = "Pedidos"

// MirrorService replicates order state to an external spreadsheet.
// It is strictly best-effort and advisory.
type MirrorService interface {
	// AddPedido appends one row for a newly created order. Returns false
	// without error when the mirror is not configured.
	AddPedido(ctx context.Context, id uint, pedido *models.Pedido) (bool, error)

	// UpdatePedido locates the order's row by id and updates the status and
	// tracking columns. A missing row or unconfigured mirror is a logged
	// no-op, not an error.
	UpdatePedido(ctx context.Context, id uint, status, rastreio string) (bool, error)
}

// SheetsMirror implements MirrorService against the Google Sheets API
type SheetsMirror struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewSheetsMirror builds the mirror from a service-account credentials file
// and a spreadsheet id. Missing credentials disable the integration rather
// than failing startup.
func NewSheetsMirror(ctx context.Context, credentialsFile, spreadsheetID string) (*SheetsMirror, error) {
	if spreadsheetID == "" {
		log.Println("AVISO: GOOGLE_SHEETS_ID não definido. A integração com o Google Sheets será desabilitada.")
		return &SheetsMirror{}, nil
	}
	if _, err := os.Stat(credentialsFile); err != nil {
		log.Printf("AVISO: Arquivo de credenciais do Google não encontrado em %s. A integração com o Google Sheets será desabilitada.", credentialsFile)
		return &SheetsMirror{}, nil
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure Google Sheets client: %w", err)
	}

	return &SheetsMirror{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// Configured reports whether the Sheets integration is active
func (m *SheetsMirror) Configured() bool {
	return m.svc != nil
}

// AddPedido appends one row to the spreadsheet
func (m *SheetsMirror) AddPedido(ctx context.Context, id uint, pedido *models.Pedido) (bool, error) {
	if !m.Configured() {
		log.Println("Google Sheets não configurado. Pulando adição de pedido.")
		return false, nil
	}

	row := []interface{}{
		id,
		pedido.Nome,
		pedido.Email,
		pedido.Telefone,
		pedido.CPF,
		pedido.Endereco,
		pedido.Cidade,
		pedido.Estado,
		pedido.CEP,
		pedido.TipoTrofeu,
		deref(pedido.BonusEscolhido),
		pedido.Status,
		time.Now().UTC().Format(time.RFC3339),
		"", // tracking-code cell, filled on update
	}

	_, err := m.svc.Spreadsheets.Values.Append(m.spreadsheetID, sheetName+"!A1", &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return false, fmt.Errorf("erro ao adicionar pedido ao Google Sheets: %w", err)
	}
	return true, nil
}

// UpdatePedido scans the id column for the order's row and batch-updates
// the status (K) and tracking (M) columns
func (m *SheetsMirror) UpdatePedido(ctx context.Context, id uint, status, rastreio string) (bool, error) {
	if !m.Configured() {
		log.Println("Google Sheets não configurado. Pulando atualização de pedido.")
		return false, nil
	}

	resp, err := m.svc.Spreadsheets.Values.Get(m.spreadsheetID, sheetName+"!A:A").Context(ctx).Do()
	if err != nil {
		return false, fmt.Errorf("erro ao consultar o Google Sheets: %w", err)
	}
	if len(resp.Values) == 0 {
		log.Println("Nenhum dado encontrado na planilha.")
		return false, nil
	}

	rowIndex := -1
	want := strconv.FormatUint(uint64(id), 10)
	for i, row := range resp.Values {
		if len(row) > 0 && fmt.Sprint(row[0]) == want {
			rowIndex = i
			break
		}
	}
	if rowIndex == -1 {
		log.Printf("Pedido com ID %d não encontrado na planilha.", id)
		return false, nil
	}

	_, err = m.svc.Spreadsheets.Values.BatchUpdate(m.spreadsheetID, &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data: []*sheets.ValueRange{
			{
				Range:  fmt.Sprintf("%s!K%d", sheetName, rowIndex+1),
				Values: [][]interface{}{{status}},
			},
			{
				Range:  fmt.Sprintf("%s!M%d", sheetName, rowIndex+1),
				Values: [][]interface{}{{rastreio}},
			},
		},
	}).Context(ctx).Do()
	if err != nil {
		return false, fmt.Errorf("erro ao atualizar pedido no Google Sheets: %w", err)
	}
	return true, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
