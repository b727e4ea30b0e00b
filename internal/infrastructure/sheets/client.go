package sheets

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	sheetsv4 "google.golang.org/api/sheets/v4"
	"google.golang.org/api/option"
)

// Pestañas y cabeceras del spreadsheet. El backend Sheets es un spreadsheet
// por negocio: el usuario queda registrado en "Updated By" / "User" pero no
// particiona las filas.
const (
	inventorySheet    = "Inventory"
	transactionsSheet = "Transactions"
)

var (
	inventoryHeaders   = []any{"Item Name", "Quantity", "Unit", "Last Updated", "Updated By"}
	transactionHeaders = []any{"Timestamp", "Action", "Item Name", "Quantity", "Unit", "User", "Notes"}
)

// NewService crea el cliente de la API de Sheets autenticado con una service
// account (JSON de credenciales en disco).
func NewService(ctx context.Context, credentialsFile string) (*sheetsv4.Service, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("leer credenciales de Google: %w", err)
	}
	jwtCfg, err := google.JWTConfigFromJSON(data, sheetsv4.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parsear credenciales de service account: %w", err)
	}
	svc, err := sheetsv4.NewService(ctx, option.WithTokenSource(jwtCfg.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("crear cliente Sheets: %w", err)
	}
	return svc, nil
}

// EnsureLayout crea las pestañas Inventory y Transactions si faltan y escribe
// las cabeceras cuando la primera fila está vacía. Idempotente; se llama una
// vez al arrancar.
func EnsureLayout(ctx context.Context, svc *sheetsv4.Service, spreadsheetID string) error {
	ss, err := svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("leer spreadsheet: %w", err)
	}

	existing := make(map[string]bool, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		existing[sh.Properties.Title] = true
	}

	var requests []*sheetsv4.Request
	for _, title := range []string{inventorySheet, transactionsSheet} {
		if !existing[title] {
			requests = append(requests, &sheetsv4.Request{
				AddSheet: &sheetsv4.AddSheetRequest{
					Properties: &sheetsv4.SheetProperties{Title: title},
				},
			})
		}
	}
	if len(requests) > 0 {
		_, err = svc.Spreadsheets.BatchUpdate(spreadsheetID, &sheetsv4.BatchUpdateSpreadsheetRequest{
			Requests: requests,
		}).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("crear pestañas: %w", err)
		}
	}

	if err := ensureHeaders(ctx, svc, spreadsheetID, inventorySheet, inventoryHeaders); err != nil {
		return err
	}
	return ensureHeaders(ctx, svc, spreadsheetID, transactionsSheet, transactionHeaders)
}

func ensureHeaders(ctx context.Context, svc *sheetsv4.Service, spreadsheetID, sheet string, headers []any) error {
	rng := fmt.Sprintf("%s!A1:%c1", sheet, rune('A'+len(headers)-1))
	resp, err := svc.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("leer cabeceras de %s: %w", sheet, err)
	}
	if len(resp.Values) > 0 {
		return nil
	}
	_, err = svc.Spreadsheets.Values.Update(spreadsheetID, rng, &sheetsv4.ValueRange{
		Values: [][]any{headers},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("escribir cabeceras de %s: %w", sheet, err)
	}
	return nil
}
