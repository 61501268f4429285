package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"catalogquote/config"
	"catalogquote/services"
)

// buildExportData fetches the quote and its lines, returning an ExportData struct.
func buildExportData(app core.App, quoteID string, cfg config.Config) (services.ExportData, error) {
	quote, err := loadQuote(app, quoteID, cfg)
	if err != nil {
		return services.ExportData{}, err
	}

	data := services.BuildExportData(quote.Title, quote.Lines)
	data.CompanyName = cfg.CompanyName
	data.CustomerName = quote.CustomerName
	data.ReferenceNumber = quote.ReferenceNumber
	data.CreatedDate = quote.CreatedDate
	if cfg.Currency != "" {
		data.Currency = cfg.Currency
	}
	return data, nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, `"`, "")
	return s
}

// exportFilename prefers the reference number over the title.
func exportFilename(data services.ExportData, ext string) string {
	if data.ReferenceNumber != "" {
		return fmt.Sprintf("Quote_%s.%s", sanitizeFilename(data.ReferenceNumber), ext)
	}
	return fmt.Sprintf("Quote_%s_%d.%s", sanitizeFilename(data.Title), time.Now().Year(), ext)
}

// HandleQuoteExportExcel returns a handler that generates and downloads an Excel file for a quote.
func HandleQuoteExportExcel(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("quoteId")
		if quoteID == "" {
			return e.String(http.StatusBadRequest, "Missing quote ID")
		}

		data, err := buildExportData(app, quoteID, cfg)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return e.String(http.StatusNotFound, "Quote not found")
		}

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(data, "xlsx")))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleQuoteExportPDF returns a handler that generates and downloads a PDF file for a quote.
func HandleQuoteExportPDF(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("quoteId")
		if quoteID == "" {
			return e.String(http.StatusBadRequest, "Missing quote ID")
		}

		data, err := buildExportData(app, quoteID, cfg)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return e.String(http.StatusNotFound, "Quote not found")
		}

		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(data, "pdf")))
		e.Response.Write(pdfBytes)
		return nil
	}
}
