package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"catalogquote/services"
	"catalogquote/templates"
)

const maxUploadSize = 10 << 20

var (
	errUploadInvalid = errors.New("file too large or invalid form data")
	errUploadMissing = errors.New("please select a file to upload")
)

// parseOptionUpload reads and validates the uploaded "file" field.
func parseOptionUpload(e *core.RequestEvent) (*services.ImportResult, error) {
	if err := e.Request.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, errUploadInvalid
	}
	file, header, err := e.Request.FormFile("file")
	if err != nil {
		return nil, errUploadMissing
	}
	defer file.Close()

	return services.ParseOptionFile(file, header.Filename)
}

// nextOptionSortOrder returns one past the highest sort_order in the column.
func nextOptionSortOrder(app core.App, columnID string) (int, error) {
	records, err := app.FindRecordsByFilter("options", "column = {:columnId}", "-sort_order", 1, 0, map[string]any{"columnId": columnID})
	if err != nil {
		return 0, fmt.Errorf("find last option: %w", err)
	}
	if len(records) == 0 {
		return 1, nil
	}
	return records[0].GetInt("sort_order") + 1, nil
}

// commitOptions stores every imported option under the column in one
// transaction, with area and volume precomputed.
func commitOptions(app *pocketbase.PocketBase, columnID string, opts []services.ImportedOption) error {
	col, err := app.FindCollectionByNameOrId("options")
	if err != nil {
		return fmt.Errorf("find options collection: %w", err)
	}
	return app.RunInTransaction(func(txApp core.App) error {
		sortOrder, err := nextOptionSortOrder(txApp, columnID)
		if err != nil {
			return err
		}
		for _, o := range opts {
			record := core.NewRecord(col)
			record.Set("column", columnID)
			record.Set("name", o.Name)
			record.Set("unit_price", o.UnitPrice)
			record.Set("sort_order", sortOrder)
			if o.Dimensions != nil {
				m := o.Measurement()
				record.Set("width", m.Width)
				record.Set("height", m.Height)
				record.Set("depth", m.Depth)
				record.Set("area", m.Area)
				record.Set("volume", m.Volume)
				record.Set("has_dimensions", true)
			}
			if err := txApp.Save(record); err != nil {
				return fmt.Errorf("save option %q: %w", o.Name, err)
			}
			sortOrder++
		}
		return nil
	})
}

// HandleOptionImport validates an uploaded option list and, when every row
// is valid, appends the options to the column. Any invalid row rejects the
// whole file.
// Route: POST /catalog/columns/{columnId}/options/import
func HandleOptionImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		columnID := e.Request.PathValue("columnId")
		column, err := app.FindRecordById("columns", columnID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Column not found")
		}

		result, err := parseOptionUpload(e)
		if err != nil {
			log.Printf("option_import: %v", err)
			return ErrorToast(e, http.StatusBadRequest, capitalize(err.Error()))
		}

		data := templates.OptionImportData{
			ColumnID:   columnID,
			ColumnName: column.GetString("name"),
			Result:     result,
		}
		status := http.StatusOK
		if result.ErrorRows > 0 {
			status = http.StatusUnprocessableEntity
		} else {
			if err := commitOptions(app, columnID, result.Options); err != nil {
				log.Printf("option_import: %v", err)
				return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
			data.Imported = len(result.Options)
			SetToast(e, "success", fmt.Sprintf("%d options imported successfully", data.Imported))
		}

		if wantsJSON(e.Request) {
			return e.JSON(status, map[string]any{
				"result":   result,
				"imported": data.Imported,
			})
		}
		e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
		e.Response.WriteHeader(status)
		return templates.OptionImportResult(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleOptionImportErrorReport re-validates the upload and downloads its
// row errors as an Excel file.
// Route: POST /catalog/columns/{columnId}/options/import/errors
func HandleOptionImportErrorReport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		result, err := parseOptionUpload(e)
		if err != nil {
			log.Printf("option_error_report: %v", err)
			return ErrorToast(e, http.StatusBadRequest, capitalize(err.Error()))
		}

		xlsxBytes, err := services.GenerateErrorReport(result.Errors)
		if err != nil {
			log.Printf("option_error_report: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		filename := fmt.Sprintf("Option_Errors_%s.xlsx", time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}
