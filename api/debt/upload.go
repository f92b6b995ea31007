package debt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"

	"Qarzdorlik/api"
	"Qarzdorlik/internal/config"
	"Qarzdorlik/internal/ledger"
	"Qarzdorlik/internal/logger"
)

// UploadFiles ingests one batch of agent ledger files. Each file is parsed
// and aggregated independently: a corrupt file is reported and skipped, the
// rest of the batch still lands. The snapshot is only replaced when at least
// one file was readable.
func UploadFiles(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !deps.AdminOK(r.Header.Get("X-Admin-Password")) {
			api.RespondWithError(w, http.StatusUnauthorized, "Ruxsat yo'q")
			return
		}
		if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
			return
		}
		files := r.MultipartForm.File["files"]
		if len(files) == 0 {
			api.RespondWithError(w, http.StatusBadRequest, "Fayllar yuklanmadi")
			return
		}

		batchID := uuid.New().String()
		agents := []ledger.Agent{}
		results := []map[string]interface{}{}
		for _, fh := range files {
			rows, err := readWorkbook(fh)
			if err != nil {
				api.LogError("upload batch %s: %s: %v", batchID, fh.Filename, err)
				results = append(results, map[string]interface{}{
					"filename": fh.Filename,
					"error":    err.Error(),
				})
				continue
			}
			agent := ledger.IngestFile(fh.Filename, rows)
			agents = append(agents, agent)
			results = append(results, map[string]interface{}{
				"filename": fh.Filename,
				"agent":    agent.Name,
				"debtors":  agent.DebtorCount,
			})
		}
		if len(agents) == 0 {
			api.RespondWithError(w, http.StatusBadRequest, "Birorta ham fayl o'qilmadi")
			return
		}

		data := deps.Store.Replace(agents)

		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf("upload batch %s: %d/%d files ingested", batchID, len(agents), len(files)))
		}
		deps.Notifier.Send(fmt.Sprintf("📥 Yangi yuklash: %d ta agent, jami $%.2f / %.0f so'm",
			len(agents), sumUSD(agents), sumUZS(agents)))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":     true,
			"batchId":     batchID,
			"message":     fmt.Sprintf("%d ta agent ma'lumotlari yuklandi", len(agents)),
			"agents":      len(agents),
			"results":     results,
			"lastUpdated": data.LastUpdated,
		})
	}
}

// readWorkbook extracts the first sheet of an uploaded file as rows of cell
// strings. The file is staged to a temp path because both Excel readers work
// from file paths.
func readWorkbook(fh *multipart.FileHeader) ([][]string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	tempFile, err := os.CreateTemp("", "upload-*"+filepath.Ext(fh.Filename))
	if err != nil {
		return nil, fmt.Errorf("failed to stage file: %w", err)
	}
	defer os.Remove(tempFile.Name())
	if _, err := io.Copy(tempFile, src); err != nil {
		tempFile.Close()
		return nil, fmt.Errorf("failed to stage file: %w", err)
	}
	tempFile.Close()

	switch strings.ToLower(filepath.Ext(fh.Filename)) {
	case ".xlsx":
		return readXLSX(tempFile.Name())
	case ".xls":
		return readXLS(tempFile.Name())
	default:
		return nil, errors.New("unsupported file type, expected .xls or .xlsx")
	}
}

func readXLSX(path string) ([][]string, error) {
	xl, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel file: %w", err)
	}
	defer xl.Close()
	sheet := xl.GetSheetName(0)
	rows, err := xl.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("no data in Excel file")
	}
	return rows, nil
}

func readXLS(path string) ([][]string, error) {
	book, err := xls.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read xls file: %w", err)
	}
	sheet, err := book.GetSheet(0)
	if err != nil || sheet == nil {
		return nil, errors.New("failed to get xls sheet")
	}
	var rows [][]string
	for _, xlsRow := range sheet.GetRows() {
		var rowVals []string
		for _, col := range xlsRow.GetCols() {
			rowVals = append(rowVals, col.GetString())
		}
		rows = append(rows, rowVals)
	}
	if len(rows) == 0 {
		return nil, errors.New("no data in xls file")
	}
	return rows, nil
}

func sumUSD(agents []ledger.Agent) float64 {
	var total float64
	for _, a := range agents {
		total += a.TotalUSD
	}
	return total
}

func sumUZS(agents []ledger.Agent) float64 {
	var total float64
	for _, a := range agents {
		total += a.TotalUZS
	}
	return total
}
