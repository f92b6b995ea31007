package ledger

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Ledger files follow a fixed layout: row 0 is the header, debtor names live
// somewhere in columns A-C, USD in column D, UZS in column E.
const (
	headerRows  = 1
	usdColumn   = 3
	uzsColumn   = 4
	nameColumns = 3
)

var (
	trailingDate  = regexp.MustCompile(`(?i)\s*\d+\.\d+\.\d+\.xlsx?$`)
	fileExtension = regexp.MustCompile(`(?i)\.xlsx?$`)
	amountCleaner = strings.NewReplacer(" ", "", "\u00a0", "", ",", "")
)

// AgentNameFromFile derives the agent name from the uploaded file name.
// Agents upload "Bekzod 12.01.2025.xlsx" style files every cycle, so the
// trailing date and the extension are stripped and the remainder becomes the
// cross-snapshot join key.
func AgentNameFromFile(fileName string) string {
	name := trailingDate.ReplaceAllString(fileName, "")
	name = fileExtension.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

func parseAmount(cell string) (decimal.Decimal, bool) {
	cleaned := amountCleaner.Replace(strings.TrimSpace(cell))
	if cleaned == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// debtorName picks the first cell in the name columns that looks like a name:
// at least two characters and not a bare number. Rows without one get a
// sequential placeholder.
func debtorName(row []string, ordinal int) string {
	for col := 0; col < nameColumns && col < len(row); col++ {
		cell := strings.TrimSpace(row[col])
		if len([]rune(cell)) < 2 {
			continue
		}
		if _, numeric := parseAmount(cell); numeric {
			continue
		}
		return cell
	}
	return fmt.Sprintf("Qarzdor %d", ordinal)
}

// IngestFile folds parsed spreadsheet rows into one agent aggregate. A row
// contributes a debtor only when at least one amount cell is numeric and at
// least one balance is strictly positive; anything malformed is skipped, it
// is never an error.
func IngestFile(fileName string, rows [][]string) Agent {
	agent := Agent{Name: AgentNameFromFile(fileName), Debtors: []Debtor{}}
	totalUSD := decimal.Zero
	totalUZS := decimal.Zero

	for i := headerRows; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 {
			continue
		}
		var usd, uzs decimal.Decimal
		var usdOK, uzsOK bool
		if usdColumn < len(row) {
			usd, usdOK = parseAmount(row[usdColumn])
		}
		if uzsColumn < len(row) {
			uzs, uzsOK = parseAmount(row[uzsColumn])
		}
		if !usdOK && !uzsOK {
			continue
		}
		if !usd.IsPositive() && !uzs.IsPositive() {
			continue
		}
		totalUSD = totalUSD.Add(usd)
		totalUZS = totalUZS.Add(uzs)
		agent.Debtors = append(agent.Debtors, Debtor{
			Name: debtorName(row, len(agent.Debtors)+1),
			USD:  usd.InexactFloat64(),
			UZS:  uzs.InexactFloat64(),
		})
	}

	agent.TotalUSD = totalUSD.InexactFloat64()
	agent.TotalUZS = totalUZS.InexactFloat64()
	agent.DebtorCount = len(agent.Debtors)
	return agent
}
