package skills

import (
	"fmt"
	"regexp"
	"strings"
)

var moneyLine = regexp.MustCompile(`(?i)(USD|ARS|\$)\s?[\d.,]+|\b\d{1,3}(?:[.,]\d{3})*(?:[.,]\d+)?\s?%`)

// FinancialTableRow is one extracted row from a financial table parse.
type FinancialTableRow struct {
	Label string
	Value string
}

// FinancialTableParser scans text for lines carrying a currency amount or a
// percentage and renders them as a small Markdown table. Returns ("", false)
// when no financial line is found.
func FinancialTableParser(text string) (string, bool) {
	var rows []FinancialTableRow
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !moneyLine.MatchString(line) {
			continue
		}
		label, value := splitLabelValue(line)
		rows = append(rows, FinancialTableRow{Label: label, Value: value})
	}
	if len(rows) == 0 {
		return "", false
	}

	var b strings.Builder
	b.WriteString("| Concepto | Valor |\n|---|---|\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %s |\n", r.Label, r.Value)
	}
	return b.String(), true
}

func splitLabelValue(line string) (string, string) {
	loc := moneyLine.FindStringIndex(line)
	if loc == nil {
		return line, ""
	}
	label := strings.TrimRight(strings.TrimSpace(line[:loc[0]]), ":")
	if label == "" {
		label = "Monto"
	}
	value := strings.TrimSpace(line[loc[0]:])
	return label, value
}
