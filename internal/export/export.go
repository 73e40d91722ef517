// Package export writes the knowledge base out as a spreadsheet or a
// markdown table.
package export

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jeanpaul/adivina/internal/knowledge"
	"github.com/jeanpaul/adivina/internal/questions"
)

const sheetName = "warframes"

// Columns orders attributes as the question set asks them, followed by any
// extra attributes found in the base, sorted.
func Columns(base knowledge.Base, set *questions.Set) []string {
	cols := set.Names()
	known := make(map[string]bool, len(cols))
	for _, c := range cols {
		known[c] = true
	}
	var extra []string
	for _, name := range base.Names() {
		for _, attr := range base[name].Attributes() {
			if !known[attr] {
				known[attr] = true
				extra = append(extra, attr)
			}
		}
	}
	sort.Strings(extra)
	return append(cols, extra...)
}

// Rows returns a header row followed by one row per entity.
func Rows(base knowledge.Base, set *questions.Set) [][]string {
	cols := Columns(base, set)
	rows := [][]string{append([]string{"entity"}, cols...)}
	for _, name := range base.Names() {
		rec := base[name]
		row := make([]string, 0, len(cols)+1)
		row = append(row, name)
		for _, c := range cols {
			row = append(row, rec[c])
		}
		rows = append(rows, row)
	}
	return rows
}

// XLSX writes the base to a spreadsheet at path.
func XLSX(base knowledge.Base, set *questions.Set, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	for i, row := range Rows(base, set) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("export: row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// Markdown renders the base as a markdown table.
func Markdown(base knowledge.Base, set *questions.Set) string {
	return rowsToMarkdown(Rows(base, set))
}

// WriteMarkdown writes the Markdown table to path.
func WriteMarkdown(base knowledge.Base, set *questions.Set, path string) error {
	if err := os.WriteFile(path, []byte(Markdown(base, set)), 0644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// rowsToMarkdown converts a slice of string slices into a Markdown table
func rowsToMarkdown(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var sb strings.Builder
	cols := len(rows[0])

	sb.WriteString("| " + strings.Join(escapeRow(rows[0]), " | ") + " |\n")

	sb.WriteString("|")
	for i := 0; i < cols; i++ {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")

	for _, row := range rows[1:] {
		cells := escapeRow(row)
		for i, c := range cells {
			if c == "" {
				cells[i] = "-"
			}
		}
		sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	return sb.String()
}

// escapeRow keeps pipes and newlines from breaking the table.
func escapeRow(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		c = strings.ReplaceAll(c, "|", "\\|")
		out[i] = strings.ReplaceAll(c, "\n", " ")
	}
	return out
}
