package export

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"bizprompt/internal/catalog"
	"bizprompt/internal/logging"
	"bizprompt/internal/template"

	"github.com/xuri/excelize/v2"
)

const (
	promptSheetName  = "BizPrompt Export"
	librarySheetName = "All Prompts"
	summarySheetName = "Summary"
)

// WritePromptExcel writes the single-prompt workbook into dir: a
// metadata block, the user's variable inputs, then the fully rendered
// prompt.
func WritePromptExcel(p catalog.Prompt, bindings map[string]string, exportedAt time.Time, dir string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", promptSheetName); err != nil {
		return "", fmt.Errorf("failed to name sheet: %w", err)
	}

	rows := [][]string{
		{"Prompt Title", p.Title},
		{"Category", string(p.Category)},
		{"Description", p.Description},
		{"Frameworks", strings.Join(p.Frameworks, ", ")},
		{"Exported At", exportedAt.Format("2006-01-02 15:04:05")},
		{"", ""},
		{"VARIABLE", "USER INPUT"},
	}
	for _, name := range bindingOrder(p, bindings) {
		rows = append(rows, []string{name, bindings[name]})
	}
	rows = append(rows, []string{"", ""}, []string{"FULL PROMPT", ""})
	rows = append(rows, []string{template.Render(p.Template, bindings)})

	for i, row := range rows {
		for j, cell := range row {
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return "", fmt.Errorf("failed to compute cell name: %w", err)
			}
			if err := f.SetCellValue(promptSheetName, axis, cell); err != nil {
				return "", fmt.Errorf("failed to set cell %s: %w", axis, err)
			}
		}
	}
	if err := f.SetColWidth(promptSheetName, "A", "A", 20); err != nil {
		return "", fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(promptSheetName, "B", "B", 80); err != nil {
		return "", fmt.Errorf("failed to set column width: %w", err)
	}

	path := filepath.Join(dir, PromptFileName(p.Title, "xlsx"))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	logging.Export("Wrote prompt workbook %s", path)
	return path, nil
}

// bindingOrder makes workbook rows deterministic: variables in the
// order the prompt declares them, then any extra binding keys sorted.
func bindingOrder(p catalog.Prompt, bindings map[string]string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, v := range p.Variables {
		if _, ok := bindings[v.Name]; ok {
			names = append(names, v.Name)
			seen[v.Name] = true
		}
	}
	var extra []string
	for name := range bindings {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// WriteLibraryExcel writes the two-sheet full-catalog workbook into
// dir: every prompt on "All Prompts" plus a per-category summary.
func WriteLibraryExcel(prompts []catalog.Prompt, exportedAt time.Time, dir string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", librarySheetName); err != nil {
		return "", fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []string{"Title", "Category", "Tier", "Description", "Frameworks", "Time Saved", "Template", "Variables"}
	widths := []float64{30, 15, 10, 50, 30, 12, 80, 30}
	if err := writeRows(f, librarySheetName, headers, libraryRows(prompts), widths); err != nil {
		return "", err
	}

	if _, err := f.NewSheet(summarySheetName); err != nil {
		return "", fmt.Errorf("failed to add summary sheet: %w", err)
	}
	summaryHeaders := []string{"Category", "Total Prompts", "Free", "Premium"}
	summaryWidths := []float64{20, 15, 10, 10}
	if err := writeRows(f, summarySheetName, summaryHeaders, summaryRows(prompts), summaryWidths); err != nil {
		return "", err
	}

	path := filepath.Join(dir, LibraryFileName(exportedAt, "xlsx"))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	logging.Export("Wrote library workbook %s (%d prompts)", path, len(prompts))
	return path, nil
}

func libraryRows(prompts []catalog.Prompt) [][]string {
	rows := make([][]string, 0, len(prompts))
	for _, p := range prompts {
		varNames := make([]string, len(p.Variables))
		for i, v := range p.Variables {
			varNames[i] = v.Name
		}
		rows = append(rows, []string{
			p.Title,
			string(p.Category),
			string(p.Tier),
			p.Description,
			strings.Join(p.Frameworks, ", "),
			p.EstimatedTimeSaved,
			p.Template,
			strings.Join(varNames, ", "),
		})
	}
	return rows
}

// summaryRows counts prompts per category in first-appearance order,
// with a TOTAL row at the bottom.
func summaryRows(prompts []catalog.Prompt) [][]string {
	var order []catalog.Category
	total := make(map[catalog.Category]int)
	free := make(map[catalog.Category]int)
	for _, p := range prompts {
		if total[p.Category] == 0 {
			order = append(order, p.Category)
		}
		total[p.Category]++
		if p.Tier != catalog.TierPremium {
			free[p.Category]++
		}
	}

	var rows [][]string
	allFree := 0
	for _, cat := range order {
		rows = append(rows, []string{
			string(cat),
			fmt.Sprint(total[cat]),
			fmt.Sprint(free[cat]),
			fmt.Sprint(total[cat] - free[cat]),
		})
		allFree += free[cat]
	}
	rows = append(rows, []string{
		"TOTAL",
		fmt.Sprint(len(prompts)),
		fmt.Sprint(allFree),
		fmt.Sprint(len(prompts) - allFree),
	})
	return rows
}

func writeRows(f *excelize.File, sheet string, headers []string, rows [][]string, widths []float64) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to compute column name: %w", err)
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	return nil
}
