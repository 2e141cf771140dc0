// Package ui renders pgcrud output in the terminal.
package ui

import (
	"fmt"
	"io"
	"sort"

	"github.com/AlecAivazis/survey/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

var (
	// Colors
	SuccessColor   = lipgloss.Color("#00FF88")
	WarningColor   = lipgloss.Color("#FFB800")
	ErrorColor     = lipgloss.Color("#FF4444")
	SecondaryColor = lipgloss.Color("#6C757D")

	// Styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	SecondaryStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	sqlColor  = color.New(color.FgCyan, color.Bold)
	argsColor = color.New(color.FgHiBlack)
)

// PrintSuccess prints a success message to w
func PrintSuccess(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, SuccessStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

// PrintError prints an error message to w
func PrintError(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, ErrorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// PrintWarning prints a warning message to w
func PrintWarning(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, WarningStyle.Render("⚠ "+fmt.Sprintf(format, args...)))
}

// PrintSQL echoes a statement and its bound values.
func PrintSQL(w io.Writer, sql string, args []interface{}) {
	sqlColor.Fprintln(w, sql)
	if len(args) > 0 {
		argsColor.Fprintf(w, "  args: %v\n", args)
	}
}

// PrintTable prints a table to w using pterm
func PrintTable(w io.Writer, headers []string, rows [][]string) error {
	tableData := pterm.TableData{headers}
	tableData = append(tableData, rows...)

	out, err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// TableData turns result rows into headers and string cells. When columns
// is empty the headers are the sorted keys of the first row.
func TableData(columns []string, rows []map[string]interface{}) ([]string, [][]string) {
	headers := columns
	if len(headers) == 0 && len(rows) > 0 {
		for col := range rows[0] {
			headers = append(headers, col)
		}
		sort.Strings(headers)
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := make([]string, len(headers))
		for i, col := range headers {
			line[i] = formatCell(row[col])
		}
		cells = append(cells, line)
	}
	return headers, cells
}

func formatCell(v interface{}) string {
	if v == nil {
		return SecondaryStyle.Render("NULL")
	}
	return fmt.Sprint(v)
}

// Confirm asks a yes/no question, defaulting to no.
func Confirm(message string) (bool, error) {
	ok := false
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return false, err
	}
	return ok, nil
}
