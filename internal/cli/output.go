package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/hosmod/hosmod/internal/template/placeholder"
)

var (
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
)

// printInfo prints an informational message
func printInfo(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintln(stdout, msg)
}

// printSuccess prints a success message
func printSuccess(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stdout, "%s %s\n", successStyle.Render("✓"), msg)
}

// printWarning prints a warning message
func printWarning(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stdout, "%s %s\n", warningStyle.Render("⚠"), msg)
}

// printProgress prints a progress indicator
func printProgress(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stdout, "%s %s\n", progressStyle.Render("→"), msg)
}

// printHeader prints a section header
func printHeader(title string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stdout, "\n%s\n", headerStyle.Render("=== "+title+" ==="))
}

// printValues prints the substitution mapping as a key/value table, keys sorted.
func printValues(values placeholder.Values) {
	if globalQuiet {
		return
	}
	writeValuesTable(stdout, values)
}

func writeValuesTable(w io.Writer, values placeholder.Values) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Key", "Value"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, key := range values.Keys() {
		table.Append([]string{key, values[key]})
	}
	table.Render()
}
