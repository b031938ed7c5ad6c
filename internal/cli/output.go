package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"slreload/internal/provider"
	slstrings "slreload/pkg/strings"
)

// OutputFormat selects how listings are printed.
type OutputFormat string

const (
	// OutputFormatTable is a kubectl-style plain table
	OutputFormatTable OutputFormat = "table"
	// OutputFormatWide is a bordered table with additional columns
	OutputFormatWide OutputFormat = "wide"
	// OutputFormatJSON is indented JSON
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML is YAML
	OutputFormatYAML OutputFormat = "yaml"
)

// ValidOutputFormats contains all valid output format values.
var ValidOutputFormats = []OutputFormat{
	OutputFormatTable,
	OutputFormatWide,
	OutputFormatJSON,
	OutputFormatYAML,
}

// ValidateOutputFormat returns an error listing the valid formats when
// format is not one of them.
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case OutputFormatTable, OutputFormatWide, OutputFormatJSON, OutputFormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %q (valid: table, wide, json, yaml)", format)
	}
}

// idleMarker fills the transaction column of idle instances.
const idleMarker = "-"

// wideStatusMaxLen bounds the transaction column of the wide table.
const wideStatusMaxLen = 32

// WriteInstances prints instances to out in the given format.
func WriteInstances(out io.Writer, instances []provider.Instance, format OutputFormat, noHeaders bool) error {
	if instances == nil {
		instances = []provider.Instance{}
	}

	switch format {
	case OutputFormatJSON:
		data, err := json.MarshalIndent(instances, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode instances as JSON: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case OutputFormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(instances); err != nil {
			return fmt.Errorf("failed to encode instances as YAML: %w", err)
		}
		return enc.Close()
	case OutputFormatWide:
		writeWideTable(out, instances, noHeaders)
		return nil
	case OutputFormatTable:
		tw := NewPlainTableWriter(out)
		tw.SetHeaders("name", "kind", "datacenter", "transaction")
		tw.SetNoHeaders(noHeaders)
		for _, inst := range instances {
			tw.AppendRow(inst.FullyQualifiedDomainName, string(inst.Kind), inst.Datacenter, transactionCell(inst))
		}
		return tw.Render()
	default:
		return ValidateOutputFormat(string(format))
	}
}

func writeWideTable(out io.Writer, instances []provider.Instance, noHeaders bool) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)

	if !noHeaders {
		t.AppendHeader(table.Row{"ID", "Name", "Kind", "Datacenter", "Primary IP", "Transaction"})
	}

	busy := 0
	for _, inst := range instances {
		status := slstrings.Truncate(transactionCell(inst), wideStatusMaxLen)
		if inst.Busy() {
			busy++
			status = text.FgYellow.Sprint(status)
		}
		t.AppendRow(table.Row{
			strconv.FormatInt(inst.ID, 10),
			inst.FullyQualifiedDomainName,
			string(inst.Kind),
			inst.Datacenter,
			inst.PrimaryIP,
			status,
		})
	}

	if !noHeaders {
		t.AppendFooter(table.Row{"", fmt.Sprintf("%d instances", len(instances)), "", "", "", fmt.Sprintf("%d busy", busy)})
	}
	t.Render()
}

func transactionCell(inst provider.Instance) string {
	if !inst.Busy() {
		return idleMarker
	}
	if s := inst.TransactionStatus(); s != "" {
		return s
	}
	return "UNKNOWN"
}

// FormatError formats an error message for CLI output.
func FormatError(err error) string {
	return fmt.Sprintf("Error: %v", err)
}
