package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

// PlainTableWriter writes kubectl-style tables: uppercase headers, columns
// separated by spaces, no borders. Output stays easy to grep and cut.
type PlainTableWriter struct {
	headers     []string
	rows        [][]string
	widths      []int
	padding     int
	showHeaders bool
	out         io.Writer
}

// NewPlainTableWriter creates a table writer that renders to out.
func NewPlainTableWriter(out io.Writer) *PlainTableWriter {
	return &PlainTableWriter{
		padding:     3,
		showHeaders: true,
		out:         out,
	}
}

// SetHeaders sets the column headers. They are rendered uppercase.
func (w *PlainTableWriter) SetHeaders(headers ...string) {
	w.headers = make([]string, len(headers))
	w.widths = make([]int, len(headers))
	for i, h := range headers {
		w.headers[i] = strings.ToUpper(h)
		w.widths[i] = cellWidth(w.headers[i])
	}
}

// SetNoHeaders controls whether to suppress the header row.
func (w *PlainTableWriter) SetNoHeaders(noHeaders bool) {
	w.showHeaders = !noHeaders
}

// AppendRow adds a row. Missing cells render empty and extra cells are
// dropped.
func (w *PlainTableWriter) AppendRow(cells ...string) {
	row := make([]string, len(w.headers))
	copy(row, cells)
	for i, c := range row {
		if n := cellWidth(c); n > w.widths[i] {
			w.widths[i] = n
		}
	}
	w.rows = append(w.rows, row)
}

// Render writes the table.
func (w *PlainTableWriter) Render() error {
	if len(w.headers) == 0 {
		return nil
	}
	if w.showHeaders {
		if err := w.writeRow(w.headers); err != nil {
			return err
		}
	}
	for _, row := range w.rows {
		if err := w.writeRow(row); err != nil {
			return err
		}
	}
	return nil
}

func (w *PlainTableWriter) writeRow(row []string) error {
	var sb strings.Builder
	last := len(row) - 1
	for i, cell := range row {
		if i == last {
			sb.WriteString(cell)
			break
		}
		sb.WriteString(cell)
		sb.WriteString(strings.Repeat(" ", w.widths[i]-cellWidth(cell)+w.padding))
	}
	_, err := fmt.Fprintln(w.out, strings.TrimRight(sb.String(), " "))
	return err
}

// cellWidth is the printed width of s, ignoring color escape sequences.
func cellWidth(s string) int {
	return text.RuneWidthWithoutEscSequences(s)
}
