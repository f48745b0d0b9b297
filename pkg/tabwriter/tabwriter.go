// Package tabwriter renders aligned tables for CLI output.
package tabwriter

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

const (
	minWidth = 6
	width    = 4
	padding  = 3
)

type Table struct {
	w      *tabwriter.Writer
	header []string
	rows   [][]string
}

func New(out io.Writer) *Table {
	return &Table{
		w: tabwriter.NewWriter(out, minWidth, width, padding, ' ', 0),
	}
}

// SetHeader sets the column titles, uppercased.
func (t *Table) SetHeader(cols ...string) {
	t.header = t.header[:0]
	for _, col := range cols {
		t.header = append(t.header, strings.ToUpper(col))
	}
}

func (t *Table) Append(cells ...any) {
	row := make([]string, 0, len(cells))
	for _, cell := range cells {
		row = append(row, fmt.Sprint(cell))
	}
	t.rows = append(t.rows, row)
}

func (t *Table) Render() error {
	if _, err := fmt.Fprintln(t.w, strings.Join(t.header, "\t")); err != nil {
		return err
	}
	for _, row := range t.rows {
		if _, err := fmt.Fprintln(t.w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return t.w.Flush()
}
