package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// tableView is one rendered table: optional title and footer around a
// header row and body.
type tableView struct {
	Title   string
	Headers []string
	Rows    [][]string
	Aligns  []columnAlignment
	Footer  []string
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	return tableView{Headers: headers, Rows: rows, Aligns: aligns}.Render()
}

func (v tableView) Render() string {
	columns := len(v.Headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if v.Title != "" {
		tw.SetTitle(v.Title)
	}
	tw.AppendHeader(toRow(v.Headers, columns))
	for _, row := range v.Rows {
		tw.AppendRow(toRow(row, columns))
	}
	if len(v.Footer) > 0 {
		tw.AppendFooter(toRow(v.Footer, columns))
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(v.Aligns) && v.Aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:           i + 1,
			Align:            align,
			AlignHeader:      text.AlignLeft,
			AlignFooter:      align,
			WidthMax:         72,
			WidthMaxEnforcer: text.WrapSoft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func toRow(values []string, columns int) table.Row {
	r := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		if i < len(values) {
			r[i] = values[i]
		} else {
			r[i] = ""
		}
	}
	return r
}
