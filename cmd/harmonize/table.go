package main

import (
	"github.com/jedib0t/go-pretty/v6/table"

	"harmonize/internal/model"
)

func renderFailureTable(failures []model.ConversionResult) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Source", "Error"})
	for _, f := range failures {
		msg := ""
		if f.Err != nil {
			msg = f.Err.Error()
		}
		tw.AppendRow(table.Row{f.Task.Source.Path, msg})
	}
	return tw.Render()
}
