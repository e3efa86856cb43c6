// Package report renders printable PDF documents for invoices and
// attendance timesheets.
package report

import (
	"fmt"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
)

var zebra = &color.Color{Red: 240, Green: 240, Blue: 240}

func newDocument(title, subtitle string) pdf.Maroto {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	m.RegisterHeader(func() {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(title, props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  16,
				})
			})
		})
		if subtitle != "" {
			m.Row(10, func() {
				m.Col(12, func() {
					m.Text(subtitle, props.Text{
						Top:   3,
						Style: consts.Normal,
						Align: consts.Center,
						Size:  12,
					})
				})
			})
		}
	})
	return m
}

func table(m pdf.Maroto, headers []string, rows [][]string, grid []uint) {
	m.TableList(headers, rows, props.TableList{
		HeaderProp: props.TableListContent{
			Size:      10,
			GridSizes: grid,
		},
		ContentProp: props.TableListContent{
			Size:      9,
			GridSizes: grid,
		},
		Align:                consts.Center,
		AlternatedBackground: zebra,
		HeaderContentSpace:   1,
		Line:                 false,
	})
}

func footer(m pdf.Maroto, label, value string) {
	m.Row(20, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("%s: %s", label, value), props.Text{
				Top:   10,
				Style: consts.Bold,
				Align: consts.Right,
				Size:  12,
			})
		})
	})
}

func output(m pdf.Maroto) ([]byte, error) {
	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
