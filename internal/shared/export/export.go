package export

import (
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Column maps a row field to its header title. Width is in centimetres; zero
// keeps the default width.
type Column struct {
	Field string
	Title string
	Width float64
}

// Sheet describes one worksheet: its header and one map per data row.
type Sheet struct {
	Name    string
	Columns []Column
	Rows    []map[string]string
}

func headerStyle() *xlsx.Style {
	style := xlsx.NewStyle()

	font := xlsx.DefaultFont()
	font.Bold = true

	alignment := xlsx.DefaultAlignment()
	alignment.Vertical = "center"

	style.Font = *font
	style.Alignment = *alignment
	style.ApplyFont = true
	style.ApplyAlignment = true
	return style
}

// Build renders s into a new workbook.
func Build(s Sheet) (*xlsx.File, error) {
	if len(s.Columns) == 0 {
		return nil, errors.New("export: sheet has no columns")
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet(s.Name)
	if err != nil {
		return nil, fmt.Errorf("export: add sheet: %w", err)
	}

	style := headerStyle()
	header := sheet.AddRow()
	header.SetHeightCM(1.0)
	for i, col := range s.Columns {
		cell := header.AddCell()
		cell.Value = col.Title
		cell.SetStyle(style)
		if col.Width > 0 {
			_ = sheet.SetColWidth(i, i, col.Width*10)
		}
	}

	for _, data := range s.Rows {
		row := sheet.AddRow()
		row.SetHeightCM(0.8)
		for _, col := range s.Columns {
			row.AddCell().Value = data[col.Field]
		}
	}

	return file, nil
}

// Write renders s and streams the workbook to w.
func Write(w io.Writer, s Sheet) error {
	file, err := Build(s)
	if err != nil {
		return err
	}
	return file.Write(w)
}

// Attach writes s as a downloadable attachment named filename.
func Attach(c *gin.Context, filename string, s Sheet) error {
	c.Header("Content-Type", ContentTypeXLSX)
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	return Write(c.Writer, s)
}
