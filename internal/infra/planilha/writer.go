package planilha

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/xavierca1/painel-crm/internal/infra/logger"
)

// WriteCSV grava com ';' e BOM para o Excel pt-BR abrir com acentos.
func WriteCSV(w io.Writer, headers []string, rows [][]string) error {
	if _, err := w.Write(bom); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(headers); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("erro ao gravar CSV: %w", err)
	}
	return nil
}

func WriteXLSX(w io.Writer, sheet string, headers []string, rows [][]string) error {
	xlsx := excelize.NewFile()
	defer func() {
		if err := xlsx.Close(); err != nil {
			logger.WithComponent("planilha").WithError(err).Error("Erro ao fechar arquivo XLSX")
		}
	}()

	if err := xlsx.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("falha ao nomear aba: %w", err)
	}

	headerStyle, err := xlsx.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1A659E"}, Pattern: 1},
		Font:      &excelize.Font{Color: "FFFFFF", Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("falha ao criar estilo: %w", err)
	}

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		xlsx.SetCellValue(sheet, cell, h)
		xlsx.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	// Telefone e CPF ficam como texto para não virar notação científica.
	for r, row := range rows {
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			xlsx.SetCellStr(sheet, cell, v)
		}
	}

	if len(headers) > 0 {
		last, _ := excelize.ColumnNumberToName(len(headers))
		xlsx.SetColWidth(sheet, "A", last, 22)
	}

	if err := xlsx.Write(w); err != nil {
		return fmt.Errorf("falha ao gravar XLSX: %w", err)
	}
	return nil
}
