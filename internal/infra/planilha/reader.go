package planilha

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/xavierca1/painel-crm/internal/usecase"
)

var (
	ErrFormato = errors.New("formato não suportado, envie .csv, .txt ou .xlsx")
	ErrVazia   = errors.New("planilha vazia")
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Read lê um CSV/TXT ou XLSX. A primeira linha é o cabeçalho; linhas vazias
// no fim são descartadas.
func Read(filename string, r io.Reader) (usecase.Planilha, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		rows, err = readCSV(r)
	case ".xlsx":
		rows, err = readXLSX(r)
	default:
		return usecase.Planilha{}, ErrFormato
	}
	if err != nil {
		return usecase.Planilha{}, err
	}
	return build(rows)
}

func build(rows [][]string) (usecase.Planilha, error) {
	for len(rows) > 0 && emptyRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return usecase.Planilha{}, ErrVazia
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}
	return usecase.Planilha{Headers: headers, Rows: rows[1:]}, nil
}

func emptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func readCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler arquivo: %w", err)
	}
	data = bytes.TrimPrefix(data, bom)

	// Planilhas exportadas pelo Excel em pt-BR costumam vir em Latin-1.
	if !utf8.Valid(data) {
		data, err = charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("erro ao decodificar arquivo: %w", err)
		}
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = detectDelimiter(data)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("erro ao ler CSV: %w", err)
	}
	return rows, nil
}

// detectDelimiter escolhe entre ';' e ',' pelo cabeçalho.
func detectDelimiter(data []byte) rune {
	header := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		header = data[:i]
	}
	if bytes.Count(header, []byte(";")) > bytes.Count(header, []byte(",")) {
		return ';'
	}
	return ','
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir XLSX: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrVazia
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("erro ao ler aba %s: %w", sheets[0], err)
	}
	return rows, nil
}
