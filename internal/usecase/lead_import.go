package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/xavierca1/painel-crm/internal/entity"
	"github.com/xavierca1/painel-crm/internal/infra/logger"
)

const importAmostra = 5

// ImportCampos são os campos do lead que aceitam mapeamento de coluna.
var ImportCampos = []string{"nome", "telefone", "email", "cpf_cnpj", "qualificacao", "origem", "observacao"}

var importAliases = map[string][]string{
	"nome":         {"nome", "name", "cliente", "nomecompleto"},
	"telefone":     {"telefone", "celular", "whatsapp", "phone", "fone", "tel"},
	"email":        {"email", "e-mail", "mail"},
	"cpf_cnpj":     {"cpfcnpj", "cpf", "cnpj", "documento", "doc"},
	"qualificacao": {"qualificacao", "status", "tag", "etiqueta"},
	"origem":       {"origem", "fonte", "source", "canal"},
	"observacao":   {"observacao", "observacoes", "obs", "notas", "nota"},
}

// foldHeader remove acentos, caixa e pontuação: "Observação " vira "observacao".
func foldHeader(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	var b strings.Builder
	for _, r := range strings.ToLower(out) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SuggestMapping tenta casar cada campo com uma coluna, primeiro por nome
// exato e depois por coluna que contenha o apelido.
func SuggestMapping(headers []string) map[string]string {
	folded := make([]string, len(headers))
	for i, h := range headers {
		folded[i] = foldHeader(h)
	}

	mapping := make(map[string]string)
	used := make(map[int]bool)

	match := func(exact bool) {
		for _, campo := range ImportCampos {
			if _, ok := mapping[campo]; ok {
				continue
			}
		aliases:
			for _, alias := range importAliases[campo] {
				a := foldHeader(alias)
				for i, f := range folded {
					if used[i] || f == "" {
						continue
					}
					if (exact && f == a) || (!exact && strings.Contains(f, a)) {
						mapping[campo] = headers[i]
						used[i] = true
						break aliases
					}
				}
			}
		}
	}
	match(true)
	match(false)
	return mapping
}

func (uc *LeadUseCase) Preview(p Planilha) (*ImportPreview, error) {
	if len(p.Headers) == 0 {
		return nil, ValidationErrors{{Field: "arquivo", Message: "arquivo vazio ou sem cabeçalho"}}
	}
	// linhas em branco não contam: Import também as ignora
	amostra := [][]string{}
	total := 0
	for _, row := range p.Rows {
		if blankRow(row) {
			continue
		}
		total++
		if len(amostra) < importAmostra {
			amostra = append(amostra, row)
		}
	}
	return &ImportPreview{
		Headers:     p.Headers,
		Amostra:     amostra,
		TotalLinhas: total,
		Mapeamento:  SuggestMapping(p.Headers),
		Campos:      ImportCampos,
	}, nil
}

func validateMapping(headers []string, mapping map[string]string) (map[string]int, error) {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}

	var errs ValidationErrors
	cols := make(map[string]int)
	for _, campo := range ImportCampos {
		header := strings.TrimSpace(mapping[campo])
		if header == "" {
			if campo == "nome" || campo == "telefone" {
				errs.add(campo, "mapeamento obrigatório")
			}
			continue
		}
		i, ok := idx[header]
		if !ok {
			errs.add(campo, fmt.Sprintf("coluna '%s' não existe no arquivo", header))
			continue
		}
		cols[campo] = i
	}
	return cols, errs.err()
}

func cell(row []string, cols map[string]int, campo string) string {
	i, ok := cols[campo]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Import valida e grava cada linha; a linha reportada é a da planilha (cabeçalho = 1).
func (uc *LeadUseCase) Import(ctx context.Context, clienteID string, p Planilha, mapping map[string]string) (*ImportResult, error) {
	cols, err := validateMapping(p.Headers, mapping)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Erros: []ImportErro{}}
	vistos := make(map[string]int)

	for i, row := range p.Rows {
		if blankRow(row) {
			continue
		}
		linha := i + 2
		result.Total++

		in := LeadInput{
			Nome:         cell(row, cols, "nome"),
			Telefone:     cell(row, cols, "telefone"),
			Email:        cell(row, cols, "email"),
			CPFCNPJ:      cell(row, cols, "cpf_cnpj"),
			Qualificacao: cell(row, cols, "qualificacao"),
			Origem:       cell(row, cols, "origem"),
			Observacao:   cell(row, cols, "observacao"),
		}
		if err := ValidateLeadInput(in); err != nil {
			result.Erros = append(result.Erros, ImportErro{linha, err.Error()})
			continue
		}

		telefone := NormalizePhone(in.Telefone)
		if primeira, ok := vistos[telefone]; ok {
			result.Erros = append(result.Erros, ImportErro{linha, fmt.Sprintf("telefone repetido (linha %d)", primeira)})
			continue
		}
		vistos[telefone] = linha

		lead := entity.NewLead(clienteID, "", "")
		applyLeadInput(lead, in)
		if in.Origem == "" {
			lead.Origem = "importacao"
		}

		inserted, err := uc.Repo.InsertIgnore(ctx, lead)
		if err != nil {
			result.Erros = append(result.Erros, ImportErro{linha, FriendlyMessage(err)})
			continue
		}
		if inserted {
			result.Importados++
		} else {
			result.Ignorados++
		}
	}

	logger.WithCliente(clienteID).
		Infof("📥 Importação concluída: %d linhas, %d importados, %d ignorados, %d erros",
			result.Total, result.Importados, result.Ignorados, len(result.Erros))
	return result, nil
}
