package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xavierca1/painel-crm/internal/entity"
)

const (
	maxMensagemChars = 4096
	maxValorChars    = 50000
	maxChaveChars    = 64
)

var validChave = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

type ValidationError struct {
	Field   string `json:"campo"`
	Message string `json:"mensagem"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors junta todos os problemas de um input; nil quando está tudo certo.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

func (v ValidationErrors) Unwrap() error {
	return entity.ErrValidation
}

func (v *ValidationErrors) add(field, msg string) {
	*v = append(*v, ValidationError{field, msg})
}

func (v ValidationErrors) err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func runeLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

func ValidateLeadInput(in LeadInput) error {
	var errs ValidationErrors

	switch n := runeLen(in.Nome); {
	case n == 0:
		errs.add("nome", "é obrigatório")
	case n < 2:
		errs.add("nome", "deve ter pelo menos 2 caracteres")
	case n > 200:
		errs.add("nome", "deve ter no máximo 200 caracteres")
	}

	if strings.TrimSpace(in.Telefone) == "" {
		errs.add("telefone", "é obrigatório")
	} else if !isValidPhoneNumber(in.Telefone) {
		errs.add("telefone", "deve ter entre 10 e 13 dígitos")
	}

	if strings.TrimSpace(in.Email) != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			errs.add("email", "é inválido")
		}
	}

	if strings.TrimSpace(in.CPFCNPJ) != "" && !IsValidDocumento(in.CPFCNPJ) {
		errs.add("cpf_cnpj", "CPF/CNPJ inválido")
	}

	return errs.err()
}

func isValidPhoneNumber(phone string) bool {
	n := len(OnlyDigits(phone))
	return n >= 10 && n <= 13
}

func isValidHorario(h string) bool {
	_, err := time.Parse(entity.HorarioLayout, h)
	return err == nil && len(h) == 5
}

func ValidateAgenteInput(in AgenteInput) error {
	var errs ValidationErrors

	if strings.TrimSpace(in.Nome) == "" {
		errs.add("nome", "é obrigatório")
	} else if runeLen(in.Nome) > 120 {
		errs.add("nome", "deve ter no máximo 120 caracteres")
	}
	if strings.TrimSpace(in.TipoAgenteID) == "" {
		errs.add("tipo_agente_id", "é obrigatório")
	}
	if strings.TrimSpace(in.Prompt) == "" {
		errs.add("prompt", "é obrigatório")
	}

	inicio, fim := strings.TrimSpace(in.HorarioInicio), strings.TrimSpace(in.HorarioFim)
	switch {
	case inicio == "" && fim == "":
	case inicio == "" || fim == "":
		errs.add("horario", "informe início e fim, ou nenhum dos dois")
	case !isValidHorario(inicio):
		errs.add("horario_inicio", "use o formato HH:MM")
	case !isValidHorario(fim):
		errs.add("horario_fim", "use o formato HH:MM")
	case inicio >= fim:
		errs.add("horario", "início deve ser antes do fim")
	}

	for _, d := range in.DiasSemana {
		if d < 0 || d > 6 {
			errs.add("dias_semana", "valores entre 0 (domingo) e 6 (sábado)")
			break
		}
	}

	return errs.err()
}

func ValidateBaseInput(in BaseInput) error {
	var errs ValidationErrors
	if strings.TrimSpace(in.Nome) == "" {
		errs.add("nome", "é obrigatório")
	} else if runeLen(in.Nome) > 120 {
		errs.add("nome", "deve ter no máximo 120 caracteres")
	}
	return errs.err()
}

func ValidateDocumentoInput(in DocumentoInput) error {
	var errs ValidationErrors
	if strings.TrimSpace(in.BaseID) == "" {
		errs.add("base_id", "é obrigatório")
	}
	if strings.TrimSpace(in.Titulo) == "" {
		errs.add("titulo", "é obrigatório")
	} else if runeLen(in.Titulo) > 200 {
		errs.add("titulo", "deve ter no máximo 200 caracteres")
	}
	if strings.TrimSpace(in.Conteudo) == "" {
		errs.add("conteudo", "é obrigatório")
	}
	return errs.err()
}

func ValidateMensagemInput(in MensagemInput) error {
	var errs ValidationErrors
	if in.Dia < 1 {
		errs.add("dia", "deve ser maior ou igual a 1")
	}
	if strings.TrimSpace(in.Mensagem) == "" {
		errs.add("mensagem", "é obrigatória")
	} else if utf8.RuneCountInString(in.Mensagem) > maxMensagemChars {
		errs.add("mensagem", fmt.Sprintf("deve ter no máximo %d caracteres", maxMensagemChars))
	}
	if in.Horario != "" && !isValidHorario(in.Horario) {
		errs.add("horario", "use o formato HH:MM")
	}
	return errs.err()
}

func ValidateConfiguracao(chave, valor string) error {
	var errs ValidationErrors
	if chave == "" {
		errs.add("chave", "é obrigatória")
	} else if len(chave) > maxChaveChars || !validChave.MatchString(chave) {
		errs.add("chave", "use apenas letras, números e _ (até 64)")
	}
	if utf8.RuneCountInString(valor) > maxValorChars {
		errs.add("valor", fmt.Sprintf("deve ter no máximo %d caracteres", maxValorChars))
	}
	return errs.err()
}

// SanitizeValor remove bytes nulos e espaços nas pontas.
func SanitizeValor(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\x00", ""))
}
