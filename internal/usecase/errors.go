package usecase

import (
	"errors"
	"strings"

	"github.com/xavierca1/painel-crm/internal/entity"
)

// DomainError é uma regra de negócio violada; Err aponta o sentinel de entity.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError embrulha falhas de infraestrutura (banco, fila, integrações).
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func NotFound(msg string) error {
	return &DomainError{Code: "NOT_FOUND", Message: msg, Err: entity.ErrNotFound}
}

func Conflict(msg string) error {
	return &DomainError{Code: "CONFLICT", Message: msg, Err: entity.ErrConflict}
}

func Technical(code, msg string, err error) error {
	return &TechnicalError{Code: code, Message: msg, Err: err}
}

// wrapRepo converte os erros de repositório mais comuns em DomainError.
func wrapRepo(err error, notFoundMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, entity.ErrNotFound):
		return NotFound(notFoundMsg)
	case errors.Is(err, entity.ErrConflict):
		return Conflict("Registro já cadastrado")
	default:
		return err
	}
}

var friendlyMessages = []struct {
	match   string
	message string
}{
	{`"exists":false`, "Este número não possui WhatsApp"},
	{"duplicate key", "Registro já cadastrado"},
	{"deadline exceeded", "O serviço demorou para responder. Tente novamente"},
	{"timeout", "O serviço demorou para responder. Tente novamente"},
	{"connection refused", "Serviço indisponível no momento"},
	{"whatsapp não configurado", "Envio de WhatsApp não configurado para este cliente"},
	{"invalid phone", "Número de telefone inválido"},
	{"rate limit", "Muitas requisições. Aguarde alguns instantes"},
}

// FriendlyMessage traduz mensagens técnicas conhecidas em texto para o usuário.
// Mensagens desconhecidas passam sem alteração.
func FriendlyMessage(err error) string {
	if err == nil {
		return ""
	}
	raw := err.Error()
	lower := strings.ToLower(raw)
	for _, fm := range friendlyMessages {
		if strings.Contains(lower, strings.ToLower(fm.match)) {
			return fm.message
		}
	}
	return raw
}
