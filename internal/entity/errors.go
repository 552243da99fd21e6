package entity

import "errors"

var (
	ErrNotFound     = errors.New("registro não encontrado")
	ErrConflict     = errors.New("registro já cadastrado")
	ErrValidation   = errors.New("dados inválidos")
	ErrUnauthorized = errors.New("sessão expirada ou inválida")
	ErrForbidden    = errors.New("acesso negado")
)
