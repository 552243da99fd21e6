package entity

import (
	"context"
	"time"
)

const ChaveEmailRelatorio = "email_relatorio"

type Configuracao struct {
	ClienteID string    `json:"cliente_id"`
	Chave     string    `json:"chave"`
	Valor     string    `json:"valor"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ConfiguracaoRepositoryInterface interface {
	List(ctx context.Context, clienteID string) ([]Configuracao, error)
	Get(ctx context.Context, clienteID, chave string) (*Configuracao, error)
	// ListByChave devolve a chave de todos os clientes, ignorando valores vazios.
	ListByChave(ctx context.Context, chave string) ([]Configuracao, error)
	Upsert(ctx context.Context, c *Configuracao) error
	Delete(ctx context.Context, clienteID, chave string) error
}
