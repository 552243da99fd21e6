package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Base de conhecimento: agrupa documentos e é vinculada a agentes.
type Base struct {
	ID              string    `json:"id"`
	ClienteID       string    `json:"cliente_id"`
	Nome            string    `json:"nome"`
	Descricao       string    `json:"descricao,omitempty"`
	Ativo           bool      `json:"ativo"`
	TotalDocumentos int       `json:"total_documentos"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewBase(clienteID, nome, descricao string) *Base {
	now := time.Now()
	return &Base{
		ID:        uuid.New().String(),
		ClienteID: clienteID,
		Nome:      nome,
		Descricao: descricao,
		Ativo:     true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type Documento struct {
	ID        string    `json:"id"`
	ClienteID string    `json:"cliente_id"`
	BaseID    string    `json:"base_id"`
	Titulo    string    `json:"titulo"`
	Conteudo  string    `json:"conteudo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewDocumento(clienteID, baseID, titulo, conteudo string) *Documento {
	now := time.Now()
	return &Documento{
		ID:        uuid.New().String(),
		ClienteID: clienteID,
		BaseID:    baseID,
		Titulo:    titulo,
		Conteudo:  conteudo,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type BaseRepositoryInterface interface {
	List(ctx context.Context, clienteID string, page PageRequest) ([]Base, int, error)
	FindByID(ctx context.Context, clienteID, id string) (*Base, error)
	// Missing devolve os ids que não pertencem ao cliente.
	Missing(ctx context.Context, clienteID string, ids []string) ([]string, error)
	Create(ctx context.Context, b *Base) error
	Update(ctx context.Context, b *Base) error
	Delete(ctx context.Context, clienteID, id string) error
}

type DocumentoRepositoryInterface interface {
	List(ctx context.Context, clienteID, baseID string, page PageRequest) ([]Documento, int, error)
	FindByID(ctx context.Context, clienteID, id string) (*Documento, error)
	Create(ctx context.Context, d *Documento) error
	Update(ctx context.Context, d *Documento) error
	Delete(ctx context.Context, clienteID, id string) error
	IDsByBase(ctx context.Context, clienteID, baseID string) ([]string, error)
}
