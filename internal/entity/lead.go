package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Lead struct {
	ID                string    `json:"id"`
	ClienteID         string    `json:"cliente_id"`
	Nome              string    `json:"nome"`
	Telefone          string    `json:"telefone"`
	TelefoneFormatado string    `json:"telefone_formatado,omitempty"`
	Email             string    `json:"email,omitempty"`
	CPFCNPJ           string    `json:"cpf_cnpj,omitempty"`
	Qualificacao      string    `json:"qualificacao,omitempty"`
	Origem            string    `json:"origem,omitempty"`
	Observacao        string    `json:"observacao,omitempty"`
	IAPausada         bool      `json:"ia_pausada"`
	FollowUpAtivo     bool      `json:"followup_ativo"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewLead já nasce com follow-up ligado; telefone deve vir normalizado.
func NewLead(clienteID, nome, telefone string) *Lead {
	now := time.Now()
	return &Lead{
		ID:            uuid.New().String(),
		ClienteID:     clienteID,
		Nome:          nome,
		Telefone:      telefone,
		FollowUpAtivo: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

type LeadRepositoryInterface interface {
	List(ctx context.Context, clienteID string, page PageRequest) ([]Lead, int, error)
	ListAll(ctx context.Context, clienteID string) ([]Lead, error)
	FindByID(ctx context.Context, clienteID, id string) (*Lead, error)
	FindByTelefone(ctx context.Context, clienteID, telefone string) (*Lead, error)
	Create(ctx context.Context, lead *Lead) error
	// InsertIgnore devolve false quando o telefone já existia para o cliente.
	InsertIgnore(ctx context.Context, lead *Lead) (bool, error)
	Update(ctx context.Context, lead *Lead) error
	Delete(ctx context.Context, clienteID, id string) error
	SetIAPausada(ctx context.Context, clienteID, id string, pausada bool) error
	SetIAPausadaByTelefone(ctx context.Context, clienteID, telefone string, pausada bool) (bool, error)
	SetFollowUpAtivo(ctx context.Context, clienteID, id string, ativo bool) error
}
