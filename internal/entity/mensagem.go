package entity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	EnvioPendente = "PENDENTE"
	EnvioSucesso  = "SUCESSO"
	EnvioErro     = "ERRO"

	HorarioPadrao = "09:00"
)

// Mensagem de follow-up: enviada Dia dias após a captura do lead.
type Mensagem struct {
	ID        string    `json:"id"`
	ClienteID string    `json:"cliente_id"`
	Dia       int       `json:"dia"`
	Mensagem  string    `json:"mensagem"`
	Horario   string    `json:"horario"`
	AgenteID  string    `json:"agente_id,omitempty"`
	Ativo     bool      `json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewMensagem(clienteID string, dia int, texto string) *Mensagem {
	now := time.Now()
	return &Mensagem{
		ID:        uuid.New().String(),
		ClienteID: clienteID,
		Dia:       dia,
		Mensagem:  texto,
		Horario:   HorarioPadrao,
		Ativo:     true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Render troca {{nome}} e {{primeiro_nome}} pelos dados do lead.
func Render(texto, nome string) string {
	nome = strings.TrimSpace(nome)
	primeiro := nome
	if i := strings.IndexByte(nome, ' '); i > 0 {
		primeiro = nome[:i]
	}
	r := strings.NewReplacer("{{nome}}", nome, "{{primeiro_nome}}", primeiro)
	return r.Replace(texto)
}

type FollowUpEnvio struct {
	ID         string     `json:"id"`
	ClienteID  string     `json:"cliente_id"`
	MensagemID string     `json:"mensagem_id"`
	LeadID     string     `json:"lead_id"`
	LeadNome   string     `json:"lead_nome,omitempty"`
	Telefone   string     `json:"telefone,omitempty"`
	Dia        int        `json:"dia"`
	Status     string     `json:"status"`
	Erro       string     `json:"erro,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	EnviadoEm  *time.Time `json:"enviado_em,omitempty"`
}

func NewFollowUpEnvio(p FollowUpPendente, agora time.Time) *FollowUpEnvio {
	return &FollowUpEnvio{
		ID:         uuid.New().String(),
		ClienteID:  p.ClienteID,
		MensagemID: p.MensagemID,
		LeadID:     p.LeadID,
		LeadNome:   p.Nome,
		Telefone:   p.Telefone,
		Dia:        p.Dia,
		Status:     EnvioPendente,
		CreatedAt:  agora,
	}
}

// FollowUpPendente é um par (mensagem, lead) que venceu e ainda não tem envio.
type FollowUpPendente struct {
	ClienteID  string
	MensagemID string
	LeadID     string
	Dia        int
	Texto      string
	Nome       string
	Telefone   string
}

// FollowUpPayload é o que trafega na fila de disparo.
type FollowUpPayload struct {
	EnvioID    string `json:"envio_id"`
	ClienteID  string `json:"cliente_id"`
	MensagemID string `json:"mensagem_id"`
	LeadID     string `json:"lead_id"`
	Dia        int    `json:"dia"`
	Nome       string `json:"nome"`
	Telefone   string `json:"telefone"`
	Texto      string `json:"texto"`
}

type EstatisticaDia struct {
	Dia        int    `json:"dia"`
	MensagemID string `json:"mensagem_id"`
	Ativo      bool   `json:"ativo"`
	Total      int    `json:"total"`
	Sucesso    int    `json:"sucesso"`
	Erro       int    `json:"erro"`
	Pendente   int    `json:"pendente"`
}

type MensagemRepositoryInterface interface {
	List(ctx context.Context, clienteID string, page PageRequest) ([]Mensagem, int, error)
	FindByID(ctx context.Context, clienteID, id string) (*Mensagem, error)
	Create(ctx context.Context, m *Mensagem) error
	Update(ctx context.Context, m *Mensagem) error
	Delete(ctx context.Context, clienteID, id string) error
	PorDia(ctx context.Context, clienteID string, desde *time.Time) ([]EstatisticaDia, error)
}

type EnvioRepositoryInterface interface {
	List(ctx context.Context, clienteID, mensagemID, status string, page PageRequest) ([]FollowUpEnvio, int, error)
	Pendentes(ctx context.Context, agora time.Time) ([]FollowUpPendente, error)
	// Reserve cria o envio PENDENTE; devolve false se o par já tinha envio.
	Reserve(ctx context.Context, e *FollowUpEnvio) (bool, error)
	MarkSucesso(ctx context.Context, id string) error
	MarkErro(ctx context.Context, id, erro string) error
}
