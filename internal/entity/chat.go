package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	RemetenteCliente = "cliente"
	RemetenteAgente  = "agente"
	RemetenteHumano  = "humano"
)

type ChatMensagem struct {
	ID        string    `json:"id"`
	ClienteID string    `json:"cliente_id"`
	Telefone  string    `json:"telefone"`
	Remetente string    `json:"remetente"`
	Conteudo  string    `json:"conteudo"`
	CreatedAt time.Time `json:"created_at"`
}

func NewChatMensagem(clienteID, telefone, remetente, conteudo string) *ChatMensagem {
	return &ChatMensagem{
		ID:        uuid.New().String(),
		ClienteID: clienteID,
		Telefone:  telefone,
		Remetente: remetente,
		Conteudo:  conteudo,
		CreatedAt: time.Now(),
	}
}

func RemetenteValido(r string) bool {
	return r == RemetenteCliente || r == RemetenteAgente || r == RemetenteHumano
}

// ChatCliente resume uma conversa (um telefone) para a lista lateral do chat.
type ChatCliente struct {
	Telefone          string    `json:"telefone"`
	TelefoneFormatado string    `json:"telefone_formatado,omitempty"`
	Nome              string    `json:"nome,omitempty"`
	UltimaMensagem    string    `json:"ultima_mensagem"`
	UltimaData        time.Time `json:"ultima_data"`
	Total             int       `json:"total"`
	IAPausada         bool      `json:"ia_pausada"`
}

type ChatRepositoryInterface interface {
	Clientes(ctx context.Context, clienteID string, page PageRequest) ([]ChatCliente, int, error)
	Mensagens(ctx context.Context, clienteID, telefone string, page PageRequest) ([]ChatMensagem, int, error)
	Save(ctx context.Context, m *ChatMensagem) error
}
