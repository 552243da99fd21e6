package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/painel-crm/internal/entity"
)

type ChatRepository struct {
	DB *sql.DB
}

func NewChatRepository(db *sql.DB) *ChatRepository {
	return &ChatRepository{DB: db}
}

// Clientes lista uma linha por telefone, com a última mensagem da conversa,
// mais recentes primeiro. A busca casa nome do lead ou telefone.
func (r *ChatRepository) Clientes(ctx context.Context, clienteID string, page entity.PageRequest) ([]entity.ChatCliente, int, error) {
	q := likePattern(page.Search)
	const conversas = `
		WITH ultimas AS (
			SELECT DISTINCT ON (c.telefone) c.telefone, c.conteudo, c.created_at,
				COUNT(*) OVER (PARTITION BY c.telefone) AS total
			FROM chat_mensagens c
			WHERE c.cliente_id = $1
			ORDER BY c.telefone, c.created_at DESC
		)
		SELECT u.telefone, COALESCE(l.nome, ''), u.conteudo, u.created_at, u.total, COALESCE(l.ia_pausada, FALSE)
		FROM ultimas u
		LEFT JOIN leads l ON l.cliente_id = $1 AND l.telefone = u.telefone
		WHERE ($2 = '' OR u.telefone ILIKE $2 OR l.nome ILIKE $2)`

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM (`+conversas+`) x`, clienteID, q).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar conversas: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, conversas+` ORDER BY u.created_at DESC LIMIT $3 OFFSET $4`,
		clienteID, q, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar conversas: %w", err)
	}
	defer rows.Close()

	out := []entity.ChatCliente{}
	for rows.Next() {
		var c entity.ChatCliente
		if err := rows.Scan(&c.Telefone, &c.Nome, &c.UltimaMensagem, &c.UltimaData, &c.Total, &c.IAPausada); err != nil {
			return nil, 0, fmt.Errorf("erro ao ler conversa: %w", err)
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

// Mensagens pagina a conversa da mais recente para a mais antiga.
func (r *ChatRepository) Mensagens(ctx context.Context, clienteID, telefone string, page entity.PageRequest) ([]entity.ChatMensagem, int, error) {
	var total int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chat_mensagens WHERE cliente_id = $1 AND telefone = $2`, clienteID, telefone).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao contar mensagens do chat: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, cliente_id, telefone, remetente, conteudo, created_at
		FROM chat_mensagens WHERE cliente_id = $1 AND telefone = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		clienteID, telefone, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar mensagens do chat: %w", err)
	}
	defer rows.Close()

	msgs := []entity.ChatMensagem{}
	for rows.Next() {
		var m entity.ChatMensagem
		if err := rows.Scan(&m.ID, &m.ClienteID, &m.Telefone, &m.Remetente, &m.Conteudo, &m.CreatedAt); err != nil {
			return nil, 0, err
		}
		msgs = append(msgs, m)
	}
	return msgs, total, rows.Err()
}

func (r *ChatRepository) Save(ctx context.Context, m *entity.ChatMensagem) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO chat_mensagens (id, cliente_id, telefone, remetente, conteudo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.ClienteID, m.Telefone, m.Remetente, m.Conteudo, m.CreatedAt)
	return mapError(err)
}
