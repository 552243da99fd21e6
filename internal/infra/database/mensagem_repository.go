package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/xavierca1/painel-crm/internal/entity"
)

type MensagemRepository struct {
	DB *sql.DB
}

func NewMensagemRepository(db *sql.DB) *MensagemRepository {
	return &MensagemRepository{DB: db}
}

const mensagemColumns = `id, cliente_id, dia, mensagem, horario, agente_id, ativo, created_at, updated_at`

func scanMensagem(s scanner) (*entity.Mensagem, error) {
	var m entity.Mensagem
	var agente sql.NullString
	err := s.Scan(&m.ID, &m.ClienteID, &m.Dia, &m.Mensagem, &m.Horario, &agente, &m.Ativo, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.AgenteID = fromNull(agente)
	return &m, nil
}

func (r *MensagemRepository) List(ctx context.Context, clienteID string, page entity.PageRequest) ([]entity.Mensagem, int, error) {
	q := likePattern(page.Search)
	where := ` WHERE cliente_id = $1 AND ($2 = '' OR mensagem ILIKE $2)`

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM mensagens`+where, clienteID, q).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar mensagens: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+mensagemColumns+` FROM mensagens`+where+` ORDER BY dia LIMIT $3 OFFSET $4`,
		clienteID, q, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar mensagens: %w", err)
	}
	defer rows.Close()

	msgs := []entity.Mensagem{}
	for rows.Next() {
		m, err := scanMensagem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("erro ao ler mensagem: %w", err)
		}
		msgs = append(msgs, *m)
	}
	return msgs, total, rows.Err()
}

func (r *MensagemRepository) FindByID(ctx context.Context, clienteID, id string) (*entity.Mensagem, error) {
	m, err := scanMensagem(r.DB.QueryRowContext(ctx,
		`SELECT `+mensagemColumns+` FROM mensagens WHERE cliente_id = $1 AND id = $2`, clienteID, id))
	if err != nil {
		return nil, mapError(err)
	}
	return m, nil
}

func (r *MensagemRepository) Create(ctx context.Context, m *entity.Mensagem) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO mensagens (id, cliente_id, dia, mensagem, horario, agente_id, ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.ClienteID, m.Dia, m.Mensagem, m.Horario, nullString(m.AgenteID), m.Ativo, m.CreatedAt, m.UpdatedAt)
	return mapError(err)
}

func (r *MensagemRepository) Update(ctx context.Context, m *entity.Mensagem) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE mensagens SET dia = $3, mensagem = $4, horario = $5, agente_id = $6, ativo = $7, updated_at = $8
		WHERE cliente_id = $1 AND id = $2`,
		m.ClienteID, m.ID, m.Dia, m.Mensagem, m.Horario, nullString(m.AgenteID), m.Ativo, m.UpdatedAt)
	return mustAffect(res, err)
}

func (r *MensagemRepository) Delete(ctx context.Context, clienteID, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM mensagens WHERE cliente_id = $1 AND id = $2`, clienteID, id)
	return mustAffect(res, err)
}

// PorDia agrega os envios de cada mensagem. Com desde, conta só envios
// criados a partir desse instante.
func (r *MensagemRepository) PorDia(ctx context.Context, clienteID string, desde *time.Time) ([]entity.EstatisticaDia, error) {
	var from sql.NullTime
	if desde != nil {
		from = sql.NullTime{Time: *desde, Valid: true}
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT m.dia, m.id, m.ativo,
			COUNT(e.id),
			COUNT(e.id) FILTER (WHERE e.status = 'SUCESSO'),
			COUNT(e.id) FILTER (WHERE e.status = 'ERRO'),
			COUNT(e.id) FILTER (WHERE e.status = 'PENDENTE')
		FROM mensagens m
		LEFT JOIN followup_envios e ON e.mensagem_id = m.id AND ($2::timestamptz IS NULL OR e.created_at >= $2)
		WHERE m.cliente_id = $1
		GROUP BY m.dia, m.id, m.ativo
		ORDER BY m.dia`, clienteID, from)
	if err != nil {
		return nil, fmt.Errorf("erro ao agregar envios: %w", err)
	}
	defer rows.Close()

	stats := []entity.EstatisticaDia{}
	for rows.Next() {
		var s entity.EstatisticaDia
		if err := rows.Scan(&s.Dia, &s.MensagemID, &s.Ativo, &s.Total, &s.Sucesso, &s.Erro, &s.Pendente); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

type EnvioRepository struct {
	DB *sql.DB
}

func NewEnvioRepository(db *sql.DB) *EnvioRepository {
	return &EnvioRepository{DB: db}
}

func (r *EnvioRepository) List(ctx context.Context, clienteID, mensagemID, status string, page entity.PageRequest) ([]entity.FollowUpEnvio, int, error) {
	q := likePattern(page.Search)
	where := ` WHERE e.cliente_id = $1 AND ($2 = '' OR e.mensagem_id = $2) AND ($3 = '' OR e.status = $3)
		AND ($4 = '' OR l.nome ILIKE $4 OR l.telefone ILIKE $4)`

	var total int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM followup_envios e JOIN leads l ON l.id = e.lead_id`+where,
		clienteID, mensagemID, status, q).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao contar envios: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT e.id, e.cliente_id, e.mensagem_id, e.lead_id, l.nome, l.telefone, e.dia, e.status,
			e.erro, e.created_at, e.enviado_em
		FROM followup_envios e JOIN leads l ON l.id = e.lead_id`+where+`
		ORDER BY e.created_at DESC LIMIT $5 OFFSET $6`,
		clienteID, mensagemID, status, q, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar envios: %w", err)
	}
	defer rows.Close()

	envios := []entity.FollowUpEnvio{}
	for rows.Next() {
		var e entity.FollowUpEnvio
		var erro sql.NullString
		var enviado sql.NullTime
		err := rows.Scan(&e.ID, &e.ClienteID, &e.MensagemID, &e.LeadID, &e.LeadNome, &e.Telefone,
			&e.Dia, &e.Status, &erro, &e.CreatedAt, &enviado)
		if err != nil {
			return nil, 0, fmt.Errorf("erro ao ler envio: %w", err)
		}
		e.Erro = fromNull(erro)
		if enviado.Valid {
			t := enviado.Time
			e.EnviadoEm = &t
		}
		envios = append(envios, e)
	}
	return envios, total, rows.Err()
}

// Pendentes devolve os pares (mensagem ativa, lead apto) cujo dia venceu em
// agora e que ainda não têm envio registrado.
func (r *EnvioRepository) Pendentes(ctx context.Context, agora time.Time) ([]entity.FollowUpPendente, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT m.cliente_id, m.id, l.id, m.dia, m.mensagem, l.nome, l.telefone
		FROM mensagens m
		JOIN leads l ON l.cliente_id = m.cliente_id
		WHERE m.ativo
			AND l.followup_ativo AND NOT l.ia_pausada
			AND l.created_at::date + m.dia = $1::date
			AND m.horario <= $2
			AND NOT EXISTS (
				SELECT 1 FROM followup_envios e WHERE e.mensagem_id = m.id AND e.lead_id = l.id
			)
		ORDER BY m.cliente_id, m.dia`,
		agora.Format("2006-01-02"), agora.Format(entity.HorarioLayout))
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar follow-ups vencidos: %w", err)
	}
	defer rows.Close()

	var out []entity.FollowUpPendente
	for rows.Next() {
		var p entity.FollowUpPendente
		if err := rows.Scan(&p.ClienteID, &p.MensagemID, &p.LeadID, &p.Dia, &p.Texto, &p.Nome, &p.Telefone); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *EnvioRepository) Reserve(ctx context.Context, e *entity.FollowUpEnvio) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO followup_envios (id, cliente_id, mensagem_id, lead_id, dia, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (mensagem_id, lead_id) DO NOTHING`,
		e.ID, e.ClienteID, e.MensagemID, e.LeadID, e.Dia, e.Status, e.CreatedAt)
	if err != nil {
		return false, mapError(err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *EnvioRepository) MarkSucesso(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE followup_envios SET status = $2, erro = NULL, enviado_em = NOW() WHERE id = $1`,
		id, entity.EnvioSucesso)
	return mustAffect(res, err)
}

func (r *EnvioRepository) MarkErro(ctx context.Context, id, erro string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE followup_envios SET status = $2, erro = $3 WHERE id = $1`,
		id, entity.EnvioErro, erro)
	return mustAffect(res, err)
}
