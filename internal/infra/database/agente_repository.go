package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/xavierca1/painel-crm/internal/entity"
)

type AgenteRepository struct {
	DB *sql.DB
}

func NewAgenteRepository(db *sql.DB) *AgenteRepository {
	return &AgenteRepository{DB: db}
}

const agenteSelect = `SELECT a.id, a.cliente_id, a.nome, a.tipo_agente_id, COALESCE(t.nome, ''), a.prompt,
	a.base_ids, a.ativo, a.horario_inicio, a.horario_fim, a.dias_semana, a.created_at, a.updated_at
	FROM agentes a LEFT JOIN tipos_agente t ON t.id = a.tipo_agente_id`

func scanAgente(s scanner) (*entity.Agente, error) {
	var a entity.Agente
	var inicio, fim sql.NullString
	var bases pq.StringArray
	var dias pq.Int64Array
	err := s.Scan(&a.ID, &a.ClienteID, &a.Nome, &a.TipoAgenteID, &a.TipoAgenteNome, &a.Prompt,
		&bases, &a.Ativo, &inicio, &fim, &dias, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.BaseIDs = []string(bases)
	if a.BaseIDs == nil {
		a.BaseIDs = []string{}
	}
	a.HorarioInicio = fromNull(inicio)
	a.HorarioFim = fromNull(fim)
	for _, d := range dias {
		a.DiasSemana = append(a.DiasSemana, int(d))
	}
	return &a, nil
}

func diasArray(dias []int) pq.Int64Array {
	out := make(pq.Int64Array, 0, len(dias))
	for _, d := range dias {
		out = append(out, int64(d))
	}
	return out
}

func (r *AgenteRepository) List(ctx context.Context, clienteID string, page entity.PageRequest) ([]entity.Agente, int, error) {
	q := likePattern(page.Search)
	where := ` WHERE a.cliente_id = $1 AND ($2 = '' OR a.nome ILIKE $2)`

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM agentes a`+where, clienteID, q).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar agentes: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, agenteSelect+where+` ORDER BY a.nome LIMIT $3 OFFSET $4`,
		clienteID, q, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar agentes: %w", err)
	}
	defer rows.Close()

	agentes := []entity.Agente{}
	for rows.Next() {
		a, err := scanAgente(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("erro ao ler agente: %w", err)
		}
		agentes = append(agentes, *a)
	}
	return agentes, total, rows.Err()
}

func (r *AgenteRepository) FindByID(ctx context.Context, clienteID, id string) (*entity.Agente, error) {
	a, err := scanAgente(r.DB.QueryRowContext(ctx, agenteSelect+` WHERE a.cliente_id = $1 AND a.id = $2`, clienteID, id))
	if err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

func (r *AgenteRepository) Create(ctx context.Context, a *entity.Agente) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO agentes (id, cliente_id, nome, tipo_agente_id, prompt, base_ids, ativo,
			horario_inicio, horario_fim, dias_semana, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		a.ID, a.ClienteID, a.Nome, a.TipoAgenteID, a.Prompt, pq.Array(a.BaseIDs), a.Ativo,
		nullString(a.HorarioInicio), nullString(a.HorarioFim), diasArray(a.DiasSemana), a.CreatedAt, a.UpdatedAt)
	return mapError(err)
}

func (r *AgenteRepository) Update(ctx context.Context, a *entity.Agente) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE agentes SET nome = $3, tipo_agente_id = $4, prompt = $5, base_ids = $6, ativo = $7,
			horario_inicio = $8, horario_fim = $9, dias_semana = $10, updated_at = $11
		WHERE cliente_id = $1 AND id = $2`,
		a.ClienteID, a.ID, a.Nome, a.TipoAgenteID, a.Prompt, pq.Array(a.BaseIDs), a.Ativo,
		nullString(a.HorarioInicio), nullString(a.HorarioFim), diasArray(a.DiasSemana), a.UpdatedAt)
	return mustAffect(res, err)
}

func (r *AgenteRepository) Delete(ctx context.Context, clienteID, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM agentes WHERE cliente_id = $1 AND id = $2`, clienteID, id)
	return mustAffect(res, err)
}

func (r *AgenteRepository) SetAtivo(ctx context.Context, clienteID, id string, ativo bool) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE agentes SET ativo = $3, updated_at = NOW() WHERE cliente_id = $1 AND id = $2`,
		clienteID, id, ativo)
	return mustAffect(res, err)
}

func (r *AgenteRepository) CountByBase(ctx context.Context, clienteID, baseID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM agentes WHERE cliente_id = $1 AND $2 = ANY(base_ids)`, clienteID, baseID).Scan(&n)
	return n, err
}

type TipoAgenteRepository struct {
	DB *sql.DB
}

func NewTipoAgenteRepository(db *sql.DB) *TipoAgenteRepository {
	return &TipoAgenteRepository{DB: db}
}

func (r *TipoAgenteRepository) List(ctx context.Context) ([]entity.TipoAgente, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, nome, COALESCE(descricao, '') FROM tipos_agente ORDER BY nome`)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar tipos de agente: %w", err)
	}
	defer rows.Close()

	tipos := []entity.TipoAgente{}
	for rows.Next() {
		var t entity.TipoAgente
		if err := rows.Scan(&t.ID, &t.Nome, &t.Descricao); err != nil {
			return nil, err
		}
		tipos = append(tipos, t)
	}
	return tipos, rows.Err()
}

func (r *TipoAgenteRepository) Exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM tipos_agente WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}
