package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/painel-crm/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, cliente_id, nome, telefone, email, cpf_cnpj, qualificacao, origem, observacao,
	ia_pausada, followup_ativo, created_at, updated_at`

const leadSearch = `cliente_id = $1 AND ($2 = '' OR nome ILIKE $2 OR telefone ILIKE $2
	OR email ILIKE $2 OR qualificacao ILIKE $2)`

type scanner interface {
	Scan(dest ...any) error
}

func scanLead(s scanner) (*entity.Lead, error) {
	var l entity.Lead
	var email, doc, qual, origem, obs sql.NullString
	err := s.Scan(&l.ID, &l.ClienteID, &l.Nome, &l.Telefone, &email, &doc, &qual, &origem, &obs,
		&l.IAPausada, &l.FollowUpAtivo, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	l.Email = fromNull(email)
	l.CPFCNPJ = fromNull(doc)
	l.Qualificacao = fromNull(qual)
	l.Origem = fromNull(origem)
	l.Observacao = fromNull(obs)
	return &l, nil
}

func (r *LeadRepository) List(ctx context.Context, clienteID string, page entity.PageRequest) ([]entity.Lead, int, error) {
	q := likePattern(page.Search)

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads WHERE `+leadSearch, clienteID, q).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar leads: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE `+leadSearch+`
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		clienteID, q, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar leads: %w", err)
	}
	defer rows.Close()

	leads, err := collectLeads(rows)
	return leads, total, err
}

func collectLeads(rows *sql.Rows) ([]entity.Lead, error) {
	leads := []entity.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler lead: %w", err)
		}
		leads = append(leads, *l)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) ListAll(ctx context.Context, clienteID string) ([]entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE cliente_id = $1 ORDER BY created_at DESC`, clienteID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar leads: %w", err)
	}
	defer rows.Close()
	return collectLeads(rows)
}

func (r *LeadRepository) FindByID(ctx context.Context, clienteID, id string) (*entity.Lead, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE cliente_id = $1 AND id = $2`, clienteID, id)
	l, err := scanLead(row)
	if err != nil {
		return nil, mapError(err)
	}
	return l, nil
}

func (r *LeadRepository) FindByTelefone(ctx context.Context, clienteID, telefone string) (*entity.Lead, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE cliente_id = $1 AND telefone = $2`, clienteID, telefone)
	l, err := scanLead(row)
	if err != nil {
		return nil, mapError(err)
	}
	return l, nil
}

const leadInsert = `INSERT INTO leads (id, cliente_id, nome, telefone, email, cpf_cnpj, qualificacao, origem,
	observacao, ia_pausada, followup_ativo, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

func leadArgs(l *entity.Lead) []any {
	return []any{l.ID, l.ClienteID, l.Nome, l.Telefone, nullString(l.Email), nullString(l.CPFCNPJ),
		nullString(l.Qualificacao), nullString(l.Origem), nullString(l.Observacao),
		l.IAPausada, l.FollowUpAtivo, l.CreatedAt, l.UpdatedAt}
}

func (r *LeadRepository) Create(ctx context.Context, l *entity.Lead) error {
	_, err := r.DB.ExecContext(ctx, leadInsert, leadArgs(l)...)
	return mapError(err)
}

func (r *LeadRepository) InsertIgnore(ctx context.Context, l *entity.Lead) (bool, error) {
	res, err := r.DB.ExecContext(ctx, leadInsert+` ON CONFLICT (cliente_id, telefone) DO NOTHING`, leadArgs(l)...)
	if err != nil {
		return false, mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *LeadRepository) Update(ctx context.Context, l *entity.Lead) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE leads SET nome = $3, telefone = $4, email = $5, cpf_cnpj = $6, qualificacao = $7,
			origem = $8, observacao = $9, updated_at = $10
		WHERE cliente_id = $1 AND id = $2`,
		l.ClienteID, l.ID, l.Nome, l.Telefone, nullString(l.Email), nullString(l.CPFCNPJ),
		nullString(l.Qualificacao), nullString(l.Origem), nullString(l.Observacao), l.UpdatedAt)
	return mustAffect(res, err)
}

func (r *LeadRepository) Delete(ctx context.Context, clienteID, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE cliente_id = $1 AND id = $2`, clienteID, id)
	return mustAffect(res, err)
}

func (r *LeadRepository) SetIAPausada(ctx context.Context, clienteID, id string, pausada bool) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE leads SET ia_pausada = $3, updated_at = NOW() WHERE cliente_id = $1 AND id = $2`,
		clienteID, id, pausada)
	return mustAffect(res, err)
}

func (r *LeadRepository) SetIAPausadaByTelefone(ctx context.Context, clienteID, telefone string, pausada bool) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE leads SET ia_pausada = $3, updated_at = NOW() WHERE cliente_id = $1 AND telefone = $2`,
		clienteID, telefone, pausada)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *LeadRepository) SetFollowUpAtivo(ctx context.Context, clienteID, id string, ativo bool) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE leads SET followup_ativo = $3, updated_at = NOW() WHERE cliente_id = $1 AND id = $2`,
		clienteID, id, ativo)
	return mustAffect(res, err)
}
