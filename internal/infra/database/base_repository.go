package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/xavierca1/painel-crm/internal/entity"
)

type BaseRepository struct {
	DB *sql.DB
}

func NewBaseRepository(db *sql.DB) *BaseRepository {
	return &BaseRepository{DB: db}
}

const baseSelect = `SELECT b.id, b.cliente_id, b.nome, COALESCE(b.descricao, ''), b.ativo,
	(SELECT COUNT(*) FROM documentos d WHERE d.base_id = b.id), b.created_at, b.updated_at
	FROM bases b`

func scanBase(s scanner) (*entity.Base, error) {
	var b entity.Base
	err := s.Scan(&b.ID, &b.ClienteID, &b.Nome, &b.Descricao, &b.Ativo, &b.TotalDocumentos, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BaseRepository) List(ctx context.Context, clienteID string, page entity.PageRequest) ([]entity.Base, int, error) {
	q := likePattern(page.Search)
	where := ` WHERE b.cliente_id = $1 AND ($2 = '' OR b.nome ILIKE $2 OR b.descricao ILIKE $2)`

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM bases b`+where, clienteID, q).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar bases: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, baseSelect+where+` ORDER BY b.nome LIMIT $3 OFFSET $4`,
		clienteID, q, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar bases: %w", err)
	}
	defer rows.Close()

	bases := []entity.Base{}
	for rows.Next() {
		b, err := scanBase(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("erro ao ler base: %w", err)
		}
		bases = append(bases, *b)
	}
	return bases, total, rows.Err()
}

func (r *BaseRepository) FindByID(ctx context.Context, clienteID, id string) (*entity.Base, error) {
	b, err := scanBase(r.DB.QueryRowContext(ctx, baseSelect+` WHERE b.cliente_id = $1 AND b.id = $2`, clienteID, id))
	if err != nil {
		return nil, mapError(err)
	}
	return b, nil
}

func (r *BaseRepository) Missing(ctx context.Context, clienteID string, ids []string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT x.id FROM unnest($2::text[]) AS x(id)
		WHERE NOT EXISTS (SELECT 1 FROM bases b WHERE b.cliente_id = $1 AND b.id = x.id)`,
		clienteID, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("erro ao conferir bases: %w", err)
	}
	defer rows.Close()

	missing := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		missing = append(missing, id)
	}
	return missing, rows.Err()
}

func (r *BaseRepository) Create(ctx context.Context, b *entity.Base) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO bases (id, cliente_id, nome, descricao, ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.ClienteID, b.Nome, nullString(b.Descricao), b.Ativo, b.CreatedAt, b.UpdatedAt)
	return mapError(err)
}

func (r *BaseRepository) Update(ctx context.Context, b *entity.Base) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE bases SET nome = $3, descricao = $4, ativo = $5, updated_at = $6
		WHERE cliente_id = $1 AND id = $2`,
		b.ClienteID, b.ID, b.Nome, nullString(b.Descricao), b.Ativo, b.UpdatedAt)
	return mustAffect(res, err)
}

// Delete remove a base; os documentos saem por ON DELETE CASCADE.
func (r *BaseRepository) Delete(ctx context.Context, clienteID, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM bases WHERE cliente_id = $1 AND id = $2`, clienteID, id)
	return mustAffect(res, err)
}

type DocumentoRepository struct {
	DB *sql.DB
}

func NewDocumentoRepository(db *sql.DB) *DocumentoRepository {
	return &DocumentoRepository{DB: db}
}

const documentoColumns = `id, cliente_id, base_id, titulo, conteudo, created_at, updated_at`

func scanDocumento(s scanner) (*entity.Documento, error) {
	var d entity.Documento
	if err := s.Scan(&d.ID, &d.ClienteID, &d.BaseID, &d.Titulo, &d.Conteudo, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentoRepository) List(ctx context.Context, clienteID, baseID string, page entity.PageRequest) ([]entity.Documento, int, error) {
	q := likePattern(page.Search)
	where := ` WHERE cliente_id = $1 AND ($2 = '' OR base_id = $2) AND ($3 = '' OR titulo ILIKE $3 OR conteudo ILIKE $3)`

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM documentos`+where, clienteID, baseID, q).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar documentos: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+documentoColumns+` FROM documentos`+where+` ORDER BY updated_at DESC LIMIT $4 OFFSET $5`,
		clienteID, baseID, q, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar documentos: %w", err)
	}
	defer rows.Close()

	docs := []entity.Documento{}
	for rows.Next() {
		d, err := scanDocumento(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("erro ao ler documento: %w", err)
		}
		docs = append(docs, *d)
	}
	return docs, total, rows.Err()
}

func (r *DocumentoRepository) FindByID(ctx context.Context, clienteID, id string) (*entity.Documento, error) {
	d, err := scanDocumento(r.DB.QueryRowContext(ctx,
		`SELECT `+documentoColumns+` FROM documentos WHERE cliente_id = $1 AND id = $2`, clienteID, id))
	if err != nil {
		return nil, mapError(err)
	}
	return d, nil
}

func (r *DocumentoRepository) Create(ctx context.Context, d *entity.Documento) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO documentos (id, cliente_id, base_id, titulo, conteudo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.ClienteID, d.BaseID, d.Titulo, d.Conteudo, d.CreatedAt, d.UpdatedAt)
	return mapError(err)
}

func (r *DocumentoRepository) Update(ctx context.Context, d *entity.Documento) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE documentos SET base_id = $3, titulo = $4, conteudo = $5, updated_at = $6
		WHERE cliente_id = $1 AND id = $2`,
		d.ClienteID, d.ID, d.BaseID, d.Titulo, d.Conteudo, d.UpdatedAt)
	return mustAffect(res, err)
}

func (r *DocumentoRepository) Delete(ctx context.Context, clienteID, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM documentos WHERE cliente_id = $1 AND id = $2`, clienteID, id)
	return mustAffect(res, err)
}

func (r *DocumentoRepository) IDsByBase(ctx context.Context, clienteID, baseID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id FROM documentos WHERE cliente_id = $1 AND base_id = $2`, clienteID, baseID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar documentos da base: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("erro ao ler documento: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
