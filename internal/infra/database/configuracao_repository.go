package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/painel-crm/internal/entity"
)

type ConfiguracaoRepository struct {
	DB *sql.DB
}

func NewConfiguracaoRepository(db *sql.DB) *ConfiguracaoRepository {
	return &ConfiguracaoRepository{DB: db}
}

func (r *ConfiguracaoRepository) List(ctx context.Context, clienteID string) ([]entity.Configuracao, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT cliente_id, chave, valor, updated_at FROM configuracoes WHERE cliente_id = $1 ORDER BY chave`, clienteID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar configurações: %w", err)
	}
	defer rows.Close()
	return scanConfiguracoes(rows)
}

func scanConfiguracoes(rows *sql.Rows) ([]entity.Configuracao, error) {
	cfgs := []entity.Configuracao{}
	for rows.Next() {
		var c entity.Configuracao
		if err := rows.Scan(&c.ClienteID, &c.Chave, &c.Valor, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler configuração: %w", err)
		}
		cfgs = append(cfgs, c)
	}
	return cfgs, rows.Err()
}

func (r *ConfiguracaoRepository) Get(ctx context.Context, clienteID, chave string) (*entity.Configuracao, error) {
	var c entity.Configuracao
	err := r.DB.QueryRowContext(ctx,
		`SELECT cliente_id, chave, valor, updated_at FROM configuracoes WHERE cliente_id = $1 AND chave = $2`,
		clienteID, chave).Scan(&c.ClienteID, &c.Chave, &c.Valor, &c.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

func (r *ConfiguracaoRepository) ListByChave(ctx context.Context, chave string) ([]entity.Configuracao, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT cliente_id, chave, valor, updated_at FROM configuracoes
		WHERE chave = $1 AND TRIM(valor) <> '' ORDER BY cliente_id`, chave)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar configuração %s: %w", chave, err)
	}
	defer rows.Close()
	return scanConfiguracoes(rows)
}

func (r *ConfiguracaoRepository) Upsert(ctx context.Context, c *entity.Configuracao) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO configuracoes (cliente_id, chave, valor, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cliente_id, chave) DO UPDATE SET valor = EXCLUDED.valor, updated_at = EXCLUDED.updated_at`,
		c.ClienteID, c.Chave, c.Valor, c.UpdatedAt)
	return mapError(err)
}

func (r *ConfiguracaoRepository) Delete(ctx context.Context, clienteID, chave string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM configuracoes WHERE cliente_id = $1 AND chave = $2`, clienteID, chave)
	return mustAffect(res, err)
}

type ProfileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*entity.Profile, error) {
	var p entity.Profile
	var avatar sql.NullString
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, nome, email, cliente_id, avatar_url FROM profiles WHERE id = $1`, id).
		Scan(&p.ID, &p.Nome, &p.Email, &p.ClienteID, &avatar)
	if err != nil {
		return nil, mapError(err)
	}
	p.AvatarURL = fromNull(avatar)
	return &p, nil
}
