package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/painel-crm/internal/entity"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var leadCols = []string{"id", "cliente_id", "nome", "telefone", "email", "cpf_cnpj", "qualificacao",
	"origem", "observacao", "ia_pausada", "followup_ativo", "created_at", "updated_at"}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "", likePattern("   "))
	assert.Equal(t, "%maria%", likePattern(" maria "))
	assert.Equal(t, `%50\%\_off\\%`, likePattern(`50%_off\`))
}

func TestMapError(t *testing.T) {
	assert.Nil(t, mapError(nil))
	assert.ErrorIs(t, mapError(sql.ErrNoRows), entity.ErrNotFound)

	err := mapError(&pq.Error{Code: "23505", Constraint: "leads_cliente_id_telefone_key"})
	assert.ErrorIs(t, err, entity.ErrConflict)
	assert.Contains(t, err.Error(), "leads_cliente_id_telefone_key")

	other := errors.New("boom")
	assert.Equal(t, other, mapError(other))
}

func TestLeadRepository_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLeadRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM leads`).
		WithArgs("c1", "%ana%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(`SELECT id, cliente_id, nome, .+ FROM leads WHERE cliente_id = \$1 .+ ORDER BY created_at DESC LIMIT \$3 OFFSET \$4`).
		WithArgs("c1", "%ana%", 10, 10).
		WillReturnRows(sqlmock.NewRows(leadCols).
			AddRow("l1", "c1", "Ana", "5511999998888", nil, nil, "quente", "site", nil, false, true, now, now))

	page := entity.NewPageRequest(2, 10)
	page.Search = "ana"
	leads, total, err := repo.List(context.Background(), "c1", page)

	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, leads, 1)
	assert.Equal(t, "quente", leads[0].Qualificacao)
	assert.Empty(t, leads[0].Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLeadRepository(db)

	mock.ExpectQuery(`FROM leads WHERE cliente_id = \$1 AND id = \$2`).
		WithArgs("c1", "x").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "c1", "x")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestLeadRepository_InsertIgnore(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLeadRepository(db)
	l := entity.NewLead("c1", "Ana", "5511999998888")

	mock.ExpectExec(`INSERT INTO leads .* ON CONFLICT \(cliente_id, telefone\) DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.InsertIgnore(context.Background(), l)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLeadRepository_Update_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLeadRepository(db)
	l := entity.NewLead("c1", "Ana", "5511999998888")

	mock.ExpectExec(`UPDATE leads SET nome`).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Update(context.Background(), l), entity.ErrNotFound)
}

func TestLeadRepository_Create_Conflict(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLeadRepository(db)

	mock.ExpectExec(`INSERT INTO leads`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "leads_cliente_id_telefone_key"})

	err := repo.Create(context.Background(), entity.NewLead("c1", "Ana", "5511999998888"))
	assert.ErrorIs(t, err, entity.ErrConflict)
}

func TestAgenteRepository_FindByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAgenteRepository(db)
	now := time.Now()

	mock.ExpectQuery(`FROM agentes a LEFT JOIN tipos_agente t`).
		WithArgs("c1", "a1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "cliente_id", "nome", "tipo_agente_id", "tipo", "prompt",
			"base_ids", "ativo", "horario_inicio", "horario_fim", "dias_semana", "created_at", "updated_at"}).
			AddRow("a1", "c1", "Sofia", "vendas", "Vendas", "Seja cordial", "{b1,b2}", true, "08:00", "18:00", "{1,2,3}", now, now))

	a, err := repo.FindByID(context.Background(), "c1", "a1")
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b2"}, a.BaseIDs)
	assert.Equal(t, []int{1, 2, 3}, a.DiasSemana)
	assert.Equal(t, "Vendas", a.TipoAgenteNome)
}

func TestAgenteRepository_CountByBase(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAgenteRepository(db)

	mock.ExpectQuery(`\$2 = ANY\(base_ids\)`).
		WithArgs("c1", "b1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := repo.CountByBase(context.Background(), "c1", "b1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestBaseRepository_Missing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBaseRepository(db)

	mock.ExpectQuery(`unnest\(\$2::text\[\]\)`).
		WithArgs("c1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("b9"))

	missing, err := repo.Missing(context.Background(), "c1", []string{"b1", "b9"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b9"}, missing)
}

func TestDocumentoRepository_Delete_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDocumentoRepository(db)

	mock.ExpectExec(`DELETE FROM documentos`).WithArgs("c1", "d1").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "c1", "d1"), entity.ErrNotFound)
}

func TestDocumentoRepository_IDsByBase(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDocumentoRepository(db)

	mock.ExpectQuery(`SELECT id FROM documentos WHERE cliente_id = \$1 AND base_id = \$2`).
		WithArgs("c1", "b1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("d1").AddRow("d2"))

	ids, err := repo.IDsByBase(context.Background(), "c1", "b1")
	require.NoError(t, err)
	assert.Equal(t, []string{"d1", "d2"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMensagemRepository_PorDia(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMensagemRepository(db)

	mock.ExpectQuery(`FILTER \(WHERE e.status = 'SUCESSO'\)`).
		WithArgs("c1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"dia", "id", "ativo", "total", "sucesso", "erro", "pendente"}).
			AddRow(1, "m1", true, 10, 7, 2, 1).
			AddRow(3, "m3", false, 0, 0, 0, 0))

	stats, err := repo.PorDia(context.Background(), "c1", nil)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, 7, stats[0].Sucesso)
	assert.False(t, stats[1].Ativo)
}

func TestEnvioRepository_Pendentes(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEnvioRepository(db)
	agora := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`NOT EXISTS`).
		WithArgs("2026-03-10", "09:30").
		WillReturnRows(sqlmock.NewRows([]string{"cliente_id", "mensagem_id", "lead_id", "dia", "mensagem", "nome", "telefone"}).
			AddRow("c1", "m1", "l1", 2, "Oi {{primeiro_nome}}", "Ana Souza", "5511999998888"))

	out, err := repo.Pendentes(context.Background(), agora)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Ana Souza", out[0].Nome)
	assert.Equal(t, 2, out[0].Dia)
}

func TestEnvioRepository_Reserve(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEnvioRepository(db)
	e := entity.NewFollowUpEnvio(entity.FollowUpPendente{ClienteID: "c1", MensagemID: "m1", LeadID: "l1", Dia: 1}, time.Now())

	mock.ExpectExec(`ON CONFLICT \(mensagem_id, lead_id\) DO NOTHING`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`ON CONFLICT \(mensagem_id, lead_id\) DO NOTHING`).WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Reserve(context.Background(), e)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Reserve(context.Background(), e)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEnvioRepository_MarkErro(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEnvioRepository(db)

	mock.ExpectExec(`UPDATE followup_envios SET status = \$2, erro = \$3`).
		WithArgs("e1", entity.EnvioErro, "Este número não possui WhatsApp").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkErro(context.Background(), "e1", "Este número não possui WhatsApp"))
}

func TestConfiguracaoRepository_Get_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewConfiguracaoRepository(db)

	mock.ExpectQuery(`FROM configuracoes WHERE cliente_id = \$1 AND chave = \$2`).
		WithArgs("c1", entity.ChaveEmailRelatorio).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "c1", entity.ChaveEmailRelatorio)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestConfiguracaoRepository_ListByChave(t *testing.T) {
	db, mock := newMock(t)
	repo := NewConfiguracaoRepository(db)
	now := time.Now()

	mock.ExpectQuery(`FROM configuracoes WHERE chave = \$1 AND TRIM\(valor\) <> ''`).
		WithArgs(entity.ChaveEmailRelatorio).
		WillReturnRows(sqlmock.NewRows([]string{"cliente_id", "chave", "valor", "updated_at"}).
			AddRow("c1", entity.ChaveEmailRelatorio, "dono@c1.com", now).
			AddRow("c2", entity.ChaveEmailRelatorio, "ops@c2.com", now))

	cfgs, err := repo.ListByChave(context.Background(), entity.ChaveEmailRelatorio)
	require.NoError(t, err)
	require.Len(t, cfgs, 2)
	assert.Equal(t, "c2", cfgs[1].ClienteID)
	assert.Equal(t, "ops@c2.com", cfgs[1].Valor)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChatRepository_Clientes(t *testing.T) {
	db, mock := newMock(t)
	repo := NewChatRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM \(`).
		WithArgs("c1", "").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`DISTINCT ON \(c.telefone\)`).
		WithArgs("c1", "", 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"telefone", "nome", "conteudo", "created_at", "total", "ia_pausada"}).
			AddRow("5511999998888", "Ana", "Obrigada!", now, 4, true))

	out, total, err := repo.Clientes(context.Background(), "c1", entity.NewPageRequest(1, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, out, 1)
	assert.True(t, out[0].IAPausada)
	assert.Equal(t, 4, out[0].Total)
}

func TestRunMigrations(t *testing.T) {
	db, mock := newMock(t)
	for range migrations {
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS`).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, RunMigrations(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
