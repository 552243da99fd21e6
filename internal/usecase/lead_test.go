package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/painel-crm/internal/entity"
)

func TestCreateLeadNormalizesAndSyncs(t *testing.T) {
	repo := new(MockLeadRepository)
	syncer := new(MockLeadSyncer)
	synced := make(chan *entity.Lead, 1)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(l *entity.Lead) bool {
		return l.Telefone == "5511987654321" && l.CPFCNPJ == "52998224725" && l.ClienteID == "c1"
	})).Return(nil)
	syncer.On("SyncLead", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { synced <- args.Get(1).(*entity.Lead) }).
		Return(nil)

	uc := NewLeadUseCase(repo, syncer)
	lead, err := uc.Create(context.Background(), "c1", LeadInput{
		Nome:     "  Maria Souza ",
		Telefone: "(11) 98765-4321",
		Email:    "Maria@X.com",
		CPFCNPJ:  "529.982.247-25",
	})

	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", lead.Nome)
	assert.Equal(t, "maria@x.com", lead.Email)
	assert.Equal(t, "+55 (11) 98765-4321", lead.TelefoneFormatado)
	assert.True(t, lead.FollowUpAtivo)

	select {
	case l := <-synced:
		assert.Equal(t, lead.ID, l.ID)
	case <-time.After(time.Second):
		t.Fatal("lead não foi sincronizado")
	}
	repo.AssertExpectations(t)
}

func TestCreateLeadDuplicate(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(entity.ErrConflict)

	uc := NewLeadUseCase(repo, nil)
	_, err := uc.Create(context.Background(), "c1", LeadInput{Nome: "Ana", Telefone: "11987654321"})

	assert.True(t, errors.Is(err, entity.ErrConflict))
	assert.Equal(t, "Registro já cadastrado", err.Error())
}

func TestCreateLeadInvalidSkipsRepo(t *testing.T) {
	repo := new(MockLeadRepository)
	uc := NewLeadUseCase(repo, nil)

	_, err := uc.Create(context.Background(), "c1", LeadInput{Nome: "Ana"})
	assert.True(t, errors.Is(err, entity.ErrValidation))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetLeadNotFound(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("FindByID", mock.Anything, "c1", "x").Return(nil, entity.ErrNotFound)

	_, err := NewLeadUseCase(repo, nil).Get(context.Background(), "c1", "x")
	assert.True(t, errors.Is(err, entity.ErrNotFound))
	assert.True(t, IsDomainError(err))
}

func TestListLeadsPagination(t *testing.T) {
	repo := new(MockLeadRepository)
	req := entity.NewPageRequest(2, 10)
	req.Search = "maria"
	repo.On("List", mock.Anything, "c1", req).
		Return([]entity.Lead{{ID: "1", Telefone: "5511987654321"}}, 11, nil)

	out, err := NewLeadUseCase(repo, nil).List(context.Background(), "c1", req)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Pagination.TotalPages)
	assert.Equal(t, "+55 (11) 98765-4321", out.Items[0].TelefoneFormatado)
}

func TestLeadBulkDelete(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Delete", mock.Anything, "c1", "1").Return(nil)
	repo.On("Delete", mock.Anything, "c1", "2").Return(entity.ErrNotFound)
	repo.On("Delete", mock.Anything, "c1", "3").Return(nil)

	res, err := NewLeadUseCase(repo, nil).BulkDelete(context.Background(), "c1", []string{"1", "2", "3"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Sucesso)
	assert.Equal(t, 1, res.Falha)
	assert.Equal(t, "Lead não encontrado", res.Falhas[0].Erro)
}

func TestExportRows(t *testing.T) {
	repo := new(MockLeadRepository)
	criado := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	repo.On("ListAll", mock.Anything, "c1").Return([]entity.Lead{
		{Nome: "Ana", Telefone: "5511987654321", Email: "ana@x.com", CPFCNPJ: "52998224725", Qualificacao: "quente", Origem: "site", CreatedAt: criado},
		{Nome: "Bia", Telefone: "551187654321", CreatedAt: criado},
	}, nil)

	headers, rows, err := NewLeadUseCase(repo, nil).ExportRows(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Nome", "Telefone", "Email", "CPF/CNPJ", "Qualificação", "Origem", "Data de Cadastro"}, headers)
	assert.Equal(t, []string{"Ana", "+55 (11) 98765-4321", "ana@x.com", "529.982.247-25", "quente", "site", "05/03/2024 14:30"}, rows[0])
	assert.Equal(t, "", rows[1][3])
}

func TestSuggestMapping(t *testing.T) {
	m := SuggestMapping([]string{"Nome Completo", "Celular", "E-mail", "CPF/CNPJ", "Observação", "Status"})
	assert.Equal(t, "Nome Completo", m["nome"])
	assert.Equal(t, "Celular", m["telefone"])
	assert.Equal(t, "E-mail", m["email"])
	assert.Equal(t, "CPF/CNPJ", m["cpf_cnpj"])
	assert.Equal(t, "Observação", m["observacao"])
	assert.Equal(t, "Status", m["qualificacao"])
	_, ok := m["origem"]
	assert.False(t, ok)
}

func TestPreview(t *testing.T) {
	uc := NewLeadUseCase(new(MockLeadRepository), nil)
	rows := make([][]string, 8)
	for i := range rows {
		rows[i] = []string{fmt.Sprintf("Lead %d", i), "11987654321"}
	}

	p, err := uc.Preview(Planilha{Headers: []string{"nome", "telefone"}, Rows: rows})
	require.NoError(t, err)
	assert.Len(t, p.Amostra, 5)
	assert.Equal(t, 8, p.TotalLinhas)
	assert.Equal(t, "telefone", p.Mapeamento["telefone"])

	_, err = uc.Preview(Planilha{})
	assert.Error(t, err)
}

func TestPreviewSkipsBlankRows(t *testing.T) {
	uc := NewLeadUseCase(new(MockLeadRepository), nil)
	rows := [][]string{
		{"Ana", "11987654321"},
		{"", "  "},
		{},
		{"Bia", "11912345678"},
	}

	p, err := uc.Preview(Planilha{Headers: []string{"nome", "telefone"}, Rows: rows})
	require.NoError(t, err)
	assert.Equal(t, 2, p.TotalLinhas)
	assert.Equal(t, [][]string{{"Ana", "11987654321"}, {"Bia", "11912345678"}}, p.Amostra)
}

func TestImportLeads(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("InsertIgnore", mock.Anything, mock.MatchedBy(func(l *entity.Lead) bool { return l.Telefone == "5511987654321" })).Return(true, nil)
	repo.On("InsertIgnore", mock.Anything, mock.MatchedBy(func(l *entity.Lead) bool { return l.Telefone == "5511912345678" })).Return(false, nil)

	p := Planilha{
		Headers: []string{"Nome", "Fone", "Email"},
		Rows: [][]string{
			{"Ana", "(11) 98765-4321", "ana@x.com"},
			{"Bia", "11 91234-5678", ""},
			{"", "", ""},
			{"C", "123", ""},
			{"Ana de novo", "11987654321", ""},
		},
	}
	uc := NewLeadUseCase(repo, nil)
	res, err := uc.Import(context.Background(), "c1", p, map[string]string{"nome": "Nome", "telefone": "Fone", "email": "Email"})

	require.NoError(t, err)
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 1, res.Importados)
	assert.Equal(t, 1, res.Ignorados)
	require.Len(t, res.Erros, 2)
	assert.Equal(t, 5, res.Erros[0].Linha)
	assert.Equal(t, 6, res.Erros[1].Linha)
	assert.Contains(t, res.Erros[1].Mensagem, "linha 2")
}

func TestImportRequiresMapping(t *testing.T) {
	uc := NewLeadUseCase(new(MockLeadRepository), nil)
	_, err := uc.Import(context.Background(), "c1", Planilha{Headers: []string{"Nome"}}, map[string]string{"nome": "Nome", "email": "X"})
	assert.ElementsMatch(t, []string{"telefone", "email"}, fieldsOf(t, err))
}
