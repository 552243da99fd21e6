package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/painel-crm/internal/entity"
)

func TestDispatchDue(t *testing.T) {
	envios := new(MockEnvioRepository)
	pub := new(MockPublisher)
	agora := time.Date(2024, 5, 10, 9, 5, 0, 0, time.UTC)

	envios.On("Pendentes", mock.Anything, agora).Return([]entity.FollowUpPendente{
		{ClienteID: "c1", MensagemID: "m1", LeadID: "l1", Dia: 1, Texto: "Oi {{primeiro_nome}}", Nome: "Ana Lima", Telefone: "5511987654321"},
		{ClienteID: "c1", MensagemID: "m1", LeadID: "l2", Dia: 1, Texto: "Oi", Nome: "Bia", Telefone: "5511912345678"},
		{ClienteID: "c1", MensagemID: "m1", LeadID: "l3", Dia: 1, Texto: "Oi", Nome: "Cris", Telefone: "5511900000000"},
	}, nil)
	envios.On("Reserve", mock.Anything, mock.MatchedBy(func(e *entity.FollowUpEnvio) bool { return e.LeadID == "l1" })).Return(true, nil)
	envios.On("Reserve", mock.Anything, mock.MatchedBy(func(e *entity.FollowUpEnvio) bool { return e.LeadID == "l2" })).Return(false, nil)
	envios.On("Reserve", mock.Anything, mock.MatchedBy(func(e *entity.FollowUpEnvio) bool { return e.LeadID == "l3" })).Return(true, nil)

	pub.On("PublishFollowUp", mock.Anything, mock.MatchedBy(func(p entity.FollowUpPayload) bool {
		return p.LeadID == "l1" && p.Texto == "Oi Ana" && p.EnvioID != ""
	})).Return(nil)
	pub.On("PublishFollowUp", mock.Anything, mock.MatchedBy(func(p entity.FollowUpPayload) bool { return p.LeadID == "l3" })).
		Return(errors.New("connection refused"))
	envios.On("MarkErro", mock.Anything, mock.Anything, "Falha ao enfileirar: Serviço indisponível no momento").Return(nil)

	uc := NewFollowUpUseCase(envios, nil, nil, pub, nil, nil)
	n, err := uc.DispatchDue(context.Background(), agora)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	pub.AssertNumberOfCalls(t, "PublishFollowUp", 2)
	envios.AssertNumberOfCalls(t, "MarkErro", 1)
}

func TestDeliverSuccess(t *testing.T) {
	envios := new(MockEnvioRepository)
	sender := new(MockSender)
	sender.On("SendText", mock.Anything, "5511987654321", "Oi Ana").Return(nil)
	envios.On("MarkSucesso", mock.Anything, "e1").Return(nil)

	uc := NewFollowUpUseCase(envios, nil, nil, nil, sender, nil)
	err := uc.Deliver(context.Background(), entity.FollowUpPayload{EnvioID: "e1", Telefone: "5511987654321", Texto: "Oi Ana"})

	assert.NoError(t, err)
	envios.AssertExpectations(t)
}

func TestDeliverFailureMarksFriendlyError(t *testing.T) {
	envios := new(MockEnvioRepository)
	sender := new(MockSender)
	sender.On("SendText", mock.Anything, mock.Anything, mock.Anything).Return(errors.New(`{"exists":false}`))
	envios.On("MarkErro", mock.Anything, "e1", "Este número não possui WhatsApp").Return(nil)

	uc := NewFollowUpUseCase(envios, nil, nil, nil, sender, nil)
	err := uc.Deliver(context.Background(), entity.FollowUpPayload{EnvioID: "e1", Telefone: "x", Texto: "y"})

	assert.Error(t, err)
	envios.AssertExpectations(t)
	envios.AssertNotCalled(t, "MarkSucesso", mock.Anything, mock.Anything)
}

func TestSendDailyReports(t *testing.T) {
	envios := new(MockEnvioRepository)
	msgs := new(MockMensagemRepository)
	cfgs := new(MockConfiguracaoRepository)
	mailer := new(MockMailer)

	dia := time.Date(2024, 5, 10, 20, 0, 0, 0, time.UTC)
	inicio := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	cfgs.On("ListByChave", mock.Anything, entity.ChaveEmailRelatorio).Return([]entity.Configuracao{
		{ClienteID: "c1", Valor: "dono@c1.com"},
		{ClienteID: "c3", Valor: "  "},
	}, nil)
	msgs.On("PorDia", mock.Anything, "c1", &inicio).Return([]entity.EstatisticaDia{
		{Dia: 1, Total: 10, Sucesso: 8, Erro: 2},
		{Dia: 3, Total: 4, Sucesso: 4},
	}, nil)
	mailer.On("SendFollowUpReport", "dono@c1.com", mock.MatchedBy(func(r RelatorioFollowUp) bool {
		return r.Total == 14 && r.Sucesso == 12 && r.Erro == 2 && r.Data == "10/05/2024"
	})).Return(nil)

	uc := NewFollowUpUseCase(envios, msgs, cfgs, nil, nil, mailer)
	n, err := uc.SendDailyReports(context.Background(), dia)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	mailer.AssertExpectations(t)
	msgs.AssertNumberOfCalls(t, "PorDia", 1)
}

func TestSendDailyReportsWithoutEnvios(t *testing.T) {
	msgs := new(MockMensagemRepository)
	cfgs := new(MockConfiguracaoRepository)
	mailer := new(MockMailer)

	dia := time.Date(2024, 5, 11, 20, 0, 0, 0, time.UTC)
	cfgs.On("ListByChave", mock.Anything, entity.ChaveEmailRelatorio).
		Return([]entity.Configuracao{{ClienteID: "c1", Valor: "dono@c1.com"}}, nil)
	msgs.On("PorDia", mock.Anything, "c1", mock.Anything).Return([]entity.EstatisticaDia{}, nil)
	mailer.On("SendFollowUpReport", "dono@c1.com", mock.MatchedBy(func(r RelatorioFollowUp) bool {
		return r.ClienteID == "c1" && r.Total == 0 && r.Data == "11/05/2024"
	})).Return(nil)

	n, err := NewFollowUpUseCase(new(MockEnvioRepository), msgs, cfgs, nil, nil, mailer).SendDailyReports(context.Background(), dia)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	mailer.AssertExpectations(t)
}

func TestSendDailyReportsListError(t *testing.T) {
	cfgs := new(MockConfiguracaoRepository)
	cfgs.On("ListByChave", mock.Anything, entity.ChaveEmailRelatorio).
		Return([]entity.Configuracao(nil), errors.New("connection refused"))

	_, err := NewFollowUpUseCase(nil, nil, cfgs, nil, nil, new(MockMailer)).SendDailyReports(context.Background(), time.Now())
	assert.ErrorContains(t, err, "erro ao listar e-mails de relatório")
}

func TestMensagemEnviosRejectsStatus(t *testing.T) {
	uc := NewMensagemUseCase(new(MockMensagemRepository), new(MockEnvioRepository), new(MockAgenteRepository))
	_, err := uc.Envios(context.Background(), "c1", "m1", "talvez", entity.NewPageRequest(1, 10))
	assert.True(t, errors.Is(err, entity.ErrValidation))
	assert.Equal(t, []string{"status"}, fieldsOf(t, err))
}

func TestMensagemEnvios(t *testing.T) {
	msgs := new(MockMensagemRepository)
	envios := new(MockEnvioRepository)
	req := entity.NewPageRequest(1, 10)

	msgs.On("FindByID", mock.Anything, "c1", "m1").Return(&entity.Mensagem{ID: "m1"}, nil)
	envios.On("List", mock.Anything, "c1", "m1", "ERRO", req).
		Return([]entity.FollowUpEnvio{{ID: "e1", Telefone: "5511987654321", Status: "ERRO"}}, 1, nil)

	out, err := NewMensagemUseCase(msgs, envios, new(MockAgenteRepository)).Envios(context.Background(), "c1", "m1", "erro", req)
	require.NoError(t, err)
	assert.Equal(t, "+55 (11) 98765-4321", out.Items[0].Telefone)
	assert.Equal(t, 1, out.Pagination.TotalPages)
}

func TestCreateMensagemDuplicateDia(t *testing.T) {
	msgs := new(MockMensagemRepository)
	msgs.On("Create", mock.Anything, mock.Anything).Return(entity.ErrConflict)

	uc := NewMensagemUseCase(msgs, new(MockEnvioRepository), new(MockAgenteRepository))
	_, err := uc.Create(context.Background(), "c1", MensagemInput{Dia: 2, Mensagem: "Oi"})
	assert.True(t, errors.Is(err, entity.ErrConflict))
	assert.EqualError(t, err, "Já existe uma mensagem para esse dia")
}

func TestCreateMensagemDefaultHorario(t *testing.T) {
	msgs := new(MockMensagemRepository)
	msgs.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := NewMensagemUseCase(msgs, new(MockEnvioRepository), new(MockAgenteRepository))
	m, err := uc.Create(context.Background(), "c1", MensagemInput{Dia: 2, Mensagem: " Oi {{primeiro_nome}} "})
	require.NoError(t, err)
	assert.Equal(t, entity.HorarioPadrao, m.Horario)
	assert.Equal(t, "Oi {{primeiro_nome}}", m.Mensagem)
	assert.True(t, m.Ativo)
}
