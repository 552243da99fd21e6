package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/painel-crm/internal/entity"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) List(ctx context.Context, clienteID string, page entity.PageRequest) ([]entity.Lead, int, error) {
	args := m.Called(ctx, clienteID, page)
	return args.Get(0).([]entity.Lead), args.Int(1), args.Error(2)
}

func (m *MockLeadRepository) ListAll(ctx context.Context, clienteID string) ([]entity.Lead, error) {
	args := m.Called(ctx, clienteID)
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, clienteID, id string) (*entity.Lead, error) {
	args := m.Called(ctx, clienteID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByTelefone(ctx context.Context, clienteID, telefone string) (*entity.Lead, error) {
	args := m.Called(ctx, clienteID, telefone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadRepository) InsertIgnore(ctx context.Context, lead *entity.Lead) (bool, error) {
	args := m.Called(ctx, lead)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, clienteID, id string) error {
	return m.Called(ctx, clienteID, id).Error(0)
}

func (m *MockLeadRepository) SetIAPausada(ctx context.Context, clienteID, id string, pausada bool) error {
	return m.Called(ctx, clienteID, id, pausada).Error(0)
}

func (m *MockLeadRepository) SetIAPausadaByTelefone(ctx context.Context, clienteID, telefone string, pausada bool) (bool, error) {
	args := m.Called(ctx, clienteID, telefone, pausada)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeadRepository) SetFollowUpAtivo(ctx context.Context, clienteID, id string, ativo bool) error {
	return m.Called(ctx, clienteID, id, ativo).Error(0)
}

type MockLeadSyncer struct {
	mock.Mock
}

func (m *MockLeadSyncer) SyncLead(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

type MockBaseRepository struct {
	mock.Mock
}

func (m *MockBaseRepository) List(ctx context.Context, clienteID string, page entity.PageRequest) ([]entity.Base, int, error) {
	args := m.Called(ctx, clienteID, page)
	return args.Get(0).([]entity.Base), args.Int(1), args.Error(2)
}

func (m *MockBaseRepository) FindByID(ctx context.Context, clienteID, id string) (*entity.Base, error) {
	args := m.Called(ctx, clienteID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Base), args.Error(1)
}

func (m *MockBaseRepository) Missing(ctx context.Context, clienteID string, ids []string) ([]string, error) {
	args := m.Called(ctx, clienteID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBaseRepository) Create(ctx context.Context, b *entity.Base) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBaseRepository) Update(ctx context.Context, b *entity.Base) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBaseRepository) Delete(ctx context.Context, clienteID, id string) error {
	return m.Called(ctx, clienteID, id).Error(0)
}

type MockAgenteRepository struct {
	mock.Mock
}

func (m *MockAgenteRepository) List(ctx context.Context, clienteID string, page entity.PageRequest) ([]entity.Agente, int, error) {
	args := m.Called(ctx, clienteID, page)
	return args.Get(0).([]entity.Agente), args.Int(1), args.Error(2)
}

func (m *MockAgenteRepository) FindByID(ctx context.Context, clienteID, id string) (*entity.Agente, error) {
	args := m.Called(ctx, clienteID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Agente), args.Error(1)
}

func (m *MockAgenteRepository) Create(ctx context.Context, a *entity.Agente) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAgenteRepository) Update(ctx context.Context, a *entity.Agente) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAgenteRepository) Delete(ctx context.Context, clienteID, id string) error {
	return m.Called(ctx, clienteID, id).Error(0)
}

func (m *MockAgenteRepository) SetAtivo(ctx context.Context, clienteID, id string, ativo bool) error {
	return m.Called(ctx, clienteID, id, ativo).Error(0)
}

func (m *MockAgenteRepository) CountByBase(ctx context.Context, clienteID, baseID string) (int, error) {
	args := m.Called(ctx, clienteID, baseID)
	return args.Int(0), args.Error(1)
}

type MockTipoAgenteRepository struct {
	mock.Mock
}

func (m *MockTipoAgenteRepository) List(ctx context.Context) ([]entity.TipoAgente, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.TipoAgente), args.Error(1)
}

func (m *MockTipoAgenteRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockDocumentoRepository struct {
	mock.Mock
}

func (m *MockDocumentoRepository) List(ctx context.Context, clienteID, baseID string, page entity.PageRequest) ([]entity.Documento, int, error) {
	args := m.Called(ctx, clienteID, baseID, page)
	return args.Get(0).([]entity.Documento), args.Int(1), args.Error(2)
}

func (m *MockDocumentoRepository) FindByID(ctx context.Context, clienteID, id string) (*entity.Documento, error) {
	args := m.Called(ctx, clienteID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Documento), args.Error(1)
}

func (m *MockDocumentoRepository) Create(ctx context.Context, d *entity.Documento) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDocumentoRepository) Update(ctx context.Context, d *entity.Documento) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDocumentoRepository) Delete(ctx context.Context, clienteID, id string) error {
	return m.Called(ctx, clienteID, id).Error(0)
}

func (m *MockDocumentoRepository) IDsByBase(ctx context.Context, clienteID, baseID string) ([]string, error) {
	args := m.Called(ctx, clienteID, baseID)
	return args.Get(0).([]string), args.Error(1)
}

type MockIndexer struct {
	mock.Mock
}

func (m *MockIndexer) Index(ctx context.Context, doc *entity.Documento) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockIndexer) Remove(ctx context.Context, clienteID, id string) error {
	return m.Called(ctx, clienteID, id).Error(0)
}

type MockMensagemRepository struct {
	mock.Mock
}

func (m *MockMensagemRepository) List(ctx context.Context, clienteID string, page entity.PageRequest) ([]entity.Mensagem, int, error) {
	args := m.Called(ctx, clienteID, page)
	return args.Get(0).([]entity.Mensagem), args.Int(1), args.Error(2)
}

func (m *MockMensagemRepository) FindByID(ctx context.Context, clienteID, id string) (*entity.Mensagem, error) {
	args := m.Called(ctx, clienteID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Mensagem), args.Error(1)
}

func (m *MockMensagemRepository) Create(ctx context.Context, msg *entity.Mensagem) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockMensagemRepository) Update(ctx context.Context, msg *entity.Mensagem) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockMensagemRepository) Delete(ctx context.Context, clienteID, id string) error {
	return m.Called(ctx, clienteID, id).Error(0)
}

func (m *MockMensagemRepository) PorDia(ctx context.Context, clienteID string, desde *time.Time) ([]entity.EstatisticaDia, error) {
	args := m.Called(ctx, clienteID, desde)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.EstatisticaDia), args.Error(1)
}

type MockEnvioRepository struct {
	mock.Mock
}

func (m *MockEnvioRepository) List(ctx context.Context, clienteID, mensagemID, status string, page entity.PageRequest) ([]entity.FollowUpEnvio, int, error) {
	args := m.Called(ctx, clienteID, mensagemID, status, page)
	return args.Get(0).([]entity.FollowUpEnvio), args.Int(1), args.Error(2)
}

func (m *MockEnvioRepository) Pendentes(ctx context.Context, agora time.Time) ([]entity.FollowUpPendente, error) {
	args := m.Called(ctx, agora)
	return args.Get(0).([]entity.FollowUpPendente), args.Error(1)
}

func (m *MockEnvioRepository) Reserve(ctx context.Context, e *entity.FollowUpEnvio) (bool, error) {
	args := m.Called(ctx, e)
	return args.Bool(0), args.Error(1)
}

func (m *MockEnvioRepository) MarkSucesso(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockEnvioRepository) MarkErro(ctx context.Context, id, erro string) error {
	return m.Called(ctx, id, erro).Error(0)
}

type MockConfiguracaoRepository struct {
	mock.Mock
}

func (m *MockConfiguracaoRepository) List(ctx context.Context, clienteID string) ([]entity.Configuracao, error) {
	args := m.Called(ctx, clienteID)
	return args.Get(0).([]entity.Configuracao), args.Error(1)
}

func (m *MockConfiguracaoRepository) Get(ctx context.Context, clienteID, chave string) (*entity.Configuracao, error) {
	args := m.Called(ctx, clienteID, chave)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Configuracao), args.Error(1)
}

func (m *MockConfiguracaoRepository) ListByChave(ctx context.Context, chave string) ([]entity.Configuracao, error) {
	args := m.Called(ctx, chave)
	return args.Get(0).([]entity.Configuracao), args.Error(1)
}

func (m *MockConfiguracaoRepository) Upsert(ctx context.Context, c *entity.Configuracao) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockConfiguracaoRepository) Delete(ctx context.Context, clienteID, chave string) error {
	return m.Called(ctx, clienteID, chave).Error(0)
}

type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) Clientes(ctx context.Context, clienteID string, page entity.PageRequest) ([]entity.ChatCliente, int, error) {
	args := m.Called(ctx, clienteID, page)
	return args.Get(0).([]entity.ChatCliente), args.Int(1), args.Error(2)
}

func (m *MockChatRepository) Mensagens(ctx context.Context, clienteID, telefone string, page entity.PageRequest) ([]entity.ChatMensagem, int, error) {
	args := m.Called(ctx, clienteID, telefone, page)
	return args.Get(0).([]entity.ChatMensagem), args.Int(1), args.Error(2)
}

func (m *MockChatRepository) Save(ctx context.Context, msg *entity.ChatMensagem) error {
	return m.Called(ctx, msg).Error(0)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendText(ctx context.Context, phone, text string) error {
	return m.Called(ctx, phone, text).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishFollowUp(ctx context.Context, payload entity.FollowUpPayload) error {
	return m.Called(ctx, payload).Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendFollowUpReport(to string, rel RelatorioFollowUp) error {
	return m.Called(to, rel).Error(0)
}
