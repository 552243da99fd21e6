package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/xavierca1/painel-crm/internal/entity"
	"github.com/xavierca1/painel-crm/internal/infra/logger"
)

const leadSyncTimeout = 15 * time.Second

var LeadExportHeaders = []string{"Nome", "Telefone", "Email", "CPF/CNPJ", "Qualificação", "Origem", "Data de Cadastro"}

type LeadUseCase struct {
	Repo   entity.LeadRepositoryInterface
	Syncer LeadSyncer
}

func NewLeadUseCase(repo entity.LeadRepositoryInterface, syncer LeadSyncer) *LeadUseCase {
	return &LeadUseCase{Repo: repo, Syncer: syncer}
}

func present(l *entity.Lead) {
	l.TelefoneFormatado = FormatPhone(l.Telefone)
}

func (uc *LeadUseCase) List(ctx context.Context, clienteID string, req entity.PageRequest) (*ListOutput[entity.Lead], error) {
	leads, total, err := uc.Repo.List(ctx, clienteID, req)
	if err != nil {
		return nil, err
	}
	for i := range leads {
		present(&leads[i])
	}
	return &ListOutput[entity.Lead]{Items: leads, Pagination: entity.NewPagination(req, total)}, nil
}

func (uc *LeadUseCase) Get(ctx context.Context, clienteID, id string) (*entity.Lead, error) {
	lead, err := uc.Repo.FindByID(ctx, clienteID, id)
	if err != nil {
		return nil, wrapRepo(err, "Lead não encontrado")
	}
	present(lead)
	return lead, nil
}

func applyLeadInput(l *entity.Lead, in LeadInput) {
	l.Nome = strings.TrimSpace(in.Nome)
	l.Telefone = NormalizePhone(in.Telefone)
	l.Email = strings.ToLower(strings.TrimSpace(in.Email))
	l.CPFCNPJ = OnlyDigits(in.CPFCNPJ)
	l.Qualificacao = strings.TrimSpace(in.Qualificacao)
	l.Origem = strings.TrimSpace(in.Origem)
	l.Observacao = strings.TrimSpace(in.Observacao)
}

func (uc *LeadUseCase) Create(ctx context.Context, clienteID string, in LeadInput) (*entity.Lead, error) {
	if err := ValidateLeadInput(in); err != nil {
		return nil, err
	}

	lead := entity.NewLead(clienteID, "", "")
	applyLeadInput(lead, in)

	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, wrapRepo(err, "Lead não encontrado")
	}
	present(lead)

	uc.syncAsync(*lead)
	return lead, nil
}

// syncAsync manda o lead para o CRM externo sem segurar a requisição.
func (uc *LeadUseCase) syncAsync(lead entity.Lead) {
	if uc.Syncer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), leadSyncTimeout)
		defer cancel()
		if err := uc.Syncer.SyncLead(ctx, &lead); err != nil {
			logger.WithCliente(lead.ClienteID).WithError(err).
				Warnf("⚠️ Falha ao sincronizar lead %s no CRM externo", lead.ID)
		}
	}()
}

func (uc *LeadUseCase) Update(ctx context.Context, clienteID, id string, in LeadInput) (*entity.Lead, error) {
	if err := ValidateLeadInput(in); err != nil {
		return nil, err
	}
	lead, err := uc.Repo.FindByID(ctx, clienteID, id)
	if err != nil {
		return nil, wrapRepo(err, "Lead não encontrado")
	}

	applyLeadInput(lead, in)
	lead.UpdatedAt = time.Now()

	if err := uc.Repo.Update(ctx, lead); err != nil {
		return nil, wrapRepo(err, "Lead não encontrado")
	}
	present(lead)
	return lead, nil
}

func (uc *LeadUseCase) Delete(ctx context.Context, clienteID, id string) error {
	return wrapRepo(uc.Repo.Delete(ctx, clienteID, id), "Lead não encontrado")
}

func (uc *LeadUseCase) BulkDelete(ctx context.Context, clienteID string, ids []string) (*BulkResult, error) {
	return BulkDelete(ctx, ids, func(ctx context.Context, id string) error {
		return uc.Delete(ctx, clienteID, id)
	})
}

func (uc *LeadUseCase) SetIAPausada(ctx context.Context, clienteID, id string, pausada bool) error {
	return wrapRepo(uc.Repo.SetIAPausada(ctx, clienteID, id, pausada), "Lead não encontrado")
}

func (uc *LeadUseCase) SetFollowUpAtivo(ctx context.Context, clienteID, id string, ativo bool) error {
	return wrapRepo(uc.Repo.SetFollowUpAtivo(ctx, clienteID, id, ativo), "Lead não encontrado")
}

// ExportRows monta as linhas da exportação com os cabeçalhos fixos em português.
func (uc *LeadUseCase) ExportRows(ctx context.Context, clienteID string) ([]string, [][]string, error) {
	leads, err := uc.Repo.ListAll(ctx, clienteID)
	if err != nil {
		return nil, nil, err
	}

	rows := make([][]string, 0, len(leads))
	for _, l := range leads {
		doc := ""
		if l.CPFCNPJ != "" {
			doc = FormatDocumento(l.CPFCNPJ)
		}
		rows = append(rows, []string{
			l.Nome,
			FormatPhone(l.Telefone),
			l.Email,
			doc,
			l.Qualificacao,
			l.Origem,
			l.CreatedAt.Format("02/01/2006 15:04"),
		})
	}
	return LeadExportHeaders, rows, nil
}
