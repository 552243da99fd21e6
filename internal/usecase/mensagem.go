package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/xavierca1/painel-crm/internal/entity"
)

type MensagemUseCase struct {
	Repo       entity.MensagemRepositoryInterface
	EnvioRepo  entity.EnvioRepositoryInterface
	AgenteRepo entity.AgenteRepositoryInterface
}

func NewMensagemUseCase(repo entity.MensagemRepositoryInterface, envioRepo entity.EnvioRepositoryInterface, agenteRepo entity.AgenteRepositoryInterface) *MensagemUseCase {
	return &MensagemUseCase{Repo: repo, EnvioRepo: envioRepo, AgenteRepo: agenteRepo}
}

func (uc *MensagemUseCase) List(ctx context.Context, clienteID string, req entity.PageRequest) (*ListOutput[entity.Mensagem], error) {
	msgs, total, err := uc.Repo.List(ctx, clienteID, req)
	if err != nil {
		return nil, err
	}
	return &ListOutput[entity.Mensagem]{Items: msgs, Pagination: entity.NewPagination(req, total)}, nil
}

func (uc *MensagemUseCase) Get(ctx context.Context, clienteID, id string) (*entity.Mensagem, error) {
	m, err := uc.Repo.FindByID(ctx, clienteID, id)
	if err != nil {
		return nil, wrapRepo(err, "Mensagem não encontrada")
	}
	return m, nil
}

func (uc *MensagemUseCase) checkAgente(ctx context.Context, clienteID, agenteID string) error {
	if agenteID == "" {
		return nil
	}
	_, err := uc.AgenteRepo.FindByID(ctx, clienteID, agenteID)
	if errors.Is(err, entity.ErrNotFound) {
		return ValidationErrors{{Field: "agente_id", Message: "agente não encontrado"}}
	}
	return err
}

func applyMensagemInput(m *entity.Mensagem, in MensagemInput) {
	m.Dia = in.Dia
	m.Mensagem = strings.TrimSpace(in.Mensagem)
	m.Horario = in.Horario
	if m.Horario == "" {
		m.Horario = entity.HorarioPadrao
	}
	m.AgenteID = strings.TrimSpace(in.AgenteID)
	if in.Ativo != nil {
		m.Ativo = *in.Ativo
	}
}

func wrapMensagemConflict(err error) error {
	if errors.Is(err, entity.ErrConflict) {
		return Conflict("Já existe uma mensagem para esse dia")
	}
	return wrapRepo(err, "Mensagem não encontrada")
}

func (uc *MensagemUseCase) Create(ctx context.Context, clienteID string, in MensagemInput) (*entity.Mensagem, error) {
	if err := ValidateMensagemInput(in); err != nil {
		return nil, err
	}
	if err := uc.checkAgente(ctx, clienteID, in.AgenteID); err != nil {
		return nil, err
	}

	m := entity.NewMensagem(clienteID, in.Dia, "")
	applyMensagemInput(m, in)

	if err := uc.Repo.Create(ctx, m); err != nil {
		return nil, wrapMensagemConflict(err)
	}
	return m, nil
}

func (uc *MensagemUseCase) Update(ctx context.Context, clienteID, id string, in MensagemInput) (*entity.Mensagem, error) {
	if err := ValidateMensagemInput(in); err != nil {
		return nil, err
	}
	m, err := uc.Repo.FindByID(ctx, clienteID, id)
	if err != nil {
		return nil, wrapRepo(err, "Mensagem não encontrada")
	}
	if err := uc.checkAgente(ctx, clienteID, in.AgenteID); err != nil {
		return nil, err
	}

	applyMensagemInput(m, in)
	m.UpdatedAt = time.Now()

	if err := uc.Repo.Update(ctx, m); err != nil {
		return nil, wrapMensagemConflict(err)
	}
	return m, nil
}

func (uc *MensagemUseCase) Delete(ctx context.Context, clienteID, id string) error {
	return wrapRepo(uc.Repo.Delete(ctx, clienteID, id), "Mensagem não encontrada")
}

func (uc *MensagemUseCase) BulkDelete(ctx context.Context, clienteID string, ids []string) (*BulkResult, error) {
	return BulkDelete(ctx, ids, func(ctx context.Context, id string) error {
		return uc.Delete(ctx, clienteID, id)
	})
}

// PorDia devolve o acompanhamento dos envios agrupado por dia de follow-up.
// desde nil considera todo o histórico.
func (uc *MensagemUseCase) PorDia(ctx context.Context, clienteID string, desde *time.Time) ([]entity.EstatisticaDia, error) {
	stats, err := uc.Repo.PorDia(ctx, clienteID, desde)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []entity.EstatisticaDia{}
	}
	return stats, nil
}

func (uc *MensagemUseCase) Envios(ctx context.Context, clienteID, mensagemID, status string, req entity.PageRequest) (*ListOutput[entity.FollowUpEnvio], error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	switch status {
	case "", entity.EnvioPendente, entity.EnvioSucesso, entity.EnvioErro:
	default:
		return nil, ValidationErrors{{Field: "status", Message: "use PENDENTE, SUCESSO ou ERRO"}}
	}
	if _, err := uc.Get(ctx, clienteID, mensagemID); err != nil {
		return nil, err
	}

	envios, total, err := uc.EnvioRepo.List(ctx, clienteID, mensagemID, status, req)
	if err != nil {
		return nil, err
	}
	for i := range envios {
		envios[i].Telefone = FormatPhone(envios[i].Telefone)
	}
	return &ListOutput[entity.FollowUpEnvio]{Items: envios, Pagination: entity.NewPagination(req, total)}, nil
}
