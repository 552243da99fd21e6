package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xavierca1/painel-crm/internal/entity"
)

type AgenteUseCase struct {
	Repo     entity.AgenteRepositoryInterface
	TipoRepo entity.TipoAgenteRepositoryInterface
	BaseRepo entity.BaseRepositoryInterface
	Now      func() time.Time
}

func NewAgenteUseCase(repo entity.AgenteRepositoryInterface, tipoRepo entity.TipoAgenteRepositoryInterface, baseRepo entity.BaseRepositoryInterface) *AgenteUseCase {
	return &AgenteUseCase{Repo: repo, TipoRepo: tipoRepo, BaseRepo: baseRepo, Now: time.Now}
}

func (uc *AgenteUseCase) marcarHorario(a *entity.Agente) {
	a.DentroDoHorario = a.EmHorario(uc.Now())
}

func (uc *AgenteUseCase) Tipos(ctx context.Context) ([]entity.TipoAgente, error) {
	return uc.TipoRepo.List(ctx)
}

func (uc *AgenteUseCase) List(ctx context.Context, clienteID string, req entity.PageRequest) (*ListOutput[entity.Agente], error) {
	agentes, total, err := uc.Repo.List(ctx, clienteID, req)
	if err != nil {
		return nil, err
	}
	for i := range agentes {
		uc.marcarHorario(&agentes[i])
	}
	return &ListOutput[entity.Agente]{Items: agentes, Pagination: entity.NewPagination(req, total)}, nil
}

func (uc *AgenteUseCase) Get(ctx context.Context, clienteID, id string) (*entity.Agente, error) {
	a, err := uc.Repo.FindByID(ctx, clienteID, id)
	if err != nil {
		return nil, wrapRepo(err, "Agente não encontrado")
	}
	uc.marcarHorario(a)
	return a, nil
}

// checkRefs confere tipo e bases: referência inexistente é erro de validação.
func (uc *AgenteUseCase) checkRefs(ctx context.Context, clienteID string, in AgenteInput) error {
	var errs ValidationErrors

	ok, err := uc.TipoRepo.Exists(ctx, in.TipoAgenteID)
	if err != nil {
		return fmt.Errorf("erro ao buscar tipo de agente: %w", err)
	}
	if !ok {
		errs.add("tipo_agente_id", "tipo de agente não encontrado")
	}

	if len(in.BaseIDs) > 0 {
		missing, err := uc.BaseRepo.Missing(ctx, clienteID, in.BaseIDs)
		if err != nil {
			return fmt.Errorf("erro ao conferir bases: %w", err)
		}
		if len(missing) > 0 {
			errs.add("base_ids", "bases não encontradas: "+strings.Join(missing, ", "))
		}
	}
	return errs.err()
}

func applyAgenteInput(a *entity.Agente, in AgenteInput) {
	a.Nome = strings.TrimSpace(in.Nome)
	a.TipoAgenteID = in.TipoAgenteID
	a.Prompt = strings.TrimSpace(in.Prompt)
	a.BaseIDs = uniqueStrings(in.BaseIDs)
	a.HorarioInicio = strings.TrimSpace(in.HorarioInicio)
	a.HorarioFim = strings.TrimSpace(in.HorarioFim)
	a.DiasSemana = in.DiasSemana
	if in.Ativo != nil {
		a.Ativo = *in.Ativo
	}
}

func uniqueStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func (uc *AgenteUseCase) Create(ctx context.Context, clienteID string, in AgenteInput) (*entity.Agente, error) {
	if err := ValidateAgenteInput(in); err != nil {
		return nil, err
	}
	if err := uc.checkRefs(ctx, clienteID, in); err != nil {
		return nil, err
	}

	a := entity.NewAgente(clienteID, "", "", "")
	applyAgenteInput(a, in)

	if err := uc.Repo.Create(ctx, a); err != nil {
		return nil, wrapRepo(err, "Agente não encontrado")
	}
	uc.marcarHorario(a)
	return a, nil
}

func (uc *AgenteUseCase) Update(ctx context.Context, clienteID, id string, in AgenteInput) (*entity.Agente, error) {
	if err := ValidateAgenteInput(in); err != nil {
		return nil, err
	}
	a, err := uc.Repo.FindByID(ctx, clienteID, id)
	if err != nil {
		return nil, wrapRepo(err, "Agente não encontrado")
	}
	if err := uc.checkRefs(ctx, clienteID, in); err != nil {
		return nil, err
	}

	applyAgenteInput(a, in)
	a.UpdatedAt = time.Now()

	if err := uc.Repo.Update(ctx, a); err != nil {
		return nil, wrapRepo(err, "Agente não encontrado")
	}
	uc.marcarHorario(a)
	return a, nil
}

func (uc *AgenteUseCase) Delete(ctx context.Context, clienteID, id string) error {
	return wrapRepo(uc.Repo.Delete(ctx, clienteID, id), "Agente não encontrado")
}

func (uc *AgenteUseCase) BulkDelete(ctx context.Context, clienteID string, ids []string) (*BulkResult, error) {
	return BulkDelete(ctx, ids, func(ctx context.Context, id string) error {
		return uc.Delete(ctx, clienteID, id)
	})
}

func (uc *AgenteUseCase) SetAtivo(ctx context.Context, clienteID, id string, ativo bool) error {
	return wrapRepo(uc.Repo.SetAtivo(ctx, clienteID, id, ativo), "Agente não encontrado")
}
