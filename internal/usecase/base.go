package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xavierca1/painel-crm/internal/entity"
	"github.com/xavierca1/painel-crm/internal/infra/logger"
)

type BaseUseCase struct {
	Repo          entity.BaseRepositoryInterface
	AgenteRepo    entity.AgenteRepositoryInterface
	DocumentoRepo entity.DocumentoRepositoryInterface
	Indexer       DocumentIndexer
}

func NewBaseUseCase(
	repo entity.BaseRepositoryInterface,
	agenteRepo entity.AgenteRepositoryInterface,
	documentoRepo entity.DocumentoRepositoryInterface,
	indexer DocumentIndexer,
) *BaseUseCase {
	return &BaseUseCase{Repo: repo, AgenteRepo: agenteRepo, DocumentoRepo: documentoRepo, Indexer: indexer}
}

func (uc *BaseUseCase) List(ctx context.Context, clienteID string, req entity.PageRequest) (*ListOutput[entity.Base], error) {
	bases, total, err := uc.Repo.List(ctx, clienteID, req)
	if err != nil {
		return nil, err
	}
	return &ListOutput[entity.Base]{Items: bases, Pagination: entity.NewPagination(req, total)}, nil
}

func (uc *BaseUseCase) Get(ctx context.Context, clienteID, id string) (*entity.Base, error) {
	b, err := uc.Repo.FindByID(ctx, clienteID, id)
	if err != nil {
		return nil, wrapRepo(err, "Base não encontrada")
	}
	return b, nil
}

func (uc *BaseUseCase) Create(ctx context.Context, clienteID string, in BaseInput) (*entity.Base, error) {
	if err := ValidateBaseInput(in); err != nil {
		return nil, err
	}
	b := entity.NewBase(clienteID, strings.TrimSpace(in.Nome), strings.TrimSpace(in.Descricao))
	if in.Ativo != nil {
		b.Ativo = *in.Ativo
	}
	if err := uc.Repo.Create(ctx, b); err != nil {
		return nil, wrapBaseConflict(err)
	}
	return b, nil
}

func wrapBaseConflict(err error) error {
	if errors.Is(err, entity.ErrConflict) {
		return Conflict("Já existe uma base com esse nome")
	}
	return wrapRepo(err, "Base não encontrada")
}

func (uc *BaseUseCase) Update(ctx context.Context, clienteID, id string, in BaseInput) (*entity.Base, error) {
	if err := ValidateBaseInput(in); err != nil {
		return nil, err
	}
	b, err := uc.Repo.FindByID(ctx, clienteID, id)
	if err != nil {
		return nil, wrapRepo(err, "Base não encontrada")
	}

	b.Nome = strings.TrimSpace(in.Nome)
	b.Descricao = strings.TrimSpace(in.Descricao)
	if in.Ativo != nil {
		b.Ativo = *in.Ativo
	}
	b.UpdatedAt = time.Now()

	if err := uc.Repo.Update(ctx, b); err != nil {
		return nil, wrapBaseConflict(err)
	}
	return b, nil
}

// Delete recusa bases ainda vinculadas a algum agente. Os documentos saem do
// banco em cascata; no índice eles são marcados como removidos um a um.
func (uc *BaseUseCase) Delete(ctx context.Context, clienteID, id string) error {
	n, err := uc.AgenteRepo.CountByBase(ctx, clienteID, id)
	if err != nil {
		return fmt.Errorf("erro ao verificar agentes da base: %w", err)
	}
	if n > 0 {
		return Conflict(fmt.Sprintf("Base vinculada a %d agente(s). Remova o vínculo antes de excluir", n))
	}

	docIDs, err := uc.DocumentoRepo.IDsByBase(ctx, clienteID, id)
	if err != nil {
		return fmt.Errorf("erro ao listar documentos da base: %w", err)
	}

	if err := uc.Repo.Delete(ctx, clienteID, id); err != nil {
		return wrapRepo(err, "Base não encontrada")
	}

	log := logger.WithCliente(clienteID)
	for _, docID := range docIDs {
		if err := uc.Indexer.Remove(ctx, clienteID, docID); err != nil {
			log.WithError(err).Warnf("⚠️ Documento %s da base %s removido do banco mas não do índice", docID, id)
		}
	}
	return nil
}
