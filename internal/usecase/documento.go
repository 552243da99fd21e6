package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/xavierca1/painel-crm/internal/entity"
	"github.com/xavierca1/painel-crm/internal/infra/logger"
)

type DocumentoUseCase struct {
	Repo     entity.DocumentoRepositoryInterface
	BaseRepo entity.BaseRepositoryInterface
	Indexer  DocumentIndexer
}

func NewDocumentoUseCase(repo entity.DocumentoRepositoryInterface, baseRepo entity.BaseRepositoryInterface, indexer DocumentIndexer) *DocumentoUseCase {
	return &DocumentoUseCase{Repo: repo, BaseRepo: baseRepo, Indexer: indexer}
}

func (uc *DocumentoUseCase) List(ctx context.Context, clienteID, baseID string, req entity.PageRequest) (*ListOutput[entity.Documento], error) {
	docs, total, err := uc.Repo.List(ctx, clienteID, baseID, req)
	if err != nil {
		return nil, err
	}
	return &ListOutput[entity.Documento]{Items: docs, Pagination: entity.NewPagination(req, total)}, nil
}

func (uc *DocumentoUseCase) Get(ctx context.Context, clienteID, id string) (*entity.Documento, error) {
	d, err := uc.Repo.FindByID(ctx, clienteID, id)
	if err != nil {
		return nil, wrapRepo(err, "Documento não encontrado")
	}
	return d, nil
}

func (uc *DocumentoUseCase) checkBase(ctx context.Context, clienteID, baseID string) error {
	_, err := uc.BaseRepo.FindByID(ctx, clienteID, baseID)
	if errors.Is(err, entity.ErrNotFound) {
		return ValidationErrors{{Field: "base_id", Message: "base não encontrada"}}
	}
	return err
}

// Create grava e indexa. Se a indexação falhar, o registro é removido.
func (uc *DocumentoUseCase) Create(ctx context.Context, clienteID string, in DocumentoInput) (*entity.Documento, error) {
	if err := ValidateDocumentoInput(in); err != nil {
		return nil, err
	}
	if err := uc.checkBase(ctx, clienteID, in.BaseID); err != nil {
		return nil, err
	}

	doc := entity.NewDocumento(clienteID, in.BaseID, strings.TrimSpace(in.Titulo), in.Conteudo)

	tx := NewTransaction()
	tx.AddOperation("inserir documento", func(ctx context.Context) error {
		return uc.Repo.Create(ctx, doc)
	})
	tx.AddCompensation(func(ctx context.Context) error {
		return uc.Repo.Delete(ctx, clienteID, doc.ID)
	})
	tx.AddOperation("indexar documento", func(ctx context.Context) error {
		return uc.Indexer.Index(ctx, doc)
	})

	if err := tx.Execute(ctx); err != nil {
		return nil, Technical("INDEX_ERROR", "Não foi possível salvar o documento. Tente novamente", err)
	}
	return doc, nil
}

func (uc *DocumentoUseCase) Update(ctx context.Context, clienteID, id string, in DocumentoInput) (*entity.Documento, error) {
	if err := ValidateDocumentoInput(in); err != nil {
		return nil, err
	}
	doc, err := uc.Repo.FindByID(ctx, clienteID, id)
	if err != nil {
		return nil, wrapRepo(err, "Documento não encontrado")
	}
	if in.BaseID != doc.BaseID {
		if err := uc.checkBase(ctx, clienteID, in.BaseID); err != nil {
			return nil, err
		}
	}

	doc.BaseID = in.BaseID
	doc.Titulo = strings.TrimSpace(in.Titulo)
	doc.Conteudo = in.Conteudo
	doc.UpdatedAt = time.Now()

	if err := uc.Repo.Update(ctx, doc); err != nil {
		return nil, wrapRepo(err, "Documento não encontrado")
	}
	if err := uc.Indexer.Index(ctx, doc); err != nil {
		logger.WithCliente(clienteID).WithError(err).
			Warnf("⚠️ Documento %s salvo mas não reindexado", doc.ID)
	}
	return doc, nil
}

func (uc *DocumentoUseCase) Delete(ctx context.Context, clienteID, id string) error {
	if err := uc.Repo.Delete(ctx, clienteID, id); err != nil {
		return wrapRepo(err, "Documento não encontrado")
	}
	if err := uc.Indexer.Remove(ctx, clienteID, id); err != nil {
		logger.WithCliente(clienteID).WithError(err).
			Warnf("⚠️ Documento %s removido do banco mas não do índice", id)
	}
	return nil
}

func (uc *DocumentoUseCase) BulkDelete(ctx context.Context, clienteID string, ids []string) (*BulkResult, error) {
	return BulkDelete(ctx, ids, func(ctx context.Context, id string) error {
		return uc.Delete(ctx, clienteID, id)
	})
}
