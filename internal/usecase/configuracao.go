package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/xavierca1/painel-crm/internal/entity"
)

type ConfiguracaoUseCase struct {
	Repo entity.ConfiguracaoRepositoryInterface
}

func NewConfiguracaoUseCase(repo entity.ConfiguracaoRepositoryInterface) *ConfiguracaoUseCase {
	return &ConfiguracaoUseCase{Repo: repo}
}

// List pagina em memória: cada cliente tem poucas chaves.
func (uc *ConfiguracaoUseCase) List(ctx context.Context, clienteID string, req entity.PageRequest) (*ListOutput[entity.Configuracao], error) {
	cfgs, err := uc.Repo.List(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	items, pag := entity.Paginate(cfgs, req.Page, req.Limit)
	return &ListOutput[entity.Configuracao]{Items: items, Pagination: pag}, nil
}

func (uc *ConfiguracaoUseCase) Get(ctx context.Context, clienteID, chave string) (*entity.Configuracao, error) {
	if err := ValidateConfiguracao(chave, ""); err != nil {
		return nil, err
	}
	c, err := uc.Repo.Get(ctx, clienteID, chave)
	if err != nil {
		return nil, wrapRepo(err, "Configuração não encontrada")
	}
	return c, nil
}

func (uc *ConfiguracaoUseCase) Set(ctx context.Context, clienteID, chave, valor string) (*entity.Configuracao, error) {
	chave = strings.TrimSpace(chave)
	valor = SanitizeValor(valor)
	if err := ValidateConfiguracao(chave, valor); err != nil {
		return nil, err
	}

	c := &entity.Configuracao{ClienteID: clienteID, Chave: chave, Valor: valor, UpdatedAt: time.Now()}
	if err := uc.Repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *ConfiguracaoUseCase) Delete(ctx context.Context, clienteID, chave string) error {
	if err := ValidateConfiguracao(chave, ""); err != nil {
		return err
	}
	return wrapRepo(uc.Repo.Delete(ctx, clienteID, chave), "Configuração não encontrada")
}
