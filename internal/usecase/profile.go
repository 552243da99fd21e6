package usecase

import (
	"context"

	"github.com/xavierca1/painel-crm/internal/entity"
)

type ProfileUseCase struct {
	Repo entity.ProfileRepositoryInterface
}

func NewProfileUseCase(repo entity.ProfileRepositoryInterface) *ProfileUseCase {
	return &ProfileUseCase{Repo: repo}
}

func (uc *ProfileUseCase) Get(ctx context.Context, userID string) (*entity.Profile, error) {
	p, err := uc.Repo.FindByID(ctx, userID)
	if err != nil {
		return nil, wrapRepo(err, "Perfil não encontrado")
	}
	return p, nil
}
