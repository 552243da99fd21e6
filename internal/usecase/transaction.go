package usecase

import (
	"context"
	"fmt"

	"github.com/xavierca1/painel-crm/internal/infra/logger"
)

// Transaction executa passos em ordem e, se um falhar, desfaz os anteriores
// do mais recente para o mais antigo.
type Transaction struct {
	steps []step
}

type step struct {
	name       string
	fn         func(context.Context) error
	compensate func(context.Context) error
}

func NewTransaction() *Transaction {
	return &Transaction{}
}

func (t *Transaction) AddOperation(name string, fn func(context.Context) error) {
	t.steps = append(t.steps, step{name: name, fn: fn})
}

// AddCompensation associa a compensação à última operação adicionada.
func (t *Transaction) AddCompensation(fn func(context.Context) error) {
	if len(t.steps) == 0 {
		return
	}
	t.steps[len(t.steps)-1].compensate = fn
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, s := range t.steps {
		if err := s.fn(ctx); err != nil {
			t.rollback(ctx, i)
			return fmt.Errorf("operação '%s' falhou: %w (%d desfeitas)", s.name, err, i)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAt int) {
	for i := failedAt - 1; i >= 0; i-- {
		s := t.steps[i]
		if s.compensate == nil {
			continue
		}
		if err := s.compensate(ctx); err != nil {
			logger.WithComponent("transaction").
				WithError(err).
				Warnf("⚠️ Compensação de '%s' falhou (risco de inconsistência)", s.name)
		}
	}
}
