package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionRollsBackInReverseOrder(t *testing.T) {
	var trilha []string
	tx := NewTransaction()

	tx.AddOperation("um", func(ctx context.Context) error { trilha = append(trilha, "um"); return nil })
	tx.AddCompensation(func(ctx context.Context) error { trilha = append(trilha, "desfaz um"); return nil })
	tx.AddOperation("dois", func(ctx context.Context) error { trilha = append(trilha, "dois"); return nil })
	tx.AddCompensation(func(ctx context.Context) error { trilha = append(trilha, "desfaz dois"); return nil })
	tx.AddOperation("tres", func(ctx context.Context) error { return errors.New("boom") })

	err := tx.Execute(context.Background())
	assert.ErrorContains(t, err, "tres")
	assert.Equal(t, []string{"um", "dois", "desfaz dois", "desfaz um"}, trilha)
}

func TestTransactionSuccess(t *testing.T) {
	compensou := false
	tx := NewTransaction()
	tx.AddOperation("ok", func(ctx context.Context) error { return nil })
	tx.AddCompensation(func(ctx context.Context) error { compensou = true; return nil })

	assert.NoError(t, tx.Execute(context.Background()))
	assert.False(t, compensou)
}

func TestAddCompensationWithoutOperation(t *testing.T) {
	tx := NewTransaction()
	tx.AddCompensation(func(ctx context.Context) error { return nil })
	assert.NoError(t, tx.Execute(context.Background()))
}
