package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkDeleteTally(t *testing.T) {
	del := func(ctx context.Context, id string) error {
		if id == "b" || id == "d" {
			return errors.New("falhou " + id)
		}
		return nil
	}

	res, err := BulkDelete(context.Background(), []string{"a", "b", "c", "d", "e", "a", " "}, del)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Sucesso)
	assert.Equal(t, 2, res.Falha)
	require.Len(t, res.Falhas, 2)
	assert.Equal(t, "b", res.Falhas[0].ID)
	assert.Equal(t, "d", res.Falhas[1].ID)
}

func TestBulkDeleteEmpty(t *testing.T) {
	_, err := BulkDelete(context.Background(), []string{"", "  "}, nil)
	var ve ValidationErrors
	assert.True(t, errors.As(err, &ve))
}

func TestBulkDeleteBoundedConcurrency(t *testing.T) {
	var inFlight, maxSeen int32
	del := func(ctx context.Context, id string) error {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			m := atomic.LoadInt32(&maxSeen)
			if n <= m || atomic.CompareAndSwapInt32(&maxSeen, m, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return nil
	}

	ids := make([]string, 20)
	for i := range ids {
		ids[i] = string(rune('a' + i))
	}
	res, err := BulkDelete(context.Background(), ids, del)
	require.NoError(t, err)
	assert.Equal(t, 20, res.Sucesso)
	assert.LessOrEqual(t, int(maxSeen), bulkConcurrency)
}
