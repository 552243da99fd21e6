package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

const bulkConcurrency = 5

// BulkDelete dispara uma remoção por id em paralelo (no máximo 5 por vez) e
// conta sucessos e falhas. Não é atômico: o que deu certo fica removido.
func BulkDelete(ctx context.Context, ids []string, del func(context.Context, string) error) (*BulkResult, error) {
	clean := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		clean = append(clean, id)
	}
	if len(clean) == 0 {
		return nil, ValidationErrors{{Field: "ids", Message: "informe ao menos um id"}}
	}

	type falha struct {
		idx int
		BulkFalha
	}

	var (
		mu     sync.Mutex
		result BulkResult
		falhas []falha
	)

	var g errgroup.Group
	g.SetLimit(bulkConcurrency)
	for i, id := range clean {
		i, id := i, id
		g.Go(func() error {
			err := del(ctx, id)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Falha++
				falhas = append(falhas, falha{i, BulkFalha{ID: id, Erro: FriendlyMessage(err)}})
				return nil
			}
			result.Sucesso++
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(falhas, func(a, b int) bool { return falhas[a].idx < falhas[b].idx })
	for _, f := range falhas {
		result.Falhas = append(result.Falhas, f.BulkFalha)
	}
	return &result, nil
}
