package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "painel"

// NewRedisClient abre o cliente e testa o Ping.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("falha ao conectar no Redis: %w", err)
	}
	return rdb, nil
}

func key(parts ...string) string {
	k := keyPrefix
	for _, p := range parts {
		k += ":" + p
	}
	return k
}

// Store concentra os usos do Redis no painel: lock do agendador e
// deduplicação de entregas da fila.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore cria o Store. ttl zero vira 48h, o tempo que uma entrega fica
// marcada como processada.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}
	return &Store{rdb: rdb, ttl: ttl}
}

// TryLock pega o lock se ninguém o tem. O lock expira sozinho depois de ttl.
func (s *Store) TryLock(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, key("lock", name), "1", ttl).Result()
}

func (s *Store) MarkProcessed(ctx context.Context, kind, id string) error {
	return s.rdb.Set(ctx, key(kind, id), "1", s.ttl).Err()
}

func (s *Store) IsProcessed(ctx context.Context, kind, id string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key(kind, id)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.rdb.Close()
}
