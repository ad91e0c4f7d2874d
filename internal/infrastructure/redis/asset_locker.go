package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/rs/zerolog"

	"github.com/jhoicas/control-activos/internal/application/inventory"
	"github.com/jhoicas/control-activos/internal/domain"
)

var _ inventory.AssetLocker = (*AssetLocker)(nil)

const lockPrefix = "activo:lock:"

// AssetLocker lock distribuido por activo sobre Redis. Serializa salidas y devoluciones
// del mismo activo entre varias instancias de la API.
type AssetLocker struct {
	client *redislock.Client
	ttl    time.Duration
	wait   time.Duration
	log    zerolog.Logger
}

// NewAssetLocker construye el locker. ttl es la vida del lock y wait cuánto se espera para obtenerlo.
func NewAssetLocker(rdb redislock.RedisClient, ttl, wait time.Duration, log zerolog.Logger) *AssetLocker {
	return &AssetLocker{client: redislock.New(rdb), ttl: ttl, wait: wait, log: log}
}

func lockKey(assetID string) string {
	return lockPrefix + assetID
}

// backoffStep intervalo entre intentos; se hacen wait/step reintentos.
const backoffStep = 50 * time.Millisecond

func retryCount(wait time.Duration) int {
	if wait <= 0 {
		return 0
	}
	return int(wait / backoffStep)
}

// Lock obtiene el lock del activo. Si no se consigue dentro de wait devuelve domain.ErrConcurrencyConflict.
func (l *AssetLocker) Lock(ctx context.Context, assetID string) (func(context.Context) error, error) {
	key := lockKey(assetID)
	lock, err := l.client.Obtain(ctx, key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(backoffStep), retryCount(l.wait)),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		l.log.Warn().Str("key", key).Dur("wait", l.wait).Msg("no se obtuvo el lock del activo")
		return nil, fmt.Errorf("%w: el activo %s está siendo modificado", domain.ErrConcurrencyConflict, assetID)
	}
	if err != nil {
		return nil, fmt.Errorf("obtain lock %s: %w", key, err)
	}
	return func(ctx context.Context) error {
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return fmt.Errorf("release lock %s: %w", key, err)
		}
		return nil
	}, nil
}
