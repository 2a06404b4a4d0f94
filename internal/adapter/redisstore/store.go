package redisstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/solsync/solaredge2state/internal/config"
	"github.com/solsync/solaredge2state/internal/core/domain"
	"github.com/solsync/solaredge2state/internal/core/port"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store keeps declared data-point definitions and their values under a
// namespaced key scheme:
//
//	<ns>:<siteId>:def:<key>   definition JSON
//	<ns>:<siteId>:val:<key>   value JSON
//	<ns>:<siteId>:instance    instance metadata JSON
//
// Declarations and values live under separate keys so re-declaring never
// touches a stored value.
type Store struct {
	rdb    *redis.Client
	ns     string
	logger *zap.Logger
}

func New(cfg config.RedisConfig, logger *zap.Logger) *Store {
	ns := cfg.Namespace
	if ns == "" {
		ns = "solaredge"
	}
	return &Store{
		rdb: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		ns:     ns,
		logger: logger.With(zap.String("component", "redisstore")),
	}
}

// NewWithClient is used by tests to run against miniredis.
func NewWithClient(rdb *redis.Client, namespace string, logger *zap.Logger) *Store {
	return &Store{rdb: rdb, ns: namespace, logger: logger}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func (s *Store) Exists(ctx context.Context, site domain.SiteContext, key string) (bool, error) {
	n, err := s.rdb.Exists(ctx, s.defKey(site, key)).Result()
	if err != nil {
		return false, &domain.SchemaError{Op: "exists", Key: key, Err: err}
	}
	return n > 0, nil
}

func (s *Store) Declare(ctx context.Context, site domain.SiteContext, def domain.DataPointDefinition) error {
	payload, err := json.Marshal(def)
	if err != nil {
		return &domain.SchemaError{Op: "declare", Key: def.Key, Err: err}
	}
	if err := s.rdb.Set(ctx, s.defKey(site, def.Key), payload, 0).Err(); err != nil {
		return &domain.SchemaError{Op: "declare", Key: def.Key, Err: err}
	}
	s.logger.Debug("declared data point", zap.String("key", def.Key))
	return nil
}

func (s *Store) WriteIfChanged(ctx context.Context, site domain.SiteContext, key string, value any, ack bool) (bool, error) {
	if !ack {
		// this program only acknowledges externally-sourced truth
		return false, errors.New("write-commands (ack=false) are not supported")
	}
	encoded, err := domain.EncodeValue(value)
	if err != nil {
		return false, fmt.Errorf("encode value for %q: %w", key, err)
	}

	valKey := s.valKey(site, key)
	current, err := s.rdb.Get(ctx, valKey).Bytes()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, fmt.Errorf("read current value of %q: %w", key, err)
	}
	if err == nil && bytes.Equal(current, encoded) {
		return false, nil
	}

	if err := s.rdb.Set(ctx, valKey, encoded, 0).Err(); err != nil {
		return false, fmt.Errorf("write value of %q: %w", key, err)
	}
	return true, nil
}

func (s *Store) ReadInstanceMetadata(ctx context.Context, site domain.SiteContext) (*domain.InstanceMetadata, error) {
	raw, err := s.rdb.Get(ctx, s.instanceKey(site)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read instance metadata: %w", err)
	}
	var meta domain.InstanceMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("decode instance metadata: %w", err)
	}
	return &meta, nil
}

func (s *Store) WriteInstanceMetadata(ctx context.Context, site domain.SiteContext, meta domain.InstanceMetadata) error {
	payload, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode instance metadata: %w", err)
	}
	if err := s.rdb.Set(ctx, s.instanceKey(site), payload, 0).Err(); err != nil {
		return fmt.Errorf("write instance metadata: %w", err)
	}
	return nil
}

func (s *Store) defKey(site domain.SiteContext, key string) string {
	return fmt.Sprintf("%s:%s:def:%s", s.ns, site.SiteID, key)
}

func (s *Store) valKey(site domain.SiteContext, key string) string {
	return fmt.Sprintf("%s:%s:val:%s", s.ns, site.SiteID, key)
}

func (s *Store) instanceKey(site domain.SiteContext) string {
	return fmt.Sprintf("%s:%s:instance", s.ns, site.SiteID)
}

// ensure interface compliance
var _ port.StateStore = (*Store)(nil)
