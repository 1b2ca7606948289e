// Package snapshot keeps canonical state vector snapshots in redis, so
// consumers can replay recent data without re-fetching it or touching the
// fragile positional wire form again.
package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"plane.watch/opensky/lib/states"
)

type (
	Store struct {
		client *redis.Client
		prefix string
		ttl    time.Duration
	}

	Option func(*Store)
)

// WithTTL sets how long a snapshot is kept. Zero keeps them forever.
func WithTTL(d time.Duration) Option {
	return func(s *Store) {
		s.ttl = d
	}
}

// WithPrefix replaces the key prefix, e.g. to keep multiple feeds apart.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// NewStore connects to redis given a URL like redis://localhost:6379/0.
func NewStore(redisURL string, opts ...Option) (*Store, error) {
	redisOpts, err := redis.ParseURL(redisURL)
	if nil != err {
		return nil, fmt.Errorf("snapshot store: %w", err)
	}
	s := &Store{
		client: redis.NewClient(redisOpts),
		prefix: "opensky:states:",
		ttl:    24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) key(t uint64) string {
	return fmt.Sprintf("%s%d", s.prefix, t)
}

// SaveStates stores the canonical encoding keyed by snapshot time.
func (s *Store) SaveStates(ctx context.Context, snapshot *states.States) error {
	body, err := states.EncodeCanonical(snapshot)
	if nil != err {
		return err
	}
	return s.client.Set(ctx, s.key(snapshot.Time), body, s.ttl).Err()
}

// LoadStates fetches a previously stored snapshot. Returns redis.Nil when
// there is none for that time.
func (s *Store) LoadStates(ctx context.Context, t uint64) (*states.States, error) {
	body, err := s.client.Get(ctx, s.key(t)).Bytes()
	if nil != err {
		return nil, err
	}
	requested := t
	return states.Decode(body, &requested)
}

func (s *Store) HealthCheck() bool {
	return nil == s.client.Ping(context.Background()).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
