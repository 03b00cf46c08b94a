package goredis

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	rediscodec "github.com/wippyai/redis-codec"
	"github.com/wippyai/redis-codec/resp"
	"github.com/wippyai/redis-codec/transcoder"
)

// ErrNotFound is returned by Load when no record exists under the id.
// Callers use errors.Is(err, goredis.ErrNotFound) to distinguish a
// missing record from a transport error.
var ErrNotFound = errors.New("goredis: not found")

// Options configures a typed hash repository
type Options struct {
	// Client is any go-redis client flavor: single node, cluster or
	// sentinel-backed.
	Client redis.UniversalClient

	// KeyPrefix is prepended to every record id as "<prefix>:<id>".
	// Empty means ids are used as keys directly.
	KeyPrefix string

	// Compiler overrides the transcoder compiler. Nil uses the package
	// default, which shares registrations with transcoder.Register.
	Compiler *transcoder.Compiler
}

// Hash is a typed repository storing one T per Redis hash. T must
// encode as a named record; its fields become the hash's field/value
// pairs, so individual fields stay readable by HGET and indexable by
// other consumers.
type Hash[T any] struct {
	client    redis.UniversalClient
	enc       *transcoder.Encoder
	dec       *transcoder.Decoder
	keyPrefix string
}

// NewHash creates a repository for T, compiling its plan immediately so
// configuration errors surface here rather than on first Save.
func NewHash[T any](opts Options) (*Hash[T], error) {
	if opts.Client == nil {
		return nil, errors.New("goredis: Options.Client is required")
	}
	compiler := opts.Compiler
	if compiler == nil {
		compiler = transcoder.Default()
	}

	t := reflect.TypeOf((*T)(nil)).Elem()
	ct, err := compiler.Compile(t)
	if err != nil {
		return nil, err
	}
	if ct.Unwrap().Shape != transcoder.ShapeStruct {
		return nil, fmt.Errorf("goredis: %s does not encode as a named record", t)
	}

	Logger().Debug("hash repository ready",
		zap.String("type", t.String()),
		zap.String("key_prefix", opts.KeyPrefix))

	return &Hash[T]{
		client:    opts.Client,
		enc:       transcoder.NewEncoder(compiler),
		dec:       transcoder.NewDecoder(compiler),
		keyPrefix: opts.KeyPrefix,
	}, nil
}

// Key returns the Redis key used for id
func (h *Hash[T]) Key(id string) string {
	if h.keyPrefix != "" {
		return h.keyPrefix + ":" + id
	}
	return id
}

func (h *Hash[T]) args(v T) ([]any, error) {
	var raw rediscodec.ArgSlice
	if err := h.enc.Encode(v, &raw); err != nil {
		return nil, err
	}
	args := make([]any, len(raw))
	for i, a := range raw {
		args[i] = a
	}
	return args, nil
}

// Save writes v's fields to the hash at id with HSET. Fields absent
// from v (nil optionals) are not written; stale values under those
// names survive an overwrite, so use Replace when that matters.
func (h *Hash[T]) Save(ctx context.Context, id string, v T) error {
	args, err := h.args(v)
	if err != nil {
		return err
	}
	// HSET needs at least one pair; a record with nothing set stores
	// nothing.
	if len(args) == 0 {
		return nil
	}
	k := h.Key(id)
	if err := h.client.HSet(ctx, k, args...).Err(); err != nil {
		return fmt.Errorf("goredis: hset %s: %w", k, err)
	}
	return nil
}

// SaveTTL is Save with an expiry applied in the same transaction
func (h *Hash[T]) SaveTTL(ctx context.Context, id string, v T, ttl time.Duration) error {
	args, err := h.args(v)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}
	k := h.Key(id)
	pipe := h.client.TxPipeline()
	pipe.HSet(ctx, k, args...)
	if ttl > 0 {
		pipe.Expire(ctx, k, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("goredis: hset %s: %w", k, err)
	}
	return nil
}

// Replace deletes the hash and writes v in one transaction, dropping
// fields the previous record had and v does not
func (h *Hash[T]) Replace(ctx context.Context, id string, v T) error {
	args, err := h.args(v)
	if err != nil {
		return err
	}
	k := h.Key(id)
	pipe := h.client.TxPipeline()
	pipe.Del(ctx, k)
	if len(args) > 0 {
		pipe.HSet(ctx, k, args...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("goredis: replace %s: %w", k, err)
	}
	return nil
}

// Load reads the record at id. A missing or empty hash returns
// ErrNotFound.
func (h *Hash[T]) Load(ctx context.Context, id string) (*T, error) {
	k := h.Key(id)
	m, err := h.client.HGetAll(ctx, k).Result()
	if err != nil {
		return nil, fmt.Errorf("goredis: hgetall %s: %w", k, err)
	}
	if len(m) == 0 {
		return nil, ErrNotFound
	}
	var out T
	if err := h.decode(m, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *Hash[T]) decode(m map[string]string, dest *T) error {
	src, err := resp.FromReply(m)
	if err != nil {
		return err
	}
	return h.dec.Decode(src, dest)
}

// Exists reports whether a record exists under id
func (h *Hash[T]) Exists(ctx context.Context, id string) (bool, error) {
	k := h.Key(id)
	n, err := h.client.Exists(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("goredis: exists %s: %w", k, err)
	}
	return n > 0, nil
}

// Delete removes the record at id. Deleting a missing record is not an
// error.
func (h *Hash[T]) Delete(ctx context.Context, id string) error {
	k := h.Key(id)
	if err := h.client.Del(ctx, k).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("goredis: del %s: %w", k, err)
	}
	return nil
}

// SaveMany writes multiple records in a single pipeline round trip
func (h *Hash[T]) SaveMany(ctx context.Context, items map[string]T) error {
	pipe := h.client.Pipeline()
	for id, v := range items {
		args, err := h.args(v)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			continue
		}
		pipe.HSet(ctx, h.Key(id), args...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("goredis: pipeline hset: %w", err)
	}
	return nil
}

// LoadMany reads multiple records in a single pipeline round trip.
// Missing ids are absent from the result.
func (h *Hash[T]) LoadMany(ctx context.Context, ids []string) (map[string]*T, error) {
	pipe := h.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, h.Key(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("goredis: pipeline hgetall: %w", err)
	}

	out := make(map[string]*T, len(ids))
	for i, cmd := range cmds {
		m, err := cmd.Result()
		if err != nil {
			return nil, fmt.Errorf("goredis: hgetall %s: %w", h.Key(ids[i]), err)
		}
		if len(m) == 0 {
			continue
		}
		var v T
		if err := h.decode(m, &v); err != nil {
			return nil, err
		}
		out[ids[i]] = &v
	}
	return out, nil
}
