package goredis

import (
	"github.com/wippyai/redis-codec/transcoder"
)

// Args renders v as the flat []any argument list that variadic go-redis
// commands like HSet and Do expect
func Args(v any) ([]any, error) {
	return AppendArgs(nil, v)
}

// AppendArgs appends v's wire arguments to dst. Useful for building a
// full command invocation:
//
//	args := []any{"hset", key}
//	args, err := goredis.AppendArgs(args, user)
//	client.Do(ctx, args...)
func AppendArgs(dst []any, v any) ([]any, error) {
	args, err := transcoder.Marshal(v)
	if err != nil {
		return nil, err
	}
	for _, a := range args {
		dst = append(dst, a)
	}
	return dst, nil
}
