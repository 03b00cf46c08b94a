// Package goredis adapts the codec to the go-redis client.
//
// It bridges two directions: Args renders any encodable value as the
// flat argument list commands like HSET expect, and Hash is a typed
// repository storing one record per Redis hash.
//
// # Quick Start
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	users, err := goredis.NewHash[User](goredis.Options{
//		Client:    client,
//		KeyPrefix: "user",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	err = users.Save(ctx, "42", User{Name: "ada", Age: 36})
//	u, err := users.Load(ctx, "42")
//
// A missing record returns ErrNotFound; check with errors.Is.
//
// # Raw Commands
//
// Args works with any go-redis command that takes field/value pairs:
//
//	args, _ := goredis.Args(user)
//	client.HSet(ctx, "user:42", args...)
//
// Replies from HGetAll and friends decode through the transcoder:
//
//	m, _ := client.HGetAll(ctx, "user:42").Result()
//	var u User
//	err := transcoder.Unmarshal(m, &u)
package goredis
