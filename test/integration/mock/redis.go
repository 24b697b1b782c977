//go:build integration

package mock

import (
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisConnOnce sync.Once
var redisConn *Redis

// Redis bundles a miniredis server with a client connected to it.
type Redis struct {
	Server *miniredis.Miniredis
	Client *redis.Client
}

// NewRedis returns the process-wide Redis stand-in, starting it on first use.
func NewRedis() *Redis {
	redisConnOnce.Do(func() {
		redisConn = openRedisConn()
	})
	return redisConn
}

func openRedisConn() *Redis {
	miniRedis, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	return &Redis{
		Server: miniRedis,
		Client: redis.NewClient(&redis.Options{
			Addr: miniRedis.Addr(),
		}),
	}
}

// Clear drops every key.
func (r *Redis) Clear() {
	r.Server.FlushAll()
}
