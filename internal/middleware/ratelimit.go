package middleware

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"chirp/internal/config"
	handlers "chirp/internal/handler"
)

// RateLimiter ограничивает частоту запросов по ключу в фиксированном окне
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) bool
	Close() error
}

type redisRateLimiter struct {
	client *redis.Client
	prefix string
}

// NewRedisRateLimiter подключается к Redis. Пустой адрес означает,
// что ограничитель выключен
func NewRedisRateLimiter(cfg *config.Config) (RateLimiter, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &redisRateLimiter{client: client, prefix: "chirp:ratelimit:"}, nil
}

// Allow реализует счетчик INCR+EXPIRE. При ошибках Redis запрос пропускается:
// недоступный Redis не должен ронять аутентификацию
func (rl *redisRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	if limit <= 0 {
		return true
	}

	redisKey := rl.prefix + key

	counter, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		log.Printf("ошибка Redis при подсчете лимита: %v", err)
		return true
	}

	if counter == 1 {
		if err := rl.client.Expire(ctx, redisKey, window).Err(); err != nil {
			log.Printf("ошибка Redis при установке TTL: %v", err)
		}
	}

	return int(counter) <= limit
}

func (rl *redisRateLimiter) Close() error {
	return rl.client.Close()
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitMiddleware применяет лимит по IP клиента. Нулевой limiter
// превращает middleware в пустышку
func RateLimitMiddleware(limiter RateLimiter, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			if !limiter.Allow(r.Context(), clientIP(r), limit, window) {
				handlers.WriteError(w, "Слишком много запросов, попробуйте позже", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
