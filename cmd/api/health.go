package main

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/mydaylogs/mydaylogs-api/internal/pkg/response"
)

// healthHandler reports service liveness. The basic response only says
// whether dependencies answer; pool diagnostics require the health-check
// secret so they never leak to the public internet.
func healthHandler(db *sqlx.DB, redisClient *redis.Client, secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := "ok"
		checks := map[string]string{}

		if err := db.PingContext(ctx); err != nil {
			status = "degraded"
			checks["postgres"] = "down"
		} else {
			checks["postgres"] = "up"
		}

		if redisClient == nil {
			checks["redis"] = "disabled"
		} else if err := redisClient.Ping(ctx).Err(); err != nil {
			status = "degraded"
			checks["redis"] = "down"
		} else {
			checks["redis"] = "up"
		}

		body := map[string]interface{}{
			"status": status,
			"checks": checks,
		}

		if secret != "" && subtle.ConstantTimeCompare([]byte(r.Header.Get("X-Health-Secret")), []byte(secret)) == 1 {
			stats := db.Stats()
			body["diagnostics"] = map[string]interface{}{
				"db_open_conns":   stats.OpenConnections,
				"db_in_use":       stats.InUse,
				"db_idle":         stats.Idle,
				"db_wait_count":   stats.WaitCount,
				"db_wait_seconds": stats.WaitDuration.Seconds(),
			}
		}

		code := http.StatusOK
		if status != "ok" {
			code = http.StatusServiceUnavailable
		}
		response.JSON(w, code, body)
	}
}
