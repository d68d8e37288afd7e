package http

import (
	"context"
	"net/http"
	"time"

	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthHandler(log *logger.Logger, db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				log.WithFields(r.Context(), logger.Fields{"action": "health_check_failed"}).Warnf("database ping failed: %v", err)
				WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": "down"})
				return
			}
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
