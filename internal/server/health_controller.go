package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/esalabs/controltower/pkg/application"
	"github.com/esalabs/controltower/pkg/httpapi"
)

type healthController struct {
	pool *pgxpool.Pool
}

// NewHealthController reports process and database liveness. It sits
// outside the /api prefix so probes need no admin token.
func NewHealthController(pool *pgxpool.Pool) application.Controller {
	return &healthController{pool: pool}
}

func (c *healthController) Key() string {
	return "/health"
}

func (c *healthController) Register(r *mux.Router) {
	r.HandleFunc("/health", c.Health).Methods(http.MethodGet)
}

func (c *healthController) Health(w http.ResponseWriter, r *http.Request) {
	payload := map[string]string{"status": "ok", "database": "ok"}

	if c.pool != nil {
		ctx, cancel := contextWithTimeout(r, 2*time.Second)
		defer cancel()
		if err := c.pool.Ping(ctx); err != nil {
			payload["status"] = "degraded"
			payload["database"] = err.Error()
			_ = httpapi.WriteJSON(w, http.StatusServiceUnavailable, payload)
			return
		}
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, payload)
}
