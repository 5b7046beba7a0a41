package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/esalabs/controltower/pkg/application"
	"github.com/esalabs/controltower/pkg/configuration"
	"github.com/esalabs/controltower/pkg/constants"
	"github.com/esalabs/controltower/pkg/httpapi"
	"github.com/esalabs/controltower/pkg/metrics"
	"github.com/esalabs/controltower/pkg/middleware"
	"github.com/esalabs/controltower/pkg/serrors"
	"github.com/esalabs/controltower/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application
	conf := options.Configuration

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger),
		middleware.Provide(constants.AppKey, app),
		middleware.Provide(constants.PoolKey, options.Pool),
		middleware.Cors(conf.AllowedOrigins...),
		middleware.Authenticate(conf),
	}
	app.RegisterMiddleware(middlewares...)

	app.RegisterControllers(NewHealthController(options.Pool))
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	return server.NewHTTPServer(app, notFound(), methodNotAllowed()), nil
}

func notFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusNotFound, serrors.CodeNotFound, "route not found", nil)
	})
}

func methodNotAllowed() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, serrors.CodeUnrecognized, "method not allowed", nil)
	})
}

func contextWithTimeout(r *http.Request, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), d)
}
