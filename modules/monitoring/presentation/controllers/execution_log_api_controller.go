package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/esalabs/controltower/modules/monitoring/domain/executionlog"
	"github.com/esalabs/controltower/modules/monitoring/services"
	"github.com/esalabs/controltower/pkg/application"
	"github.com/esalabs/controltower/pkg/composables"
	"github.com/esalabs/controltower/pkg/configuration"
	"github.com/esalabs/controltower/pkg/httpapi"
	"github.com/esalabs/controltower/pkg/serrors"
)

type ExecutionLogAPIController struct {
	app      application.Application
	logs     *services.ExecutionLogService
	basePath string
}

func NewExecutionLogAPIController(app application.Application) application.Controller {
	return &ExecutionLogAPIController{
		app:      app,
		logs:     app.Service(services.ExecutionLogService{}).(*services.ExecutionLogService),
		basePath: "/api/v1/execution-logs",
	}
}

func (c *ExecutionLogAPIController) Key() string {
	return c.basePath
}

func (c *ExecutionLogAPIController) Register(r *mux.Router) {
	api := r.PathPrefix(c.basePath).Subrouter()
	api.HandleFunc("", c.List).Methods(http.MethodGet)
	api.HandleFunc("", c.Create).Methods(http.MethodPost)
}

type executionLogListResponse struct {
	Data  []*executionlog.ExecutionLog `json:"data"`
	Total int64                        `json:"total"`
}

func (c *ExecutionLogAPIController) List(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()
	pagination := composables.UsePaginated(r, conf.PageSize, conf.MaxPageSize)

	logs, total, err := c.logs.ListRecent(r.Context(), pagination.Limit, pagination.Offset)
	if err != nil {
		_ = httpapi.WriteServiceError(w, err)
		return
	}
	if logs == nil {
		logs = []*executionlog.ExecutionLog{}
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, &executionLogListResponse{Data: logs, Total: total})
}

func (c *ExecutionLogAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var params services.CreateExecutionLogParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, serrors.CodeUnrecognized, "invalid JSON body", nil)
		return
	}

	created, err := c.logs.Create(r.Context(), params)
	if err != nil {
		_ = httpapi.WriteServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, created)
}
