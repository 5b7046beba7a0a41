package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/esalabs/controltower/modules/catalog/domain/program"
	"github.com/esalabs/controltower/modules/catalog/services"
	"github.com/esalabs/controltower/pkg/application"
	"github.com/esalabs/controltower/pkg/composables"
	"github.com/esalabs/controltower/pkg/configuration"
	"github.com/esalabs/controltower/pkg/httpapi"
	"github.com/esalabs/controltower/pkg/serrors"
)

type ProgramAPIController struct {
	app      application.Application
	programs *services.ProgramService
	basePath string
}

func NewProgramAPIController(app application.Application) application.Controller {
	return &ProgramAPIController{
		app:      app,
		programs: app.Service(services.ProgramService{}).(*services.ProgramService),
		basePath: "/api/v1/programs",
	}
}

func (c *ProgramAPIController) Key() string {
	return c.basePath
}

func (c *ProgramAPIController) Register(r *mux.Router) {
	api := r.PathPrefix(c.basePath).Subrouter()
	api.HandleFunc("", c.List).Methods(http.MethodGet)
	api.HandleFunc("", c.Upsert).Methods(http.MethodPut)
	api.HandleFunc("/{id}", c.GetByID).Methods(http.MethodGet)
}

type programListResponse struct {
	Data  []*program.Program `json:"data"`
	Total int64              `json:"total"`
}

func (c *ProgramAPIController) List(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()
	pagination := composables.UsePaginated(r, conf.PageSize, conf.MaxPageSize)
	params := &program.FindParams{
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
		State:  strings.TrimSpace(r.URL.Query().Get("state")),
		Status: strings.TrimSpace(r.URL.Query().Get("status")),
		Type:   strings.TrimSpace(r.URL.Query().Get("type")),
	}

	programs, total, err := c.programs.List(r.Context(), params)
	if err != nil {
		_ = httpapi.WriteServiceError(w, err)
		return
	}
	if programs == nil {
		programs = []*program.Program{}
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, &programListResponse{Data: programs, Total: total})
}

func (c *ProgramAPIController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, serrors.CodeUnrecognized, "invalid program id", nil)
		return
	}

	p, err := c.programs.GetByID(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, p)
}

func (c *ProgramAPIController) Upsert(w http.ResponseWriter, r *http.Request) {
	var params services.UpsertProgramParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, serrors.CodeUnrecognized, "invalid JSON body", nil)
		return
	}

	p, err := c.programs.Upsert(r.Context(), params)
	if err != nil {
		_ = httpapi.WriteServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, p)
}
