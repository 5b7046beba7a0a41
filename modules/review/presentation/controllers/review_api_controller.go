package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/esalabs/controltower/modules/review/domain/changerequest"
	"github.com/esalabs/controltower/modules/review/services"
	"github.com/esalabs/controltower/pkg/application"
	"github.com/esalabs/controltower/pkg/composables"
	"github.com/esalabs/controltower/pkg/configuration"
	"github.com/esalabs/controltower/pkg/httpapi"
	"github.com/esalabs/controltower/pkg/serrors"
)

type ReviewAPIController struct {
	app            application.Application
	changeRequests *services.ChangeRequestService
	validate       *validator.Validate
	basePath       string
}

func NewReviewAPIController(app application.Application) application.Controller {
	return &ReviewAPIController{
		app:            app,
		changeRequests: app.Service(services.ChangeRequestService{}).(*services.ChangeRequestService),
		validate:       validator.New(),
		basePath:       "/api/v1/change-requests",
	}
}

func (c *ReviewAPIController) Key() string {
	return c.basePath
}

func (c *ReviewAPIController) Register(r *mux.Router) {
	api := r.PathPrefix(c.basePath).Subrouter()
	api.HandleFunc("", c.List).Methods(http.MethodGet)
	api.HandleFunc("", c.Create).Methods(http.MethodPost)
	api.HandleFunc("/{id}/approve", c.Approve).Methods(http.MethodPost)
	api.HandleFunc("/{id}/reject", c.Reject).Methods(http.MethodPost)
}

type createChangeRequestDTO struct {
	TaskID      string          `json:"task_id" validate:"required"`
	RequestedBy string          `json:"requested_by" validate:"required"`
	Details     json.RawMessage `json:"details"`
}

type changeRequestListResponse struct {
	Data  []*changerequest.ChangeRequest `json:"data"`
	Total int64                          `json:"total"`
}

func (c *ReviewAPIController) List(w http.ResponseWriter, r *http.Request) {
	// Only the pending view is served; decided requests are immutable
	// history and live with the originating task.
	if status := strings.TrimSpace(r.URL.Query().Get("status")); status != "" && status != changerequest.StatusPending {
		_ = httpapi.WriteError(w, http.StatusBadRequest, serrors.CodeUnrecognized, "only status=pending is supported", nil)
		return
	}

	conf := configuration.Use()
	pagination := composables.UsePaginated(r, conf.PageSize, conf.MaxPageSize)
	params := &changerequest.FindParams{Limit: pagination.Limit, Offset: pagination.Offset}

	requests, total, err := c.changeRequests.ListPending(r.Context(), params)
	if err != nil {
		_ = httpapi.WriteServiceError(w, err)
		return
	}
	if requests == nil {
		requests = []*changerequest.ChangeRequest{}
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, &changeRequestListResponse{Data: requests, Total: total})
}

func (c *ReviewAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto createChangeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, serrors.CodeUnrecognized, "invalid JSON body", nil)
		return
	}
	if err := c.validate.Struct(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, serrors.CodeFieldRequired, err.Error(), nil)
		return
	}

	created, err := c.changeRequests.Create(r.Context(), services.CreateChangeRequestParams{
		TaskID:      dto.TaskID,
		RequestedBy: dto.RequestedBy,
		Details:     dto.Details,
	})
	if err != nil {
		_ = httpapi.WriteServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, created)
}

func (c *ReviewAPIController) Approve(w http.ResponseWriter, r *http.Request) {
	c.decide(w, r, c.changeRequests.Approve)
}

func (c *ReviewAPIController) Reject(w http.ResponseWriter, r *http.Request) {
	c.decide(w, r, c.changeRequests.Reject)
}

func (c *ReviewAPIController) decide(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, id uuid.UUID) (*changerequest.ChangeRequest, error),
) {
	raw := mux.Vars(r)["id"]
	id, err := uuid.Parse(raw)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, serrors.CodeUnrecognized, "invalid change request id", nil)
		return
	}

	decided, err := fn(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, decided)
}
