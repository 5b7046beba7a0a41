package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/esalabs/controltower/modules/monitoring/services"
	"github.com/esalabs/controltower/pkg/application"
	"github.com/esalabs/controltower/pkg/httpapi"
)

type KPIAPIController struct {
	app      application.Application
	kpi      *services.KPIService
	basePath string
}

func NewKPIAPIController(app application.Application) application.Controller {
	return &KPIAPIController{
		app:      app,
		kpi:      app.Service(services.KPIService{}).(*services.KPIService),
		basePath: "/api/v1/kpi",
	}
}

func (c *KPIAPIController) Key() string {
	return c.basePath
}

func (c *KPIAPIController) Register(r *mux.Router) {
	r.HandleFunc(c.basePath, c.Snapshot).Methods(http.MethodGet)
}

func (c *KPIAPIController) Snapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := c.kpi.Snapshot(r.Context())
	if err != nil {
		_ = httpapi.WriteServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, snapshot)
}
