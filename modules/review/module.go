package review

import (
	"embed"

	"github.com/esalabs/controltower/modules/review/infrastructure/persistence"
	"github.com/esalabs/controltower/modules/review/presentation/controllers"
	"github.com/esalabs/controltower/modules/review/services"
	"github.com/esalabs/controltower/pkg/application"
)

//go:embed infrastructure/persistence/schema/*.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(m.Name(), migrationFiles, "infrastructure/persistence/schema")

	app.RegisterServices(
		services.NewChangeRequestService(persistence.NewChangeRequestRepository(), app.EventPublisher()),
	)

	app.RegisterControllers(
		controllers.NewReviewAPIController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "review"
}
