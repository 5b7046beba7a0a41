package catalog

import (
	"embed"

	"github.com/esalabs/controltower/modules/catalog/infrastructure/persistence"
	"github.com/esalabs/controltower/modules/catalog/presentation/controllers"
	"github.com/esalabs/controltower/modules/catalog/services"
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
		services.NewProgramService(persistence.NewProgramRepository()),
	)

	app.RegisterControllers(
		controllers.NewProgramAPIController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "catalog"
}
