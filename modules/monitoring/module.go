package monitoring

import (
	"embed"

	catalogpersistence "github.com/esalabs/controltower/modules/catalog/infrastructure/persistence"
	"github.com/esalabs/controltower/modules/monitoring/infrastructure/persistence"
	"github.com/esalabs/controltower/modules/monitoring/presentation/controllers"
	"github.com/esalabs/controltower/modules/monitoring/services"
	"github.com/esalabs/controltower/pkg/application"
	"github.com/esalabs/controltower/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/*.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(m.Name(), migrationFiles, "infrastructure/persistence/schema")

	conf := configuration.Use()
	logRepo := persistence.NewExecutionLogRepository()

	app.RegisterServices(
		services.NewExecutionLogService(logRepo),
		services.NewKPIService(catalogpersistence.NewProgramRepository(), logRepo, conf.KPI.LatencySampleSize),
	)

	app.RegisterControllers(
		controllers.NewExecutionLogAPIController(app),
		controllers.NewKPIAPIController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "monitoring"
}
