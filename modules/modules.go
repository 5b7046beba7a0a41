package modules

import (
	"github.com/esalabs/controltower/modules/catalog"
	"github.com/esalabs/controltower/modules/monitoring"
	"github.com/esalabs/controltower/modules/review"
	"github.com/esalabs/controltower/pkg/application"
)

var BuiltInModules = []application.Module{
	catalog.NewModule(),
	review.NewModule(),
	monitoring.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
