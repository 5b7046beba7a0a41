package modules_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/esalabs/controltower/modules"
	"github.com/esalabs/controltower/pkg/application"
	"github.com/esalabs/controltower/pkg/eventbus"
)

type countingModule struct {
	registrations int
}

func (m *countingModule) Name() string {
	return "counting"
}

func (m *countingModule) Register(app application.Application) error {
	m.registrations++
	return nil
}

func newTestApp() application.Application {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
}

func TestLoad_RegistersEachModuleOnce(t *testing.T) {
	app := newTestApp()
	counting := &countingModule{}

	require.NoError(t, modules.Load(app, counting))
	require.Equal(t, 1, counting.registrations)
}

func TestLoad_BuiltInModules(t *testing.T) {
	app := newTestApp()

	require.NoError(t, modules.Load(app, modules.BuiltInModules...))

	// One schema-bearing module must not register twice: a duplicate would
	// give the migration manager two providers over the same version table.
	require.Len(t, app.Controllers(), 4)
}
