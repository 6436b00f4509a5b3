package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/spam-detector/internal/config"
	"github.com/mikey/spam-detector/internal/core"
	"github.com/mikey/spam-detector/internal/factory"
	"github.com/mikey/spam-detector/internal/logging"
	"github.com/mikey/spam-detector/internal/samples"
	"github.com/mikey/spam-detector/internal/utils"
)

// Options control how the container is assembled
type Options struct {
	// Config is the already loaded configuration, with command line flags bound
	Config *config.Config
	// TUI selects a logger that stays off the terminal
	TUI bool
}

// BuildContainer creates and configures a dependency injection container
func BuildContainer(opts Options) (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(func() *config.Config { return opts.Config }); err != nil {
		return nil, err
	}

	// Register logger
	initLogger := logging.InitLogger
	if opts.TUI {
		initLogger = logging.InitTUILogger
	}
	if err := container.Provide(initLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewClassifierFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register classifier
	if err := container.Provide(func(f *factory.ClassifierFactory) (core.Classifier, error) {
		return f.CreateClassifier()
	}); err != nil {
		return nil, err
	}

	// Register sample catalog
	if err := container.Provide(samples.NewCatalog); err != nil {
		return nil, err
	}

	// Register analysis controller
	if err := container.Provide(func(c core.Classifier, logger *zap.Logger) *core.Controller {
		return core.NewController(c, logger.Named("controller"))
	}); err != nil {
		return nil, err
	}

	return container, nil
}
