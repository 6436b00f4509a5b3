package httpapi

import (
	"net/http"

	"github.com/mikey/spam-detector/internal/config"
	"github.com/mikey/spam-detector/internal/utils"
	"go.uber.org/zap"
)

// Factory creates new instances of PredictClient
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new factory for PredictClient instances
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateClient creates a PredictClient for the configured endpoint
func (f *Factory) CreateClient() (*PredictClient, error) {
	classifierCfg := f.cfg.GetClassifier()

	endpoint, err := classifierCfg.Endpoint()
	if err != nil {
		return nil, err
	}

	f.logger.Info("Using prediction service", zap.String("endpoint", endpoint))

	// No client timeout: a hung service keeps the request pending until it answers
	return NewPredictClient(
		&http.Client{},
		endpoint,
		classifierCfg.MaxTextSize,
		f.logger,
		f.textProcessor,
	), nil
}
