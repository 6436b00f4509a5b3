package factory

import (
	"fmt"

	"github.com/mikey/spam-detector/internal/adapters/bedrock"
	"github.com/mikey/spam-detector/internal/adapters/gemini"
	"github.com/mikey/spam-detector/internal/adapters/httpapi"
	"github.com/mikey/spam-detector/internal/adapters/openai"
	"github.com/mikey/spam-detector/internal/config"
	"github.com/mikey/spam-detector/internal/core"
	"github.com/mikey/spam-detector/internal/utils"
	"go.uber.org/zap"
)

// Supported classifier providers
const (
	ProviderHTTP    = "http"
	ProviderOpenAI  = "openai"
	ProviderGemini  = "gemini"
	ProviderBedrock = "bedrock"
)

// ClassifierFactory creates classifiers
type ClassifierFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewClassifierFactory creates a new classifier factory
func NewClassifierFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *ClassifierFactory {
	return &ClassifierFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateClassifier creates a new classifier based on the configuration
func (f *ClassifierFactory) CreateClassifier() (core.Classifier, error) {
	provider := f.cfg.GetClassifier().Provider
	logger := f.logger.With(zap.String("provider", provider))

	var (
		classifier core.Classifier
		err        error
	)
	switch provider {
	case ProviderHTTP, "":
		classifier, err = asClassifier(httpapi.NewFactory(f.cfg, logger, f.textProcessor).CreateClient())
	case ProviderOpenAI:
		classifier, err = asClassifier(openai.NewFactory(f.cfg, logger, f.textProcessor).CreateClient())
	case ProviderGemini:
		classifier, err = asClassifier(gemini.NewFactory(f.cfg, logger, f.textProcessor).CreateClient())
	case ProviderBedrock:
		classifier, err = asClassifier(bedrock.NewFactory(f.cfg, logger, f.textProcessor).CreateClient())
	default:
		return nil, fmt.Errorf("unsupported classifier provider: %s", provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s classifier: %w", provider, err)
	}

	logger.Info("Classifier ready")
	return classifier, nil
}

// asClassifier keeps a failed constructor from yielding a non-nil interface
func asClassifier(c core.Classifier, err error) (core.Classifier, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}
