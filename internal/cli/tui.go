package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mikey/spam-detector/internal/config"
	"github.com/mikey/spam-detector/internal/core"
	"github.com/mikey/spam-detector/internal/samples"
	"github.com/mikey/spam-detector/internal/ui"
)

func runTUI(cmd *cobra.Command, opts *globalOptions) error {
	container, err := buildContainer(cmd, opts, true)
	if err != nil {
		return err
	}

	return container.Invoke(func(cfg *config.Config, controller *core.Controller, catalog *samples.Catalog, logger *zap.Logger) error {
		defer logger.Sync()

		theme, ok := ui.GetTheme(cfg.GetUI().Theme)
		if !ok {
			logger.Warn("Unknown theme, using default",
				zap.String("theme", cfg.GetUI().Theme),
				zap.Strings("available", ui.ThemeNames()))
		}

		logger.Info("Starting interactive analyzer", zap.String("theme", theme.Name))
		return ui.Run(commandContext(cmd), controller, catalog, theme, logger.Named("ui"))
	})
}
