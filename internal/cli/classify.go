package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mikey/spam-detector/internal/core"
	"github.com/mikey/spam-detector/internal/presenter"
	"github.com/mikey/spam-detector/internal/samples"
	"github.com/mikey/spam-detector/internal/utils"
)

// ErrAnalysisFailed is returned when a classification ends in Failure
var ErrAnalysisFailed = errors.New("analysis failed")

type classifyOptions struct {
	text     string
	file     string
	eml      bool
	sampleID int
	output   string
}

func newClassifyCommand(global *globalOptions) *cobra.Command {
	opts := &classifyOptions{}

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a single message",
		Long: `Classify a single message and print the verdict.

The message is taken from --sample, --text or --file, in that order, and from stdin
otherwise. With --eml the input is parsed as an RFC 5322 email and its text parts are
analysed together with the subject and sender.`,
		Example: `  spam-detector classify --text "You have WON a prize!"
  spam-detector classify --file message.eml --eml -o json
  spam-detector classify --sample 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, global, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.text, "text", "t", "", "message text to classify")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read the message from a file")
	cmd.Flags().BoolVar(&opts.eml, "eml", false, "parse the input as an RFC 5322 email")
	cmd.Flags().IntVarP(&opts.sampleID, "sample", "s", 0, "classify a built-in sample by id")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "output format (text, json, yaml)")

	return cmd
}

func runClassify(cmd *cobra.Command, global *globalOptions, opts *classifyOptions) error {
	format, err := presenter.ParseFormat(opts.output)
	if err != nil {
		return err
	}

	container, err := buildContainer(cmd, global, false)
	if err != nil {
		return err
	}

	return container.Invoke(func(controller *core.Controller, catalog *samples.Catalog, logger *zap.Logger) error {
		defer logger.Sync()

		if cmd.Flags().Changed("sample") {
			sample, err := catalog.Get(opts.sampleID)
			if err != nil {
				return err
			}
			controller.LoadSample(sample.Text)
		} else {
			text, err := readInput(cmd, opts)
			if err != nil {
				return err
			}
			controller.SetText(text)
		}

		runErr := controller.Run(commandContext(cmd))
		if err := presenter.WriteState(cmd.OutOrStdout(), format, controller.State()); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		if runErr != nil {
			logger.Debug("Classification failed", zap.Error(runErr))
			return fmt.Errorf("%w: %s", ErrAnalysisFailed, core.UserMessage(runErr))
		}
		return nil
	})
}

// readInput returns the message text selected by the flags
func readInput(cmd *cobra.Command, opts *classifyOptions) (string, error) {
	if cmd.Flags().Changed("text") && !opts.eml {
		return opts.text, nil
	}

	var r io.Reader
	switch {
	case cmd.Flags().Changed("text"):
		r = strings.NewReader(opts.text)
	case opts.file != "":
		f, err := os.Open(opts.file)
		if err != nil {
			return "", fmt.Errorf("failed to open input file: %w", err)
		}
		defer f.Close()
		r = f
	default:
		r = cmd.InOrStdin()
	}

	if opts.eml {
		msg, err := utils.ReadMessageText(r)
		if err != nil {
			return "", fmt.Errorf("failed to parse email: %w", err)
		}
		return msg.Text(), nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}
