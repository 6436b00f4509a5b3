package cli

import (
	"github.com/spf13/cobra"

	"github.com/mikey/spam-detector/internal/presenter"
	"github.com/mikey/spam-detector/internal/samples"
)

func newSamplesCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "samples",
		Short: "List the built-in sample messages",
		Long:  `List the sample messages that can be analysed with "classify --sample <id>".`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := presenter.ParseFormat(output)
			if err != nil {
				return err
			}
			return presenter.WriteSamples(cmd.OutOrStdout(), format, samples.NewCatalog().All())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, json, yaml)")
	return cmd
}
