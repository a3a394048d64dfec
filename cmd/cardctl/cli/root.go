// Package cli contains the cardctl commands.
package cli

import (
	"feedcard/internal/output"
	"feedcard/utils/logger"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cardctl",
		Short: "Render and inspect feed card snapshots",
		Long: `cardctl builds card layouts from JSON card snapshots using the same
composition engine as the server.

Example usage:
  cardctl validate --file cards.json   # Check item counts against each template
  cardctl render --file cards.json     # Build layouts and fetch images`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if viper.GetBool("verbose") {
				level = "debug"
			}
			logger.InitLoggerWithWriter(cmd.ErrOrStderr(), level, "text")
			return nil
		},
	}

	cmd.PersistentFlags().String("color", "auto", "color output: auto, always, never")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "verbose logging")
	_ = viper.BindPFlag("color", cmd.PersistentFlags().Lookup("color"))
	_ = viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))
	viper.SetEnvPrefix("CARDCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	cmd.AddCommand(newRenderCmd(), newValidateCmd())
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func newPrinter(out, errOut io.Writer) (*output.Printer, error) {
	mode, err := output.ParseColorMode(viper.GetString("color"))
	if err != nil {
		return nil, err
	}
	return output.NewPrinter(out, errOut, output.ResolveColors(mode)), nil
}

func readCardsFile(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
