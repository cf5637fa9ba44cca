package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/syeo66/ochsenbein.red-2023/internal/config"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validates all content entries without building",
	Long: `The check command validates every entry of every collection and
reports all invalid entries. It exits with a non-zero status if any entry is
invalid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(appConfig, logger, cmd.OutOrStdout())
	},
}

func runCheck(cfg config.Config, log logrus.FieldLogger, out io.Writer) error {
	_, report, _, err := loadSite(cfg, log, false)
	if err != nil {
		return err
	}
	for _, f := range report.Failures {
		fmt.Fprintln(out, f.Error())
	}
	if n := len(report.Failures); n > 0 {
		return fmt.Errorf("%d invalid content entries", n)
	}
	fmt.Fprintf(out, "%d entries valid\n", len(report.Valid))
	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
