package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/adivina/internal/config"
	"github.com/jeanpaul/adivina/internal/health"
	"github.com/jeanpaul/adivina/internal/tui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the configuration, knowledge base, assets and log file",
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(out, "  %s config  %v\n", tui.ErrorStyle.Render("✗"), err)
		return fmt.Errorf("doctor: configuration is invalid")
	}
	path := cfgFile
	if path == "" {
		path = config.Path()
	}
	fmt.Fprintf(out, "  %s config  %s\n", tui.SuccessStyle.Render("✓"), path)

	failed := 0
	for _, s := range health.Check(context.Background(), cfg) {
		if s.OK {
			fmt.Fprintf(out, "  %s %-7s %s %s\n", tui.SuccessStyle.Render("✓"), s.Check, s.Target,
				tui.HelpStyle.Render(fmt.Sprintf("(%s, %s)", s.Detail, s.Latency.Round(time.Microsecond))))
			continue
		}
		failed++
		fmt.Fprintf(out, "  %s %-7s %s %s\n", tui.ErrorStyle.Render("✗"), s.Check, s.Target, tui.ErrorStyle.Render(s.Error))
	}

	if failed > 0 {
		return fmt.Errorf("doctor: %d check(s) failed", failed)
	}
	return nil
}
