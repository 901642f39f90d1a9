package main

import (
	"os"
	"team-planning/internal/config"
	"team-planning/internal/repository"
	"team-planning/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "closures <file.json>",
	Short: "Import office closure days into the planning",
	Long: `Reads a closure calendar (one entry per month, days separated by commas,
"*" marks a shortened working day and is skipped, "+" a transferred day off)
and sets every team member to Fermeture on each listed day.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	cfg.SetupLogger()

	ctx := cmd.Context()
	store, err := repository.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := service.NewClosureService(store.Planning, cfg).Import(ctx, args[0])
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"file":    args[0],
		"entries": n,
	}).Info("Closure days imported")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("Closure import failed")
		os.Exit(1)
	}
}
