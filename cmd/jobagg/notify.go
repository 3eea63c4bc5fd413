package main

import (
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobagg/internal/notifier"
)

var notifySearch string

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Notification subcommands",
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test notification",
	Long: "Sends one sample posting through the configured notifier (log or slack).\n" +
		"Use --search to label it with a saved search name from watch.searches.",
	RunE: runNotifyTest,
}

func init() {
	notifyTestCmd.Flags().StringVar(&notifySearch, "search", "", "saved search name shown in the message (default \"test\")")
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyTestCmd)
}

func runNotifyTest(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	n := setupNotifier(cfg, &http.Client{Timeout: cfg.Providers.Timeout}, logger)
	logger.Info("sending test notification",
		"type", cfg.Notification.Type,
		"search", notifySearch,
	)

	if err := notifier.SendTestMessage(n, notifySearch); err != nil {
		logger.Error("test notification failed", "type", cfg.Notification.Type, "error", err)
		os.Exit(1)
	}
	logger.Info("test notification sent successfully", "type", cfg.Notification.Type)
	return nil
}
