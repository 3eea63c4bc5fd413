package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobagg/internal/model"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List job-search providers and whether they are enabled",
	RunE:  runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-12s %-10s %s\n", "Provider", "Status", "Endpoint")
	fmt.Println(strings.Repeat("─", 47))

	enabled := 0
	for _, src := range model.Sources {
		pc := cfg.Providers.For(src)
		status := "disabled"
		if pc.Enabled {
			status = "enabled"
			enabled++
		}
		endpoint := pc.BaseURL
		if endpoint == "" {
			endpoint = "(default)"
		}
		fmt.Printf("%-12s %-10s %s\n", src, status, endpoint)
	}

	fmt.Printf("\nTotal: %d providers (%d enabled, %d disabled)\n", len(model.Sources), enabled, len(model.Sources)-enabled)
	return nil
}
