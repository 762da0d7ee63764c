package main

import (
	"github.com/spf13/cobra"

	"zion-impact-fm/internal/api"
	"zion-impact-fm/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "zionctl",
	Short: "Operator tool for the Zion Impact FM site",
	Long: `zionctl talks to the station API the way the site does. It prints the
content the site would render and submits forms through the same
controllers, validation included.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "zion.yml", "config file path")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newClient(cfg *config.Config) *api.Client {
	return api.NewClient(cfg.APIBase, nil, cfg.RequestTimeout)
}
