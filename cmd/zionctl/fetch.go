package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"zion-impact-fm/internal/config"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <target>",
	Short: "Print the API content behind a page section",
	Long: `Fetches the JSON the site polls for one target and prints it indented.
Targets: program, schedule, sermons, testimonies, news.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().Int("day", int(time.Now().Weekday()), "weekday for schedule (0 = Sunday)")
	rootCmd.AddCommand(fetchCmd)
}

// endpoint returns the API path the site polls for target.
func endpoint(cfg *config.Config, target string, day int) (string, error) {
	switch target {
	case "program":
		return "/programs/current", nil
	case "schedule":
		if day < 0 || day > 6 {
			return "", fmt.Errorf("day %d out of range 0-6", day)
		}
		return fmt.Sprintf("/schedule?day=%d", day), nil
	case "sermons":
		return fmt.Sprintf("/sermons?limit=%d", cfg.SermonLimit), nil
	case "testimonies":
		return fmt.Sprintf("/testimonies?approved=1&limit=%d", cfg.TestimonyLimit), nil
	case "news":
		return fmt.Sprintf("/news?limit=%d", cfg.NewsLimit), nil
	}
	targets := []string{"program", "schedule", "sermons", "testimonies", "news"}
	sort.Strings(targets)
	return "", fmt.Errorf("unknown target %q (want one of %s)", target, strings.Join(targets, ", "))
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	day, _ := cmd.Flags().GetInt("day")

	path, err := endpoint(cfg, args[0], day)
	if err != nil {
		return err
	}

	data, err := newClient(cfg).GetRaw(cmd.Context(), path)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return fmt.Errorf("API returned invalid JSON: %w", err)
	}
	out.WriteByte('\n')
	_, err = out.WriteTo(cmd.OutOrStdout())
	return err
}
