package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"zion-impact-fm/internal/model"
	"zion-impact-fm/internal/page"
	"zion-impact-fm/internal/player"
	"zion-impact-fm/internal/site"
)

var submitCmd = &cobra.Command{
	Use:   "submit <testimony|booking|contact|partner>",
	Short: "Submit a site form",
	Long: `Fills a site form from --field flags and submits it through the form
controller, so the same validation and wire format apply.`,
	Example: `  zionctl submit contact --field name=Ruth --field email=ruth@example.org \
    --field subject=Prayer --field message="Please pray for us"
  zionctl submit testimony --field name=Mary --field email=mary@example.org \
    --field content="God healed my mother" --file praise.mp3`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringArray("field", nil, "form field as name=value (repeatable)")
	submitCmd.Flags().String("file", "", "file to attach (testimony and booking only)")
	rootCmd.AddCommand(submitCmd)
}

// parseFields splits name=value pairs.
func parseFields(pairs []string) ([]model.Field, error) {
	var fields []model.Field
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid field %q: want name=value", p)
		}
		fields = append(fields, model.Field{Name: name, Value: value})
	}
	return fields, nil
}

func readAttachment(path string) (*model.Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading attachment: %w", err)
	}
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &model.Attachment{
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func runSubmit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pairs, _ := cmd.Flags().GetStringArray("field")
	filePath, _ := cmd.Flags().GetString("file")

	fields, err := parseFields(pairs)
	if err != nil {
		return err
	}

	doc, err := page.Default()
	if err != nil {
		return err
	}
	s, err := site.New(cfg, doc, newClient(cfg), player.NewStreamHandle(cfg.StreamURL, nil, nil))
	if err != nil {
		return err
	}
	f, ok := s.Form(args[0])
	if !ok {
		return fmt.Errorf("unknown form %q", args[0])
	}

	for _, field := range fields {
		if err := f.Set(field.Name, field.Value); err != nil {
			return err
		}
	}
	if filePath != "" {
		a, err := readAttachment(filePath)
		if err != nil {
			return err
		}
		if err := f.Attach(a); err != nil {
			return err
		}
	}

	err = f.Submit(cmd.Context())
	fmt.Fprintln(cmd.OutOrStdout(), f.Message().Text())
	f.Message().Stop()
	return err
}
