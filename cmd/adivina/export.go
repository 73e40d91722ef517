package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/adivina/internal/export"
	"github.com/jeanpaul/adivina/internal/tui"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the knowledge base to a spreadsheet or markdown file",
	Long: `Export the knowledge base. The format follows the file extension:

  .xlsx   one sheet, one row per Warframe
  .md     markdown table

Examples:
  adivina export warframes.xlsx
  adivina export --data warframes.yaml tabla.md`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	qs, err := cfg.QuestionSet()
	if err != nil {
		return err
	}
	base, err := loadKnowledge(cfg)
	if err != nil {
		return err
	}

	path := args[0]
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		err = export.XLSX(base, qs, path)
	case ".md", ".markdown":
		err = export.WriteMarkdown(base, qs, path)
	default:
		return fmt.Errorf("export: unsupported format %q (use .xlsx or .md)", filepath.Ext(path))
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), tui.SuccessStyle.Render(fmt.Sprintf("%d Warframes exportados a %s", len(base), path)))
	return nil
}
