package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/jeanpaul/adivina/internal/config"
	"github.com/jeanpaul/adivina/internal/export"
	"github.com/jeanpaul/adivina/internal/knowledge"
	"github.com/jeanpaul/adivina/internal/tui"
)

var entitiesRaw bool

var entitiesCmd = &cobra.Command{
	Use:     "entities",
	Aliases: []string{"list", "ls"},
	Short:   "List the known Warframes and their attributes",
	Args:    cobra.NoArgs,
	RunE:    runEntities,
}

func init() {
	entitiesCmd.Flags().BoolVar(&entitiesRaw, "raw", false, "Print the markdown table without rendering")
	rootCmd.AddCommand(entitiesCmd)
}

// loadKnowledge opens the configured store and reads it; a broken store is
// an error here, unlike in the game.
func loadKnowledge(cfg *config.Config) (knowledge.Base, error) {
	store, err := knowledge.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Load()
}

func runEntities(cmd *cobra.Command, args []string) error {
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

	out := cmd.OutOrStdout()
	if len(base) == 0 {
		fmt.Fprintln(out, tui.HelpStyle.Render("No hay Warframes guardados todavía."))
		return nil
	}

	md := fmt.Sprintf("# Warframes conocidos (%d)\n\n%s", len(base), export.Markdown(base, qs))
	if entitiesRaw {
		fmt.Fprint(out, md)
		return nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return err
	}
	rendered, err := r.Render(md)
	if err != nil {
		return err
	}
	fmt.Fprint(out, rendered)
	return nil
}
