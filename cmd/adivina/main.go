package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jeanpaul/adivina/internal/assets"
	"github.com/jeanpaul/adivina/internal/config"
	"github.com/jeanpaul/adivina/internal/engine"
	"github.com/jeanpaul/adivina/internal/headless"
	"github.com/jeanpaul/adivina/internal/knowledge"
	"github.com/jeanpaul/adivina/internal/logging"
	"github.com/jeanpaul/adivina/internal/session"
	"github.com/jeanpaul/adivina/internal/tui"
)

var (
	cfgFile      string
	dataFlag     string
	backendFlag  string
	verboseFlag  bool
	headlessFlag bool
	seedFlag     int64
	themeFlag    string
)

var rootCmd = &cobra.Command{
	Use:   "adivina",
	Short: "Adivina el Warframe en el que estás pensando",
	Long: `Responde unas preguntas sobre tu Warframe y el juego intentará adivinarlo.
Cuando falla, aprende la respuesta y la guarda para la próxima partida.

Examples:
  adivina
  adivina --headless
  adivina --data warframes.yaml
  adivina --backend sqlite --data warframes.db`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	rootCmd.SetVersionTemplate("adivina {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default: ./config.yaml or ~/.config/adivina/config.yaml)")
	pf.StringVar(&dataFlag, "data", "", "Knowledge base file (overrides storage.path)")
	pf.StringVar(&backendFlag, "backend", "", "Storage backend: json, yaml or sqlite (default: from --data extension)")
	pf.BoolVar(&verboseFlag, "verbose", false, "Log at debug level")

	rootCmd.Flags().BoolVar(&headlessFlag, "headless", false, "Play on plain stdin/stdout instead of the TUI")
	rootCmd.Flags().Int64Var(&seedFlag, "seed", 0, "Seed for predictions (0 = game.seed or the clock)")
	rootCmd.Flags().StringVar(&themeFlag, "theme", "", "Color theme: green, amber or cyan")
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fatal("%v", err)
	}
}

func fatal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render("error: "+msg))
	os.Exit(1)
}

// loadConfig reads the config and applies the persistent flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if dataFlag != "" {
		cfg.Storage.Path = dataFlag
		if backendFlag == "" {
			cfg.Storage.Backend = backendFromExt(dataFlag, cfg.Storage.Backend)
		}
	}
	if backendFlag != "" {
		cfg.Storage.Backend = backendFlag
	}
	if themeFlag != "" {
		cfg.Theme = themeFlag
	}
	if seedFlag != 0 {
		cfg.Game.Seed = seedFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func backendFromExt(path, fallback string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".db", ".sqlite", ".sqlite3":
		return "sqlite"
	}
	return fallback
}

// openBase opens the store and loads it. When the stored data cannot be read
// the store is still returned, with an empty base and the load error.
func openBase(cfg *config.Config, log *logrus.Logger) (knowledge.Store, knowledge.Base, error) {
	store, err := knowledge.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, nil, err
	}
	base, err := store.Load()
	if err != nil {
		log.WithError(err).WithField("path", store.Location()).Error("failed to load knowledge base")
		return store, knowledge.NewBase(), err
	}
	log.WithFields(logrus.Fields{
		"path":    store.Location(),
		"backend": cfg.Storage.Backend,
		"known":   len(base),
	}).Info("knowledge base loaded")
	return store, base, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := tui.ApplyTheme(cfg.Theme); err != nil {
		return err
	}

	logger, closer := logging.New(cfg.Log.File, cfg.Log.Level, verboseFlag)
	defer closer.Close()

	qs, err := cfg.QuestionSet()
	if err != nil {
		return err
	}

	store, base, loadErr := openBase(cfg, logger)
	if store == nil {
		return loadErr
	}
	defer store.Close()

	opts := []engine.Option{
		engine.WithDefault(cfg.Game.DefaultEntity),
		engine.WithLogger(logger.WithField("component", "engine")),
	}
	if cfg.Game.Seed != 0 {
		opts = append(opts, engine.WithRand(rand.New(rand.NewSource(cfg.Game.Seed))))
	}
	eng := engine.New(store, opts...)
	ctrl := session.New(qs, eng, base, logger.WithField("component", "session"))
	finder := assets.NewFinder(cfg.Assets.Dir)

	if headlessFlag {
		return playHeadless(ctrl, finder, loadErr, os.Stdin, os.Stdout)
	}

	m := tui.NewModel(ctrl, finder)
	if loadErr != nil {
		m = m.WithStatus(loadErr.Error()+" (empezando sin datos)", true)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func playHeadless(ctrl *session.Controller, finder *assets.Finder, loadErr error, in io.Reader, out io.Writer) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	p := headless.New(in, out, finder)
	if loadErr != nil {
		p.ShowError(fmt.Errorf("%w (empezando sin datos)", loadErr))
	}
	err := session.Run(ctx, ctrl, p)
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
