package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/netfrog/internal/browser"
	"github.com/mmcdole/netfrog/internal/cli"
	"github.com/mmcdole/netfrog/internal/config"
	"github.com/mmcdole/netfrog/internal/log"
	"github.com/mmcdole/netfrog/internal/mediaserver"
	"github.com/mmcdole/netfrog/internal/service"
	"github.com/mmcdole/netfrog/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

type flags struct {
	configPath string
	showID     int
	season     int
	plain      bool
	find       string
}

func main() {
	var (
		showVersion bool
		f           flags
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&f.configPath, "config", "", "path to config file")
	flag.IntVar(&f.showID, "show", 0, "TVMaze show id (overrides show.id)")
	flag.IntVar(&f.season, "season", -1, "initial season (overrides show.default_season)")
	flag.BoolVar(&f.plain, "plain", false, "print the show and exit")
	flag.StringVar(&f.find, "find", "", "search for shows and pick one to print")
	flag.Parse()

	if showVersion {
		fmt.Printf("netfrog %s\n", Version)
		return
	}

	if err := run(f); err != nil {
		if errors.Is(err, cli.ErrCancelled) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if f.showID > 0 {
		cfg.Show.ID = f.showID
	}
	if f.season >= 0 {
		cfg.Show.DefaultSeason = f.season
	}

	logger, closer, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting netfrog", "version", Version, "showID", cfg.Show.ID)

	src, err := mediaserver.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create TVMaze client: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if f.find != "" || f.plain || !interactive {
		return runNonInteractive(ctx, f, cfg, src, interactive, logger)
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	model := tui.NewModel(src, cfg.Show.ID, cfg.Show.DefaultSeason, logger)
	model.Opener = browser.NewOpener(cfg.UI.Browser, cfg.UI.BrowserArgs, logger)

	p := tea.NewProgram(model, opts...)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runNonInteractive prints the configured show, or the show picked from a
// search, to stdout
func runNonInteractive(ctx context.Context, f flags, cfg *config.Config, src mediaserver.MediaSource, tty bool, logger *slog.Logger) error {
	runner := cli.NewRunner(
		service.NewShowService(src, logger),
		service.NewSearchService(src, logger),
		cli.Options{
			Out:     os.Stdout,
			Width:   outputWidth(cfg.UI.SummaryWidth, tty),
			Spinner: tty,
		},
		logger,
	)

	if f.find != "" {
		return runner.Find(ctx, f.find, cli.FuzzyPicker)
	}
	return runner.PrintShow(ctx, cfg.Show.ID, cfg.Show.DefaultSeason)
}

// outputWidth caps the configured wrap width at the terminal width
func outputWidth(configured int, tty bool) int {
	if !tty {
		return configured
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return configured
	}
	return min(configured, w)
}
