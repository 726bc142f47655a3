package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tmdb"
	"github.com/mmcdole/marquee/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func main() {
	var (
		showVersion bool
		configPath  string
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	if showVersion {
		fmt.Printf("marquee %s\n", Version)
		return
	}

	if err := run(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	// Load configuration
	cfg, err := adapter.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting marquee", "version", Version)

	// Check if configured
	if !cfg.IsConfigured() {
		return runSetupFlow(cfg, configPath, logger)
	}

	// Open preference storage (memory-only when no data dir is set)
	var storage store.SlotStorage
	if path := cfg.StorePath(); path != "" {
		storage, err = store.OpenBoltStorage(path)
		if err != nil {
			return fmt.Errorf("failed to open preference store: %w", err)
		}
	} else {
		storage = store.NewMemoryStorage()
	}
	prefs := store.NewPreferences(storage, logger)
	defer func() {
		if err := prefs.Close(); err != nil {
			logger.Warn("failed to close preference store", "error", err)
		}
	}()

	client := newClient(cfg, logger)
	aggregator := catalog.NewAggregator(client, catalog.Options{
		PageBudget:     cfg.Catalog.PageBudget,
		MaxConcurrency: cfg.Catalog.MaxConcurrency,
		CacheTTL:       cfg.Catalog.CacheTTL,
	}, logger)
	details := catalog.NewDetailsLoader(client, cfg.TMDB.Region, logger)
	launcher := adapter.NewLauncher(cfg.Player.Command, cfg.Player.Args, logger)

	category, err := domain.ParseCategory(cfg.UI.DefaultCategory)
	if err != nil {
		return err
	}

	model := tui.NewModel(aggregator, details, launcher, prefs, tui.Options{
		Category: category,
		Sort:     domain.ParseSortPolicy(cfg.UI.DefaultSort),
	}, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	model.Shutdown()

	logger.Info("shutting down")
	return nil
}

func newClient(cfg *adapter.Config, logger *slog.Logger) *tmdb.Client {
	return tmdb.NewClient(tmdb.Options{
		BaseURL:           cfg.TMDB.BaseURL,
		APIKey:            cfg.TMDB.APIKey,
		Language:          cfg.TMDB.Language,
		RequestsPerSecond: cfg.TMDB.RequestsPerSecond,
		Timeout:           cfg.TMDB.Timeout,
	}, logger)
}

// runSetupFlow asks for an API key, checks it and saves the config
func runSetupFlow(cfg *adapter.Config, configPath string, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to Marquee!")
	fmt.Println()
	fmt.Println("Marquee needs a TMDB API key (https://www.themoviedb.org/settings/api).")

	for {
		fmt.Print("API key: ")
		keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		apiKey := strings.TrimSpace(string(keyBytes))
		if apiKey == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		cfg.TMDB.APIKey = apiKey
		err = checkKeyWithSpinner(newClient(cfg, logger))
		if errors.Is(err, domain.ErrAuthFailed) {
			fmt.Println("✗ The API key was rejected. Please try again.")
			fmt.Println()
			continue
		}
		if err != nil {
			return fmt.Errorf("could not reach TMDB: %w", err)
		}
		break
	}

	if err := adapter.SaveConfig(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run marquee again to start the application.")

	return nil
}

// checkKeyWithSpinner fetches one listing page with a visual spinner
func checkKeyWithSpinner(client *tmdb.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)
	go func() {
		_, err := client.FetchPage(ctx, domain.PopularMovies.Tag(), 1)
		resultCh <- err
	}()

	frame := 0
	fmt.Printf("\r%s Checking API key...", spinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err == nil {
				fmt.Println("✓ API key accepted")
			}
			return err

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking API key...", spinnerFrames[frame%len(spinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("key check timed out")
		}
	}
}
