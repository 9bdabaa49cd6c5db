package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/rc-runtime/arena"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to TOML config file")
		scenario    = flag.String("scenario", "", "Scenario to run (see -list)")
		modeFlag    = flag.String("mode", "", "Arena mode: checked or unchecked")
		list        = flag.Bool("list", false, "List scenarios and exit")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	cfg := defaultConfig()
	if *configPath != "" {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Flags override file values.
	if *modeFlag != "" {
		m, err := parseMode(*modeFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg.Mode = m
	}
	if *verbose {
		cfg.Verbose = true
	}
	if *scenario != "" {
		cfg.Scenario = *scenario
	}

	if cfg.Verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		arena.SetLogger(logger)
	}

	if *list {
		fmt.Println("Scenarios:")
		for _, s := range scenarios {
			fmt.Printf("  %-16s %s\n", s.name, s.description)
		}
		return
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(cfg.Mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runScenarios(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runScenarios(cfg playConfig) error {
	selected := scenarios
	if cfg.Scenario != "" && cfg.Scenario != "all" {
		s, ok := findScenario(cfg.Scenario)
		if !ok {
			return fmt.Errorf("unknown scenario %q (try -list)", cfg.Scenario)
		}
		selected = []scenarioSpec{s}
	}

	for i, s := range selected {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("=== %s: %s ===\n", s.name, s.description)
		if err := s.run(cfg.Mode); err != nil {
			return fmt.Errorf("scenario %s: %w", s.name, err)
		}
	}
	return nil
}
