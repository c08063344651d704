/*
Package main implements the spell-checking server and CLI [DBG] application.

spellwright parses Hunspell-style .aff/.dic dictionaries and serves
checking and suggestion queries, either as a MessagePack IPC server for
integration with editors, or as a CLI application for manual testing.

# Usage

Start the server with default settings:

	spellwright -aff en.aff -dic en.dic

Run in CLI mode for interactive testing:

	spellwright -aff en.aff -dic en.dic -c -limit 10

# Command Line Flags

	-aff string
	    Path to the .aff affix file
	-dic string
	    Path to the .dic dictionary file
	-config string
	    Path to a config.toml file (default: resolved from the config dir)
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-check-prefix string
	    CLI line prefix that marks a check query (default "?")
	-limit int
	    Suggestion limit (0 = use config default)
	-max-dist float
	    Suggestion radius (0 = use config default)
	-no-filter
	    Disable CLI input filtering for debugging
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/halvardlie/spellwright/internal/cli"
	"github.com/halvardlie/spellwright/internal/utils"
	"github.com/halvardlie/spellwright/pkg/config"
	"github.com/halvardlie/spellwright/pkg/server"
	"github.com/halvardlie/spellwright/pkg/spellcheck"
)

const (
	Version = "0.1.0"
	AppName = "spellwright"
	gh      = "https://github.com/halvardlie/spellwright"
)

func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	affPath := flag.String("aff", "", "Path to the .aff affix file")
	dicPath := flag.String("dic", "", "Path to the .dic dictionary file")
	dictDir := flag.String("dict-dir", "dict/", "Directory to search for .aff/.dic files when -aff/-dic are unset")
	configPath := flag.String("config", "", "Path to a config.toml file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	checkPrefix := flag.String("check-prefix", "?", "CLI line prefix that marks a check query")
	limit := flag.Int("limit", 0, "Suggestion limit (0 = use config default)")
	maxDist := flag.Float64("max-dist", 0, "Suggestion radius (0 = use config default)")
	noFilter := flag.Bool("no-filter", false, "Disable CLI input filtering (DBG only)")

	flag.Parse()

	if *showVersion {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
			Prefix:          "",
		})

		styles := log.DefaultStyles()
		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		logger.SetStyles(styles)

		logger.Print("")
		logger.Print("[ spellwright ] Hunspell-style spell-checking")
		logger.Print("", "version", Version)
		logger.Print("")
		logger.Print("use -h or --help to see available options")
		logger.Print("Github Repo", "gh", gh)
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if *affPath == "" || *dicPath == "" {
		pathResolver, err := utils.NewPathResolver()
		if err != nil {
			log.Fatalf("failed to initialize path resolver: %v", err)
			os.Exit(1)
		}

		resolvedDir, err := pathResolver.GetDictDir(*dictDir)
		if err != nil {
			log.Fatalf("failed to resolve dictionary directory: %v", err)
			os.Exit(1)
		}
		log.Debugf("resolved dictionary dir: %s", resolvedDir)

		if *affPath == "" {
			if matches, _ := filepath.Glob(filepath.Join(resolvedDir, "*.aff")); len(matches) > 0 {
				*affPath = matches[0]
			}
		}
		if *dicPath == "" {
			if matches, _ := filepath.Glob(filepath.Join(resolvedDir, "*.dic")); len(matches) > 0 {
				*dicPath = matches[0]
			}
		}
	}

	if *affPath == "" || *dicPath == "" {
		log.Fatalf("could not locate .aff/.dic files; specify -aff/-dic or -dict-dir (searched %q)", *dictDir)
		os.Exit(1)
	}

	affBytes, err := os.ReadFile(*affPath)
	if err != nil {
		log.Fatalf("failed to read affix file: %v", err)
		os.Exit(1)
	}
	dicBytes, err := os.ReadFile(*dicPath)
	if err != nil {
		log.Fatalf("failed to read dictionary file: %v", err)
		os.Exit(1)
	}

	log.Debugf("parsing dictionary: aff=%s dic=%s", *affPath, *dicPath)
	dict := spellcheck.New(string(affBytes), string(dicBytes), nil)

	resolvedConfigPath := *configPath
	if resolvedConfigPath == "" {
		if p, err := config.GetDefaultConfigPath(); err == nil {
			resolvedConfigPath = p
		}
	}
	appConfig, _, err := config.LoadConfigWithPriority(resolvedConfigPath)
	if err != nil {
		log.Warnf("failed to load config, using defaults: %v", err)
		appConfig = config.DefaultConfig()
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		effectiveMaxDist := *maxDist
		if effectiveMaxDist == 0 {
			effectiveMaxDist = appConfig.Suggest.DefaultMaxDist
		}
		effectiveLimit := *limit
		if effectiveLimit == 0 {
			effectiveLimit = appConfig.Suggest.DefaultLimit
		}

		log.Debug("CLI info:",
			"checkPrefix", *checkPrefix,
			"limit", effectiveLimit,
			"maxDist", effectiveMaxDist,
			"noFilter", *noFilter)

		inputHandler := cli.NewInputHandler(dict, *checkPrefix, effectiveLimit, effectiveMaxDist, *noFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
			os.Exit(1)
		}
		return
	}

	log.Debug("spawning IPC")
	dict.InitBkTree()
	srv := server.NewServer(dict, appConfig)

	showStartupInfo(dict)

	if err := srv.Start(context.Background()); err != nil {
		log.Fatalf("server error: %v", err)
		os.Exit(1)
	}
}

func showStartupInfo(dict *spellcheck.Dictionary) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	stats := dict.Stats()
	println("===========")
	println(" spellwright ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("words loaded: %d", stats.WordCount)
	log.Infof("compound rules: %d", stats.CompoundRules)
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
