package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codepad/internal/assist"
	"codepad/internal/config"
	"codepad/internal/logger"
	"codepad/internal/store"
	"codepad/internal/suggest"
	"codepad/internal/tui"
)

const usage = `usage: codepad [--config file] <command>

commands:
  codepad [file]                       edit file in the terminal
  codepad render [--open] <file> [out] write the dual-layer HTML page for file
  codepad suggest <file> <offset>      print suggestions at a byte offset
  codepad expand [abbreviation]        expand an abbreviation (stdin if omitted)
  codepad format <file>                print file formatted by the model
  codepad tables list|show|reset|export|import
  codepad login                        store an Anthropic API key (read from stdin)
  codepad logout                       remove the stored API key
  codepad config init                  write the default configuration
`

func main() {
	configPath := flag.String("config", config.DefaultPath(), "configuration file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Log.Dir, cfg.Log.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()
	logger.Debug("starting codepad", "config", *configPath)

	app := &app{cfg: cfg, configPath: *configPath, stdin: os.Stdin, stdout: os.Stdout}
	if err := app.run(flag.Args()); err != nil {
		logger.Error("command failed", "args", flag.Args(), "error", err)
		fmt.Fprintf(os.Stderr, "codepad: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	cfg        config.Config
	configPath string
	stdin      io.Reader
	stdout     io.Writer
}

func (a *app) run(args []string) error {
	if len(args) == 0 {
		return a.edit("")
	}
	switch args[0] {
	case "render":
		return a.render(args[1:])
	case "suggest":
		return a.suggest(args[1:])
	case "expand":
		return a.expand(args[1:])
	case "format":
		return a.format(args[1:])
	case "tables":
		return a.tables(args[1:])
	case "login":
		return a.login()
	case "logout":
		return a.logout()
	case "config":
		return a.configCmd(args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(a.stdout, usage)
		return nil
	}
	if len(args) > 1 {
		return fmt.Errorf("unknown command %q", args[0])
	}
	return a.edit(args[0])
}

func (a *app) edit(path string) error {
	root, err := os.Getwd()
	if err != nil {
		root = "."
	}
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		path = abs
		root = filepath.Dir(abs)
	}

	tables, closeStore := a.loadTables()
	defer closeStore()

	opts := tui.Options{
		Path:   path,
		Root:   root,
		Config: a.cfg,
		Tables: tables,
	}
	if client, err := a.assistClient(); err != nil {
		logger.Info("model completion disabled", "reason", err)
	} else {
		opts.Completer = client
		opts.Formatter = client
		opts.AssistLabel = a.cfg.Completion.Model
	}
	return tui.Run(opts)
}

// loadTables reads the suggestion tables, falling back to the defaults
// when the database cannot be opened.
func (a *app) loadTables() (suggest.Tables, func()) {
	st, err := store.Open(a.cfg.Storage.Database)
	if err != nil {
		logger.Warn("using default suggestion tables", "error", err)
		return suggest.DefaultTables(), func() {}
	}
	tables, err := st.Tables(context.Background())
	if err != nil {
		logger.Warn("using default suggestion tables", "error", err)
		tables = suggest.DefaultTables()
	}
	return tables, func() { st.Close() }
}

// assistClient builds the model client when completion is enabled and a key
// is available.
func (a *app) assistClient() (*assist.Client, error) {
	if !a.cfg.Completion.Enabled {
		return nil, errors.New("completion.enabled is false")
	}
	key, err := assist.ResolveAPIKey(a.cfg.Completion.APIKey, assist.NewCredentials(assist.DefaultCredentialsPath()))
	if err != nil {
		return nil, err
	}
	return assist.NewClient(assist.ClientOptions{
		APIKey:     key,
		BaseURL:    a.cfg.Completion.BaseURL,
		Model:      a.cfg.Completion.Model,
		MaxTokens:  a.cfg.Completion.MaxTokens,
		MaxRetries: 1,
		Timeout:    a.cfg.Completion.Timeout.Duration,
	})
}

// readInput joins args, or reads stdin when there are none.
func (a *app) readInput(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	scanner := bufio.NewScanner(a.stdin)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("error reading stdin: %w", err)
	}
	return strings.Join(lines, "\n"), nil
}

func (a *app) login() error {
	fmt.Fprint(a.stdout, "Anthropic API key: ")
	scanner := bufio.NewScanner(a.stdin)
	scanner.Scan()
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading stdin: %w", err)
	}
	key := strings.TrimSpace(scanner.Text())
	if key == "" {
		return errors.New("no key provided")
	}
	if err := assist.NewCredentials(assist.DefaultCredentialsPath()).Set(assist.Provider, key); err != nil {
		return fmt.Errorf("failed to store key: %w", err)
	}
	fmt.Fprintln(a.stdout, "Key stored.")
	return nil
}

func (a *app) logout() error {
	if err := assist.NewCredentials(assist.DefaultCredentialsPath()).Remove(assist.Provider); err != nil {
		return fmt.Errorf("failed to remove key: %w", err)
	}
	fmt.Fprintln(a.stdout, "Key removed.")
	return nil
}

func (a *app) configCmd(args []string) error {
	if len(args) != 1 || args[0] != "init" {
		return errors.New("usage: codepad config init")
	}
	if _, err := os.Stat(a.configPath); err == nil {
		return fmt.Errorf("%s already exists", a.configPath)
	}
	if err := config.Write(a.configPath, config.Default()); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Wrote %s\n", a.configPath)
	return nil
}

func (a *app) timeout() time.Duration {
	if d := a.cfg.Completion.Timeout.Duration; d > 0 {
		return 3 * d
	}
	return 60 * time.Second
}
