package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/manualdex/manualdex/drive"
	"github.com/manualdex/manualdex/fs"
	"github.com/manualdex/manualdex/gemini"
	mdslog "github.com/manualdex/manualdex/slog"
	"github.com/manualdex/manualdex/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path for conversation history. Set before calling Run().
	DBPath string

	// CatalogPath selects a local catalog file. Empty means the catalog
	// lives on Drive next to the manuals.
	CatalogPath string

	// CredentialsPath is the Drive service account JSON path.
	CredentialsPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:          defaultDBPath(),
		CatalogPath:     os.Getenv("MANUALDEX_CATALOG"),
		CredentialsPath: os.Getenv("MANUALDEX_CREDENTIALS"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("manualdex"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'manualdex --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Wire the remote store. Every command touches the catalog, and the
	// catalog lives on Drive unless MANUALDEX_CATALOG points at a local file.
	svc, err := drive.NewService(ctx, m.CredentialsPath)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Set MANUALDEX_CREDENTIALS to a service account JSON path")
		return fmt.Errorf("failed to connect to Drive: %w", err)
	}
	logger := newLogger(stderr)
	deps.Source = mdslog.NewLoggingManualSource(drive.NewSource(svc), logger)

	if m.CatalogPath != "" {
		deps.Catalog = mdslog.NewLoggingCatalogService(fs.NewCatalogService(m.CatalogPath), logger)
	} else {
		deps.Catalog = mdslog.NewLoggingCatalogService(drive.NewCatalogService(svc), logger)
	}

	// Wire command-specific dependencies based on command
	if cmd == "sync" || cmd == "ask" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		model := gemini.PickModel(ctx, gemini.NewClientModelLister(client), gemini.PreferredModels)
		deps.Classifier = gemini.NewClassifier(client, deps.Source, model)
		deps.Generator = gemini.NewGenerator(client, model)
	}

	if cmd == "ask" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set MANUALDEX_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		deps.Conversations = sqlite.NewConversationService(m.DB)
	}

	return kongCtx.Run(deps)
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if os.Getenv("MANUALDEX_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("MANUALDEX_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "manualdex.db"
	}
	dir := filepath.Join(home, ".manualdex")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "manualdex.db")
}
