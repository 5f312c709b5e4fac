// Command decklens is a terminal client for browsing and querying NEWAVE
// and DECOMP energy-planning decks through a deck-analysis backend.
//
// Usage:
//
//	decklens [flags]
//
// Flags:
//
//	-backend string   Backend base URL (default: DECKLENS_BACKEND_URL or http://localhost:8000)
//	-driver string    Backend driver: http, gemini (default: http; gemini needs GEMINI_API_KEY)
//	-deck string      Deck name(s) to load, comma-separated (two names enable comparison)
//	-mode string      Initial analysis mode: single, comparison, llm, llm_only
//	-session string   Path to a saved transcript to resume
//	-verbose          Log stream diagnostics to stderr
//
// One-shot operations (run and exit, http driver only):
//
//	-list-decks           List decks available on the backend
//	-upload DIR           Upload the deck files under DIR
//	-deck-name NAME       Deck name for -upload (default: DIR base name)
//	-reindex              Rebuild the backend documentation index
//	-delete-session ID    Release a backend session
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mbarreto/decklens"
	"github.com/mbarreto/decklens/backend"
	bt "github.com/mbarreto/decklens/bubbletea"
	decklensjson "github.com/mbarreto/decklens/json"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "decklens: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		backendURL  = flag.String("backend", "", "Backend base URL (default: DECKLENS_BACKEND_URL or http://localhost:8000)")
		driverFlag  = flag.String("driver", "", "Backend driver: http, gemini")
		deckFlag    = flag.String("deck", "", "Deck name(s) to load, comma-separated")
		modeFlag    = flag.String("mode", "", "Initial analysis mode: single, comparison, llm, llm_only")
		sessionPath = flag.String("session", "", "Path to a saved transcript to resume")
		verbose     = flag.Bool("verbose", false, "Log stream diagnostics to stderr")

		listDecks  = flag.Bool("list-decks", false, "List decks available on the backend and exit")
		uploadDir  = flag.String("upload", "", "Upload the deck files under the given directory and exit")
		deckName   = flag.String("deck-name", "", "Deck name for -upload (default: directory base name)")
		reindex    = flag.Bool("reindex", false, "Rebuild the backend documentation index and exit")
		deleteSess = flag.String("delete-session", "", "Release the given backend session and exit")
	)
	flag.Parse()

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := zerolog.Nop()
	if *verbose {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	// Env vars are read here and passed as values.
	cfg := config{
		Driver:       *driverFlag,
		BackendURL:   *backendURL,
		EnvURL:       os.Getenv("DECKLENS_BACKEND_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
	}

	client := backend.New(backend.WithBaseURL(cfg.baseURL()), backend.WithLogger(log))

	// One-shot operations run against the HTTP API and exit.
	switch {
	case *listDecks:
		return runListDecks(ctx, client)
	case *uploadDir != "":
		return runUpload(ctx, client, *uploadDir, *deckName)
	case *reindex:
		return client.ReindexDocs(ctx)
	case *deleteSess != "":
		return client.DeleteSession(ctx, *deleteSess)
	}

	be, err := resolveBackend(ctx, cfg, client)
	if err != nil {
		return err
	}

	session, err := loadOrCreateSession(ctx, *sessionPath, *deckFlag, client, cfg)
	if err != nil {
		return err
	}

	runner := decklens.NewRunner(be)
	runFn := func(ctx context.Context, s *decklens.Session, text string, mode decklens.AnalysisMode, onEvent func(decklens.Event)) error {
		_, err := runner.Run(ctx, s, text,
			decklens.WithMode(mode),
			decklens.WithEventHandler(onEvent),
		)
		return err
	}

	tuiModel := bt.New(runFn, &session, decklens.DefaultTheme())
	if mode := decklens.AnalysisMode(*modeFlag); *modeFlag != "" {
		if !mode.Valid() {
			return fmt.Errorf("invalid mode %q", *modeFlag)
		}
		tuiModel = tuiModel.SetMode(mode)
	}

	if err := bt.Run(ctx, tuiModel); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}

	// Save transcript on exit.
	if *sessionPath != "" {
		if err := decklensjson.Save(*sessionPath, session); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
	} else if len(session.Messages) > 0 {
		savePath := defaultSessionPath(session.ID)
		if err := decklensjson.Save(savePath, session); err != nil {
			return fmt.Errorf("auto-save session: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Transcrição salva em %s\n", savePath)
	}

	return nil
}

// loadOrCreateSession resumes a saved transcript, or bootstraps a fresh
// session by loading the requested decks on the backend.
func loadOrCreateSession(ctx context.Context, sessionPath, deckFlag string, client *backend.Client, cfg config) (decklens.Session, error) {
	if sessionPath != "" {
		s, err := decklensjson.Load(sessionPath)
		if err != nil {
			return decklens.Session{}, fmt.Errorf("load session: %w", err)
		}
		return s, nil
	}

	now := time.Now()
	session := decklens.Session{CreatedAt: now, UpdatedAt: now}

	decks := splitDecks(deckFlag)
	if len(decks) == 0 || cfg.driver() == "gemini" {
		// No backend-side state needed; the ID only scopes the transcript.
		session.ID = uuid.NewString()
		session.Decks = decks
		return session, nil
	}

	// The first LoadDeck creates the backend session; additional decks load
	// into the same one for comparison.
	for i, name := range decks {
		id, err := client.LoadDeck(ctx, name)
		if err != nil {
			return decklens.Session{}, fmt.Errorf("load deck %s: %w", name, err)
		}
		if i == 0 {
			session.ID = id
		}
	}
	session.Decks = decks
	return session, nil
}

func splitDecks(deckFlag string) []string {
	if deckFlag == "" {
		return nil
	}
	var decks []string
	for _, name := range strings.Split(deckFlag, ",") {
		if name = strings.TrimSpace(name); name != "" {
			decks = append(decks, name)
		}
	}
	return decks
}

func runListDecks(ctx context.Context, client *backend.Client) error {
	decks, err := client.ListDecks(ctx)
	if err != nil {
		return err
	}
	if len(decks) == 0 {
		fmt.Println("nenhum deck disponível")
		return nil
	}
	for _, d := range decks {
		if d.Kind != "" {
			fmt.Printf("%s\t%s\n", d.Name, d.Kind)
			continue
		}
		fmt.Println(d.Name)
	}
	return nil
}

func defaultSessionPath(id string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".decklens", "sessions", id+".json")
}

var errNoFiles = errors.New("no deck files found")
