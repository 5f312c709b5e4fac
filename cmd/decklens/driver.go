package main

import (
	"context"
	"fmt"

	"github.com/mbarreto/decklens"
	"github.com/mbarreto/decklens/backend"
	"github.com/mbarreto/decklens/gemini"
)

const defaultBackendURL = "http://localhost:8000"

// config carries the resolved flag and environment inputs. Env vars are read
// only in main and passed here as values.
type config struct {
	Driver       string
	BackendURL   string
	EnvURL       string
	GeminiAPIKey string
}

// baseURL resolves the backend URL: explicit flag, then environment, then
// the local default.
func (c config) baseURL() string {
	if c.BackendURL != "" {
		return c.BackendURL
	}
	if c.EnvURL != "" {
		return c.EnvURL
	}
	return defaultBackendURL
}

// driver resolves the backend driver. The HTTP backend is the default; the
// direct Gemini driver must be requested explicitly since it serves only
// llm_only analysis.
func (c config) driver() string {
	if c.Driver != "" {
		return c.Driver
	}
	return "http"
}

// resolveBackend constructs the query backend for the selected driver.
func resolveBackend(ctx context.Context, cfg config, client *backend.Client) (decklens.Backend, error) {
	switch cfg.driver() {
	case "http":
		return client, nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY not set (required by -driver gemini)")
		}
		gc, err := gemini.New(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, err
		}
		return gc, nil
	default:
		return nil, fmt.Errorf("unknown driver %q: must be \"http\" or \"gemini\"", cfg.Driver)
	}
}
