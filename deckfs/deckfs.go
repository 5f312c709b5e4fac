// Package deckfs collects energy-planning deck files from the local
// filesystem for upload. NEWAVE and DECOMP decks are directories of flat
// input files; glob patterns with ** support select which ones to send.
package deckfs

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPatterns matches the input files a backend needs to load a deck.
// Case variants are handled by Collect, which matches case-insensitively.
var DefaultPatterns = []string{
	"**/*.dat",
	"**/*.rv[0-9]",
	"**/*.csv",
	"**/caso.*",
	"**/arquivos.*",
}

// Deck kinds recognized by [DetectKind].
const (
	KindNEWAVE  = "newave"
	KindDECOMP  = "decomp"
	KindUnknown = "unknown"
)

// Collect walks dir and returns the relative paths of files matching any of
// the given patterns, deduplicated and sorted. Matching is case-insensitive
// because deck archives arrive with inconsistent casing (DGER.DAT vs
// dger.dat). With no patterns, DefaultPatterns is used.
func Collect(dir string, patterns ...string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("deckfs: invalid glob pattern %q", p)
		}
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("deckfs: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("deckfs: %s is not a directory", dir)
	}

	fsys := os.DirFS(dir)
	seen := make(map[string]bool)
	var matches []string

	err = iofs.WalkDir(fsys, ".", func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		lower := strings.ToLower(path)
		for _, p := range patterns {
			ok, err := doublestar.Match(strings.ToLower(p), lower)
			if err != nil {
				return err
			}
			if ok {
				if !seen[path] {
					seen[path] = true
					matches = append(matches, filepath.FromSlash(path))
				}
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("deckfs: %w", err)
	}

	sort.Strings(matches)
	return matches, nil
}

// DetectKind guesses the deck kind from its file names. DECOMP decks are
// identified by their dadger registry file, NEWAVE decks by dger or
// patamar files. Detection is a hint for display only; the backend decides
// how to parse.
func DetectKind(files []string) string {
	hasNewave := false
	for _, f := range files {
		name := strings.ToLower(filepath.Base(f))
		if strings.HasPrefix(name, "dadger.") || strings.HasPrefix(name, "dadgnl.") {
			return KindDECOMP
		}
		if strings.HasPrefix(name, "dger.") || strings.HasPrefix(name, "patamar.") || strings.HasPrefix(name, "sistema.") {
			hasNewave = true
		}
	}
	if hasNewave {
		return KindNEWAVE
	}
	return KindUnknown
}
