package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mbarreto/decklens/backend"
	"github.com/mbarreto/decklens/deckfs"
)

// runUpload collects the deck files under dir and uploads them as one deck.
func runUpload(ctx context.Context, client *backend.Client, dir, name string) error {
	files, err := deckfs.Collect(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w under %s", errNoFiles, dir)
	}

	if name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		name = filepath.Base(abs)
	}

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = filepath.Join(dir, f)
	}
	if err := client.UploadDeck(ctx, name, paths); err != nil {
		return err
	}

	kind := deckfs.DetectKind(files)
	fmt.Printf("deck %s enviado (%d arquivos, %s)\n", name, len(files), kind)
	return nil
}
