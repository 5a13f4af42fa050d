package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/reqdoc/pkg/adapters/codec"
	"github.com/aretw0/reqdoc/pkg/core"
)

// loadSession reads one checklist file and loads it into a fresh session.
// The codec is picked from the file extension.
func loadSession(path string) (*core.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	root, err := codec.ForPath(path).Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	session := core.NewSession(core.WithLogger(slog.Default()))
	if _, err := session.LoadRoot(root); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return session, nil
}
