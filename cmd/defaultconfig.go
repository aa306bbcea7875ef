package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/surrey-law-society/site-images/internal/config"
)

// DefaultConfig writes the built-in configuration to path, refusing to
// overwrite an existing file.
func DefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("target file %s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	data, err := config.Marshal(config.Default(), path)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.Info().Str("output", path).Msg("Default configuration written")
	return nil
}
