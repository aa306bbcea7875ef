package cmd

import (
	"fmt"
	"math"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/surrey-law-society/site-images/internal"
	"github.com/surrey-law-society/site-images/internal/config"
	"github.com/surrey-law-society/site-images/internal/imagery"
)

// APNG delays are stored as milliseconds in a uint16.
const maxFrameDelay = 65.535

// Animate writes an APNG cycling through the combined images, previewing
// the hero carousel.
func Animate(cfg config.Config, output string, width int, frameDelay float64) error {
	if math.IsNaN(frameDelay) || frameDelay <= 0 || frameDelay > maxFrameDelay {
		return fmt.Errorf("frame delay %gs must be in (0, %g]", frameDelay, maxFrameDelay)
	}

	processor, err := internal.NewProcessor(cfg)
	if err != nil {
		return err
	}

	files := processor.Outputs()
	apngBytes, err := imagery.Animate(files, width, frameDelay)
	if err != nil {
		return fmt.Errorf("failed to build animation: %w", err)
	}

	if err := os.WriteFile(output, apngBytes, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	log.Info().Str("output", output).Int("frames", len(files)).Msg("Animation written")
	return nil
}
