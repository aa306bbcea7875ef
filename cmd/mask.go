package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/surrey-law-society/site-images/internal/imagery"
)

// Mask writes a greyscale preview of a fade mask.
func Mask(output string, width, height int, fadeStart, fadeEnd float64) error {
	mask, err := imagery.GenerateFadeMask(width, height, fadeStart, fadeEnd)
	if err != nil {
		return err
	}

	if err := imagery.NewImage(mask.Image(), imagery.FormatPNG).Save(output); err != nil {
		return err
	}

	log.Info().Str("output", output).Int("width", width).Int("height", height).Msg("Fade mask written")
	return nil
}
