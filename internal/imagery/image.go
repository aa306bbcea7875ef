package imagery

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"
)

type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"

	DefaultJPEGQuality = 95
)

type Image struct {
	Img     image.Image
	Bounds  image.Rectangle
	Format  Format
	Quality int
}

type PipelineStage interface {
	Process(img *Image) error
}

func NewImage(img image.Image, format Format) *Image {
	return &Image{
		Img:     img,
		Bounds:  img.Bounds(),
		Format:  format,
		Quality: DefaultJPEGQuality,
	}
}

func NewImageFromReader(r io.Reader) (*Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	// the apng decoder registers itself for the plain PNG signature too
	if format == "apng" {
		format = string(FormatPNG)
	}
	return NewImage(img, Format(format)), nil
}

// Open decodes the image at path. Errors always name the path.
func Open(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	img, err := NewImageFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// FormatFromPath picks the output encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unsupported output format for %s", path)
	}
}

func (p *Image) Write(w io.Writer) error {
	switch p.Format {
	case FormatJPEG:
		quality := p.Quality
		if quality <= 0 {
			quality = DefaultJPEGQuality
		}
		return jpeg.Encode(w, p.Img, &jpeg.Options{Quality: quality})
	case FormatPNG:
		return png.Encode(w, p.Img)
	default:
		return fmt.Errorf("encoding to %q is not supported", p.Format)
	}
}

// Save encodes the image to filename, choosing the format from its
// extension. The data is written to a temporary file in the same directory
// and renamed into place, so a failure never leaves a partial output.
func (p *Image) Save(filename string) error {
	format, err := FormatFromPath(filename)
	if err != nil {
		return err
	}
	p.Format = format

	tmpFile, err := os.CreateTemp(filepath.Dir(filename), "site-images-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	cleanupTemp := true
	defer func() {
		_ = tmpFile.Close()
		if cleanupTemp {
			_ = os.Remove(tmpFile.Name())
		}
	}()

	if err := p.Write(tmpFile); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filename, err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file before rename: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	cleanupTemp = false
	return nil
}

func (p *Image) Pipeline(stages ...PipelineStage) error {
	for _, stage := range stages {
		if err := stage.Process(p); err != nil {
			return err
		}
		p.Bounds = p.Img.Bounds()
	}
	return nil
}
