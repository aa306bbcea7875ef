package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/surrey-law-society/site-images/internal/imagery"
	"gopkg.in/yaml.v3"
)

const DefaultDir = "images"

var supportedExtensions = []string{"json", "toml", "yaml", "yml"}

// Enhancement adjusts one background photograph. Multipliers of 1.0 leave
// the image untouched.
type Enhancement struct {
	Input      string  `json:"input" toml:"input" yaml:"input"`
	Output     string  `json:"output" toml:"output" yaml:"output"`
	Brightness float64 `json:"brightness" toml:"brightness" yaml:"brightness"`
	Contrast   float64 `json:"contrast" toml:"contrast" yaml:"contrast"`
	Saturation float64 `json:"saturation" toml:"saturation" yaml:"saturation"`
	BlurSigma  float64 `json:"blur_sigma,omitempty" toml:"blur_sigma,omitempty" yaml:"blur_sigma,omitempty"`
	Quality    int     `json:"quality,omitempty" toml:"quality,omitempty" yaml:"quality,omitempty"`
}

// Combination overlays a logo on a background.
type Combination struct {
	Background string  `json:"background" toml:"background" yaml:"background"`
	Logo       string  `json:"logo" toml:"logo" yaml:"logo"`
	Output     string  `json:"output" toml:"output" yaml:"output"`
	LogoScale  float64 `json:"logo_scale" toml:"logo_scale" yaml:"logo_scale"`
	FadeStart  float64 `json:"fade_start" toml:"fade_start" yaml:"fade_start"`
	FadeEnd    float64 `json:"fade_end" toml:"fade_end" yaml:"fade_end"`
	AlphaMode  string  `json:"alpha_mode,omitempty" toml:"alpha_mode,omitempty" yaml:"alpha_mode,omitempty"`
	// KnockoutTolerance, when positive, turns near-white logo pixels
	// transparent before compositing.
	KnockoutTolerance float64 `json:"knockout_tolerance,omitempty" toml:"knockout_tolerance,omitempty" yaml:"knockout_tolerance,omitempty"`
}

type Config struct {
	// Dir is the images directory; relative paths below are resolved
	// against it.
	Dir          string        `json:"dir" toml:"dir" yaml:"dir"`
	Enhancements []Enhancement `json:"enhancements" toml:"enhancements" yaml:"enhancements"`
	Combinations []Combination `json:"combinations" toml:"combinations" yaml:"combinations"`
}

// Default returns the three hero images of the society website.
func Default() Config {
	enhance := func(name string) Enhancement {
		return Enhancement{
			Input:      name + ".jpg",
			Output:     name + "_enhanced.jpg",
			Brightness: 1.1,
			Contrast:   1.2,
			Saturation: 1.1,
			Quality:    imagery.DefaultJPEGQuality,
		}
	}
	combine := func(name string, scale, start, end float64) Combination {
		return Combination{
			Background: name + "_enhanced.jpg",
			Logo:       "Logo-no-bg.PNG",
			Output:     name + "_combined.png",
			LogoScale:  scale,
			FadeStart:  start,
			FadeEnd:    end,
			AlphaMode:  string(imagery.AlphaMultiply),
		}
	}

	return Config{
		Dir: DefaultDir,
		Enhancements: []Enhancement{
			enhance("pic01"),
			enhance("pic02"),
			enhance("pic03"),
		},
		Combinations: []Combination{
			combine("pic01", 0.7, 0.15, 0.65),
			combine("pic02", 0.65, 0.2, 0.7),
			combine("pic03", 0.6, 0.25, 0.75),
		},
	}
}

// Load reads a manifest, picking the decoder from the file extension.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Config{Dir: DefaultDir}
	switch ext(path) {
	case "json":
		err = json.Unmarshal(data, &cfg)
	case "toml":
		err = toml.Unmarshal(data, &cfg)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = unsupported(path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes cfg in the format implied by path's extension.
func Marshal(cfg Config, path string) ([]byte, error) {
	switch ext(path) {
	case "json":
		return json.MarshalIndent(cfg, "", "  ")
	case "toml":
		return toml.Marshal(cfg)
	case "yaml", "yml":
		return yaml.Marshal(cfg)
	default:
		return nil, unsupported(path)
	}
}

func (c Config) Validate() error {
	if c.Dir == "" {
		return errors.New("images directory must be set")
	}

	var errs []error
	for i, e := range c.Enhancements {
		if err := e.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("enhancements[%d]: %w", i, err))
		}
	}
	for i, cb := range c.Combinations {
		if err := cb.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("combinations[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Path resolves name against the images directory.
func (c Config) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Dir, name)
}

func (e Enhancement) Validate() error {
	if e.Input == "" || e.Output == "" {
		return errors.New("input and output must be set")
	}
	if e.Brightness < 0 || e.Contrast < 0 || e.Saturation < 0 {
		return fmt.Errorf("multipliers must not be negative for %s", e.Output)
	}
	if e.Quality < 0 || e.Quality > 100 {
		return fmt.Errorf("quality %d out of range [0, 100] for %s", e.Quality, e.Output)
	}
	if _, err := imagery.FormatFromPath(e.Output); err != nil {
		return err
	}
	return nil
}

func (c Combination) Validate() error {
	if c.Background == "" || c.Logo == "" || c.Output == "" {
		return errors.New("background, logo and output must be set")
	}
	if _, err := c.Options(); err != nil {
		return fmt.Errorf("%s: %w", c.Output, err)
	}
	if _, err := imagery.FormatFromPath(c.Output); err != nil {
		return err
	}
	return nil
}

func (c Combination) Options() (imagery.CombineOptions, error) {
	mode, err := imagery.ParseAlphaMode(c.AlphaMode)
	if err != nil {
		return imagery.CombineOptions{}, err
	}
	opts := imagery.CombineOptions{
		LogoScale: c.LogoScale,
		Fade:      imagery.Fade{Start: c.FadeStart, End: c.FadeEnd},
		AlphaMode: mode,
	}
	if err := opts.Validate(); err != nil {
		return imagery.CombineOptions{}, err
	}
	return opts, nil
}

func ext(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

func unsupported(path string) error {
	return fmt.Errorf("config file %s must have one of supported extensions: %s", path, strings.Join(supportedExtensions, ", "))
}
