// Package config loads the deck settings with viper.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/youruser/deckprint/internal/units"
)

const EnvPrefix = "DECKGEN"

type Config struct {
	Folders    FoldersConfig    `mapstructure:"folders"`
	Names      NamesConfig      `mapstructure:"names"`
	Dimensions DimensionsConfig `mapstructure:"dimensions"`
	Options    OptionsConfig    `mapstructure:"options"`
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
}

type FoldersConfig struct {
	Inputs  string `mapstructure:"inputs"`
	Outputs string `mapstructure:"outputs"`
	Images  string `mapstructure:"images"`
}

type NamesConfig struct {
	Front      string   `mapstructure:"front"`
	FrontCheck string   `mapstructure:"front_check"`
	Back       string   `mapstructure:"back"`
	Symbol     string   `mapstructure:"symbol"`
	Ranks      []string `mapstructure:"ranks"`
	Colors     []string `mapstructure:"colors"`
}

// DimensionsConfig holds the pixel density and the physical offsets, in
// millimeters, as [x, y] pairs.
type DimensionsConfig struct {
	PPI     float64   `mapstructure:"ppi"`
	Bleed   []float64 `mapstructure:"bleed"`
	Margins []float64 `mapstructure:"margins"`
	Spacing []float64 `mapstructure:"spacing"`
}

type OptionsConfig struct {
	GenerateImages bool   `mapstructure:"generate_images"`
	GeneratePDF    bool   `mapstructure:"generate_pdf"`
	PDFFormat      string `mapstructure:"pdf_format"`
	ImageFormat    string `mapstructure:"image_format"`
	VerifyMargins  bool   `mapstructure:"verify_margins"`
	Workers        int    `mapstructure:"workers"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("folders.inputs", "inputs")
	v.SetDefault("folders.outputs", "outputs")
	v.SetDefault("folders.images", "images")

	v.SetDefault("names.front", "front")
	v.SetDefault("names.front_check", "front_check")
	v.SetDefault("names.back", "back")
	v.SetDefault("names.symbol", "symbol")
	v.SetDefault("names.ranks", []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"})
	v.SetDefault("names.colors", []string{"spades", "hearts", "diamonds", "clubs"})

	v.SetDefault("dimensions.ppi", 300.0)
	v.SetDefault("dimensions.bleed", []float64{3, 3})
	v.SetDefault("dimensions.margins", []float64{2, 2})
	v.SetDefault("dimensions.spacing", []float64{1, 1})

	v.SetDefault("options.generate_images", true)
	v.SetDefault("options.generate_pdf", true)
	v.SetDefault("options.pdf_format", "default")
	v.SetDefault("options.image_format", ".png")
	v.SetDefault("options.verify_margins", false)
	v.SetDefault("options.workers", 1)

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// LoadConfig reads path, or config.{json,yaml,toml} from . and ./config when
// path is empty. A missing default file is not an error.
func LoadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return v, nil
}

// ParseConfig decodes and validates the settings.
func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	c.Options.ImageFormat = normalizeExt(c.Options.ImageFormat)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load is LoadConfig followed by ParseConfig.
func Load(path string) (*Config, error) {
	v, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(v)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func (c *Config) Validate() error {
	var errs []error

	if c.Dimensions.PPI <= 0 {
		errs = append(errs, fmt.Errorf("dimensions.ppi must be positive, got %g", c.Dimensions.PPI))
	}
	vectors := []struct {
		name string
		vec  []float64
	}{
		{"dimensions.bleed", c.Dimensions.Bleed},
		{"dimensions.margins", c.Dimensions.Margins},
		{"dimensions.spacing", c.Dimensions.Spacing},
	}
	for _, v := range vectors {
		if _, err := units.VecFromSlice(v.vec); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", v.name, err))
		}
	}
	if len(c.Names.Ranks) == 0 {
		errs = append(errs, errors.New("names.ranks is empty"))
	}
	if len(c.Names.Colors) == 0 {
		errs = append(errs, errors.New("names.colors is empty"))
	}
	if c.Options.ImageFormat == "" {
		errs = append(errs, errors.New("options.image_format is empty"))
	}
	if c.Options.Workers < 1 {
		errs = append(errs, fmt.Errorf("options.workers must be at least 1, got %d", c.Options.Workers))
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode must be debug, release or test, got %q", c.Server.Mode))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// The Vec accessors assume a validated config.
func (d DimensionsConfig) BleedVec() units.Vec   { return mustVec(d.Bleed) }
func (d DimensionsConfig) MarginsVec() units.Vec { return mustVec(d.Margins) }
func (d DimensionsConfig) SpacingVec() units.Vec { return mustVec(d.Spacing) }

func mustVec(s []float64) units.Vec {
	v, _ := units.VecFromSlice(s)
	return v
}

// ImagesDir is where finished card images are written.
func (c *Config) ImagesDir() string {
	return filepath.Join(c.Folders.Outputs, c.Folders.Images)
}

func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}
