package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. SITE_OUTPUTDIR.
const EnvPrefix = "SITE"

type Config struct {
	SiteTitle   string         `mapstructure:"siteTitle"`
	BaseURL     string         `mapstructure:"baseURL"`
	ContentDir  string         `mapstructure:"contentDir"`
	LayoutsDir  string         `mapstructure:"layoutsDir"`
	StaticDir   string         `mapstructure:"staticDir"`
	OutputDir   string         `mapstructure:"outputDir"`
	AssetPrefix string         `mapstructure:"assetPrefix"`
	Strict      bool           `mapstructure:"strict"`
	LogLevel    string         `mapstructure:"logLevel"`
	LogFormat   string         `mapstructure:"logFormat"`
	Params      map[string]any `mapstructure:"params"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("siteTitle", "ochsenbein.red")
	v.SetDefault("baseURL", "")
	v.SetDefault("contentDir", "content")
	v.SetDefault("layoutsDir", "layouts")
	v.SetDefault("staticDir", "static")
	v.SetDefault("outputDir", "public")
	v.SetDefault("assetPrefix", "/_assets")
	v.SetDefault("strict", false)
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFormat", "text")
}

// Load reads configuration into a Config. If cfgFile is empty, config.yaml
// in the working directory is used when present. The returned string names
// the config file used, or is empty when running on defaults and env only.
func Load(v *viper.Viper, cfgFile string) (Config, string, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	used := ""
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return Config{}, "", fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	return cfg, used, nil
}

// Validate checks that the directories the build depends on are set and that
// the output directory, which is wiped on every build, does not overlap any
// source directory.
func (c Config) Validate() error {
	if c.ContentDir == "" || c.LayoutsDir == "" || c.OutputDir == "" {
		return fmt.Errorf("contentDir, layoutsDir and outputDir must be set")
	}
	out, err := filepath.Abs(c.OutputDir)
	if err != nil {
		return fmt.Errorf("invalid outputDir %q: %w", c.OutputDir, err)
	}
	for _, dir := range []string{c.ContentDir, c.LayoutsDir, c.StaticDir} {
		if dir == "" {
			continue
		}
		src, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("invalid source directory %q: %w", dir, err)
		}
		if within(out, src) || within(src, out) {
			return fmt.Errorf("outputDir %q must not overlap source directory %q", c.OutputDir, dir)
		}
	}
	return nil
}

// within reports whether path is dir or lies below it. Both must be absolute.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
