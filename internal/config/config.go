package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Paths    PathsConfig  `mapstructure:"paths"`
	Text     TextConfig   `mapstructure:"text"`
	Server   ServerConfig `mapstructure:"server"`
	LogLevel string       `mapstructure:"log_level"`
}

type PathsConfig struct {
	VocabPath   string `mapstructure:"vocab_path"`
	VocabFormat string `mapstructure:"vocab_format"`
}

type TextConfig struct {
	CharLimit   int `mapstructure:"char_limit"`
	SplitLength int `mapstructure:"split_length"`
}

type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr"`
	MaxTextBytes    int    `mapstructure:"max_text_bytes"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			VocabPath:   "models/vocab.json",
			VocabFormat: FormatAuto,
		},
		Text: TextConfig{
			CharLimit:   2000,
			SplitLength: 250,
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			MaxTextBytes:    16384,
			ShutdownTimeout: 10,
		},
		LogLevel: "info",
	}
}

// flagKeys maps each flag to the config key it overrides.
var flagKeys = map[string]string{
	"vocab":                   "paths.vocab_path",
	"vocab-format":            "paths.vocab_format",
	"char-limit":              "text.char_limit",
	"split-length":            "text.split_length",
	"server-listen-addr":      "server.listen_addr",
	"server-max-text-bytes":   "server.max_text_bytes",
	"server-shutdown-timeout": "server.shutdown_timeout",
	"log-level":               "log_level",
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("vocab", defaults.Paths.VocabPath, "Path to vocabulary (tokenizer.json, flat JSON map or SentencePiece .model)")
	fs.String("vocab-format", defaults.Paths.VocabFormat, "Vocabulary format: auto|json|sentencepiece")
	fs.Int("char-limit", defaults.Text.CharLimit, "Input length above which encode logs a warning")
	fs.Int("split-length", defaults.Text.SplitLength, "Maximum characters per chunk for encode --split")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("server-max-text-bytes", defaults.Server.MaxTextBytes, "Maximum request body size in bytes")
	fs.Int("server-shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown timeout in seconds")
	fs.String("log-level", defaults.LogLevel, "Log level: debug|info|warn|error")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("LYRICTOK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	if err := v.BindEnv("paths.vocab_path", "LYRICTOK_PATHS_VOCAB_PATH", "LYRICTOK_VOCAB"); err != nil {
		return Config{}, fmt.Errorf("bind vocab env vars: %w", err)
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("lyrictok")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	format, err := NormalizeVocabFormat(cfg.Paths.VocabFormat)
	if err != nil {
		return Config{}, err
	}
	cfg.Paths.VocabFormat = format

	return cfg, nil
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Paths.VocabPath) == "" {
		errs = append(errs, errors.New("paths.vocab_path must not be empty"))
	}
	if c.Text.CharLimit <= 0 {
		errs = append(errs, fmt.Errorf("text.char_limit must be positive, got %d", c.Text.CharLimit))
	}
	if c.Text.SplitLength <= 0 {
		errs = append(errs, fmt.Errorf("text.split_length must be positive, got %d", c.Text.SplitLength))
	}
	if c.Server.MaxTextBytes <= 0 {
		errs = append(errs, fmt.Errorf("server.max_text_bytes must be positive, got %d", c.Server.MaxTextBytes))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.shutdown_timeout must be positive, got %d", c.Server.ShutdownTimeout))
	}
	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("paths.vocab_path", c.Paths.VocabPath)
	v.SetDefault("paths.vocab_format", c.Paths.VocabFormat)
	v.SetDefault("text.char_limit", c.Text.CharLimit)
	v.SetDefault("text.split_length", c.Text.SplitLength)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.max_text_bytes", c.Server.MaxTextBytes)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
	v.SetDefault("log_level", c.LogLevel)
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}
	return nil
}
