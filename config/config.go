package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spacemeshos/smutil"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const (
	// MaxBits keeps every bit index addressable by a 32-bit position bitmap.
	MaxBits = 1 << 32
	MinBits = 1
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultHomeDirName    = ".bitvec"
	DefaultLogLevel       = "info"
	DefaultBits           = 64
)

var (
	DefaultHomeDir    = filepath.Join(smutil.GetUserHomeDirectory(), DefaultHomeDirName)
	DefaultConfigFile = filepath.Join(DefaultHomeDir, DefaultConfigFileName)
)

type Config struct {
	HomeDir    string `mapstructure:"homedir"`
	ConfigFile string `mapstructure:"config"`
	LogLevel   string `mapstructure:"log-level"`

	// Seed of the random source used by weighted choice. Zero selects a random seed.
	Seed int64 `mapstructure:"seed"`

	// Bits is the vector length used when a command is not given one.
	Bits int `mapstructure:"bits"`
}

func DefaultConfig() *Config {
	return &Config{
		HomeDir:    DefaultHomeDir,
		ConfigFile: DefaultConfigFile,
		LogLevel:   DefaultLogLevel,
		Bits:       DefaultBits,
	}
}

func (cfg *Config) Validate() error {
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid `LogLevel`; expected: one of debug, info, warn, error, given: %q", cfg.LogLevel)
	}

	if cfg.Bits < MinBits {
		return fmt.Errorf("invalid `Bits`; expected: >= %d, given: %d", MinBits, cfg.Bits)
	}

	if int64(cfg.Bits) > MaxBits {
		return fmt.Errorf("invalid `Bits`; expected: <= %d, given: %d", MaxBits, cfg.Bits)
	}

	return nil
}

// Level returns the parsed log level, assuming the config validity.
func (cfg *Config) Level() zapcore.Level {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// Load reads the config file named by the "config" key of vip and returns the
// defaults overridden by the file and by any flags bound to vip. When "homedir"
// is not the default, the default config file is looked up in it instead. A
// missing default config file is not an error.
func Load(vip *viper.Viper) (*Config, error) {
	homeDir := vip.GetString("homedir")
	if homeDir == "" {
		homeDir = DefaultHomeDir
	}
	homeDir = smutil.GetCanonicalPath(homeDir)

	fileLocation := vip.GetString("config")
	implicit := fileLocation == "" || fileLocation == DefaultConfigFile
	if implicit {
		fileLocation = filepath.Join(homeDir, DefaultConfigFileName)
	}
	fileLocation = smutil.GetCanonicalPath(fileLocation)

	vip.SetConfigFile(fileLocation)
	if err := vip.ReadInConfig(); err != nil {
		if !implicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := vip.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.HomeDir = homeDir
	cfg.ConfigFile = fileLocation

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Layout describes how a vector of a given bit length is packed.
type Layout struct {
	NumBytes int
	NumWords int

	// TailBits is the number of addressable bits in the last byte.
	TailBits int

	// PaddingBits is the number of unaddressable bits in the last byte.
	PaddingBits int
}

func DeriveLayout(bits int) Layout {
	tail := bits % 8
	if tail == 0 {
		tail = 8
	}
	return Layout{
		NumBytes:    (bits + 7) / 8,
		NumWords:    (bits + 63) / 64,
		TailBits:    tail,
		PaddingBits: 8 - tail,
	}
}
