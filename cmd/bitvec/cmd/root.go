package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/bitvector/config"
)

var (
	// Version is the version of the binary.
	Version = "0.0.0"

	// Commit is the commit hash of the binary.
	Commit = ""
)

// app holds the state shared by all commands of a single invocation.
type app struct {
	vip    *viper.Viper
	cfg    *config.Config
	logger *zap.Logger
}

type appOption func(*app)

// withLogger makes the commands log to logger instead of building one from the config.
func withLogger(logger *zap.Logger) appOption {
	return func(a *app) {
		a.logger = logger
	}
}

func newRootCmd(opts ...appOption) *cobra.Command {
	a := &app{vip: viper.New()}
	for _, opt := range opts {
		opt(a)
	}

	rootCmd := &cobra.Command{
		Use:   "bitvec",
		Short: "Inspect and manipulate packed bit vectors",
		Long: `bitvec builds fixed-length bit vectors from 64-bit words and reads or writes
bit ranges in them. Vectors are printed as the hex dump of their packed bytes,
least-significant bit first.`,
		Version:           fmt.Sprintf("%s (%s)", Version, Commit),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	defaults := config.DefaultConfig()
	flags := rootCmd.PersistentFlags()
	flags.String("config", defaults.ConfigFile, "path to configuration file")
	flags.String("homedir", defaults.HomeDir, "the directory that contains the configuration file")
	flags.String("log-level", defaults.LogLevel, "log level (debug, info, warn, error)")
	flags.Int64("seed", defaults.Seed, "seed of the random source used by choice (0 for a random seed)")
	flags.IntP("bits", "n", defaults.Bits, "vector length in bits")
	flags.Bool("print-config", false, "print the used config")

	if err := a.vip.BindPFlags(flags); err != nil {
		panic(err)
	}
	a.vip.SetEnvPrefix("BITVEC")
	a.vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.vip.AutomaticEnv()

	rootCmd.AddCommand(
		newEncodeCmd(a),
		newDecodeCmd(a),
		newBitCmd(a),
		newFieldCmd(a),
		newSetCmd(a),
		newInspectCmd(a),
		newChoiceCmd(a),
		newPow2Cmd(a),
	)
	return rootCmd
}

// Execute runs the root command and exits with a non-zero code on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.vip)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.logger == nil {
		a.logger, err = buildLogger(cfg.Level())
		if err != nil {
			return fmt.Errorf("failed to initialize zap logger: %w", err)
		}
	}

	if a.vip.GetBool("print-config") {
		spew.Fdump(cmd.OutOrStdout(), cfg)
	}

	a.logger.Debug("config loaded",
		zap.String("file", cfg.ConfigFile),
		zap.Int("bits", cfg.Bits),
		zap.Int64("seed", cfg.Seed),
	)
	return nil
}

func (a *app) rand() *rand.Rand {
	seed := a.cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	return rand.New(rand.NewSource(seed))
}

func buildLogger(level zapcore.Level) (*zap.Logger, error) {
	zapCfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(level),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			MessageKey:     "M",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		// Results go to stdout.
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return zapCfg.Build()
}

// parseWords parses construction words given in any base accepted by strconv (0x, 0b, 0o prefixes).
func parseWords(args []string) ([]uint64, error) {
	words := make([]uint64, 0, len(args))
	for _, arg := range args {
		w, err := strconv.ParseUint(arg, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid word %q: %w", arg, err)
		}
		words = append(words, w)
	}
	return words, nil
}
