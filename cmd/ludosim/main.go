package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mysteryludo/ludo-sim-go/internal/config"
	"github.com/mysteryludo/ludo-sim-go/internal/game"
	"github.com/mysteryludo/ludo-sim-go/internal/game/rules"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	seed       = flag.Int64("seed", 0, "random seed (overrides match.seed when non-zero)")
	quiet      = flag.Bool("quiet", false, "print only finishing colors and the final standings")
	checksums  = flag.Bool("checksums", false, "print the replay checksum of every round")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Match.Seed = *seed
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting ludo simulator",
		zap.String("version", version),
		zap.String("config", *configPath),
		zap.Int("matches", cfg.Match.Count),
	)

	failed := false
	for i := 0; i < cfg.Match.Count; i++ {
		matchSeed := cfg.Match.Seed
		if matchSeed != 0 {
			matchSeed += int64(i)
		}
		if err := playMatch(logger, cfg.Match, matchSeed); err != nil {
			logger.Error("match failed", zap.Int("match", i+1), zap.Error(err))
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func playMatch(logger *zap.Logger, cfg config.MatchConfig, seed int64) error {
	bus := rules.NewEventBus()
	renderer := newRenderer(os.Stdout)
	if *quiet {
		bus.SubscribeTyped(rules.EventColorFinished, renderer.Render)
		bus.SubscribeTyped(rules.EventMatchAborted, renderer.Render)
	} else {
		bus.Subscribe(renderer.Render)
	}

	match, err := game.NewMatch(logger,
		game.WithSeed(seed),
		game.WithMaxRounds(cfg.MaxRounds),
		game.WithReplay(cfg.RecordReplay),
		game.WithEventBus(bus),
	)
	if err != nil {
		return fmt.Errorf("create match: %w", err)
	}

	result, err := match.Run()
	if err != nil {
		return err
	}
	renderer.Summary(result)

	if cfg.RecordReplay {
		sums, err := verifyReplay(match.Replay())
		if err != nil {
			return fmt.Errorf("verify replay of match %s: %w", result.MatchID, err)
		}
		logger.Debug("replay verified", zap.String("match_id", result.MatchID), zap.Int("snapshots", len(sums)))
		if *checksums {
			renderer.Checksums(sums)
		}
	}
	return nil
}

// verifyReplay round-trips every recorded snapshot through gob and returns
// the per-round checksums.
func verifyReplay(replay *game.Replay) ([]string, error) {
	replay.Start()
	for snap := replay.Next(); snap != nil; snap = replay.Next() {
		if err := game.ValidateSerializationRoundtrip(snap); err != nil {
			return nil, err
		}
	}
	return replay.Checksums()
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	// Rendered events go to stdout; keep logs apart.
	zapCfg.OutputPaths = []string{"stderr"}

	return zapCfg.Build()
}
