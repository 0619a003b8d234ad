package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hasenbanck/korangar/internal/client"
	"github.com/hasenbanck/korangar/internal/config"
	"github.com/hasenbanck/korangar/internal/data"
	"github.com/hasenbanck/korangar/internal/gameplay"
	gonet "github.com/hasenbanck/korangar/internal/net"
	"github.com/hasenbanck/korangar/internal/offline"
	"github.com/hasenbanck/korangar/internal/persist"
	"github.com/hasenbanck/korangar/internal/scripting"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(backend string, version gameplay.PacketVersion) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             Korangar  headless            \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m        gameplay protocol test client      \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mbackend:\033[0m %s \033[90m(packet version %s)\033[0m\n\n", backend, version)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main client logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/client.toml"
	if p := os.Getenv("KORANGAR_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Client.Backend, cfg.Version())

	// 3. Build the backend
	var provider gameplay.Provider
	switch cfg.Client.Backend {
	case config.BackendOffline:
		p, cleanup, err := newOfflineProvider(cfg, log)
		if err != nil {
			return err
		}
		defer cleanup()
		provider = p
	default:
		p, err := newNetworkProvider(cfg, log)
		if err != nil {
			return err
		}
		provider = p
	}

	// 4. Start the autopilot and the game loop
	pilot := client.New(provider, client.Config{
		Version:       cfg.Version(),
		LoginAddress:  cfg.Login.Address,
		Username:      cfg.Login.Username,
		Password:      cfg.Login.Password,
		CharacterSlot: cfg.Client.CharacterSlot,
		CharacterName: cfg.Client.CharacterName,
	}, log)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Client.TickRate)
	defer ticker.Stop()

	printSection("Running")
	printReady(fmt.Sprintf("login server %s as %s", cfg.Login.Address, cfg.Login.Username))
	printReady(fmt.Sprintf("game loop started (tick: %s)", cfg.Client.TickRate))
	fmt.Println()

	pilot.Start()

	const tickRequestInterval = 200 // ticks between client tick requests
	tickCounter := 0
	announced := false

	for {
		select {
		case <-ticker.C:
			pilot.Tick()
			switch pilot.Stage() {
			case client.StageFailed:
				pilot.Stop()
				return pilot.Err()
			case client.StageInWorld:
				if !announced {
					announced = true
					printOK(fmt.Sprintf("in world on %s at %d,%d", pilot.MapName(), pilot.Position().X, pilot.Position().Y))
				}
				tickCounter++
				if tickCounter >= tickRequestInterval {
					tickCounter = 0
					if err := provider.RequestClientTick(); err != nil {
						log.Debug("client tick request failed", zap.Error(err))
					}
				}
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			pilot.Stop()
			log.Info("client stopped")
			return nil
		}
	}
}

func newNetworkProvider(cfg *config.Config, log *zap.Logger) (*gonet.Provider, error) {
	printSection("Network")
	dialer, err := gonet.NewDialer(cfg.Network.Transport, cfg.Network.DialTimeout)
	if err != nil {
		return nil, fmt.Errorf("dialer: %w", err)
	}
	p, err := gonet.NewProvider(dialer, gonet.Options{
		WriteTimeout:      cfg.Network.WriteTimeout,
		KeepAliveInterval: cfg.Network.KeepAliveInterval,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("packet handlers: %w", err)
	}
	printOK(fmt.Sprintf("transport %s", cfg.Network.Transport))
	printOK("packet handlers registered")
	fmt.Println()
	return p, nil
}

func newOfflineProvider(cfg *config.Config, log *zap.Logger) (*offline.Provider, func(), error) {
	printSection("Offline world")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := persist.Open(ctx, cfg.Offline.Database, log)
	if err != nil {
		return nil, nil, fmt.Errorf("database: %w", err)
	}
	printOK(fmt.Sprintf("database %s ready", cfg.Offline.Database))

	lib, err := data.Load(cfg.Offline.Library)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("library: %w", err)
	}
	printStat("items", lib.Items.Count())
	printStat("shops", lib.Shops.Count())
	printStat("maps", lib.Maps.Count())

	scripts, err := scripting.NewEngine(cfg.Offline.Scripts, log)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("scripts: %w", err)
	}
	printOK("dialog scripts loaded")
	fmt.Println()

	p := offline.New(lib, db, scripts, offline.Options{AutoCreateAccounts: cfg.Offline.AutoCreateAccounts}, log)
	cleanup := func() {
		scripts.Close()
		db.Close()
	}
	return p, cleanup, nil
}

// newLogger builds the console or JSON logger and tees it into a rotating
// file when logging.file is set.
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	log, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	if cfg.File == "" {
		return log, nil
	}

	lj := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(lj), level)

	return log.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, fileCore)
	})), nil
}
