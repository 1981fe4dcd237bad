package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/l1jgo/skirmish/internal/config"
	"github.com/l1jgo/skirmish/internal/data"
	"github.com/l1jgo/skirmish/internal/engine/headless"
	"github.com/l1jgo/skirmish/internal/input"
	"github.com/l1jgo/skirmish/internal/scripting"
	"github.com/l1jgo/skirmish/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              skirmish  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      headless arena · Go gameplay core    \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mSession:\033[0m %s\n\n", name)
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

// ── Main loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/skirmish.toml"
	if p := os.Getenv("SKIRMISH_CONFIG"); p != "" {
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

	printBanner(cfg.Session.Name)

	// 3. Load data tables
	printSection("Data")
	models, err := data.LoadModelTable(cfg.Data.Models)
	if err != nil {
		return fmt.Errorf("load models: %w", err)
	}
	printStat("Models", models.Count())
	profiles, err := data.LoadAIProfileTable(cfg.Data.AIProfiles)
	if err != nil {
		return fmt.Errorf("load ai profiles: %w", err)
	}
	printStat("AI profiles", profiles.Count())
	spawns, err := data.LoadSpawnList(cfg.Data.SpawnList)
	if err != nil {
		return fmt.Errorf("load spawn list: %w", err)
	}
	printStat("Spawns", len(spawns))

	// 4. Scripts
	printSection("Scripts")
	scripts, err := scripting.NewEngine(cfg.Data.Scripts, log)
	if err != nil {
		return fmt.Errorf("load scripts: %w", err)
	}
	defer scripts.Close()
	for _, hook := range []string{"choose_ability", "on_strike", "on_projectile_hit"} {
		if scripts.Has(hook) {
			printOK(hook)
		}
	}

	// 5. Session on the headless engine
	printSection("Arena")
	scene := headless.NewScene(log)
	sess, err := session.New(cfg, session.Deps{
		Scene:    scene,
		Ground:   headless.Plane{},
		Loader:   &headless.Loader{Models: models, Scene: scene},
		Models:   models,
		Profiles: profiles,
		Scripts:  scripts,
	}, log)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	for _, sp := range spawns {
		if err := sess.Spawn(sp); err != nil {
			return fmt.Errorf("spawn %s: %w", sp.Model, err)
		}
	}
	printStat("Characters", sess.State.CharacterCount())

	// 6. Host input from stdin
	quitCh := make(chan struct{})
	go readInput(os.Stdin, sess.Input, quitCh, log)

	// 7. Start game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Session.TickRate)
	defer ticker.Stop()

	printSection("Ready")
	printReady(fmt.Sprintf("Session %s", sess.ID))
	printReady(fmt.Sprintf("Game loop started (tick: %s)", cfg.Session.TickRate))
	printReady("Input: down <Key> | up <Key> | click | quit")
	fmt.Println()

	statusEvery := uint64(5 * time.Second / cfg.Session.TickRate)
	if statusEvery == 0 {
		statusEvery = 1
	}

	for {
		select {
		case <-ticker.C:
			sess.Step(cfg.Session.TickRate)
			if sess.Ticks()%statusEvery == 0 {
				log.Info("status",
					zap.Uint64("tick", sess.Ticks()),
					zap.Duration("elapsed", sess.Elapsed()),
					zap.Int("characters", sess.State.CharacterCount()),
					zap.Int("projectiles", sess.State.ProjectileCount()),
					zap.Uint64("frames", scene.Frames()))
			}
		case <-quitCh:
			log.Info("input closed, stopping")
			return nil
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			return nil
		}
	}
}

// readInput feeds host protocol lines into q until quit or EOF.
func readInput(r io.Reader, q *input.Queue, quitCh chan<- struct{}, log *zap.Logger) {
	defer close(quitCh)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ev, err := input.ParseLine(line)
		if errors.Is(err, input.ErrQuit) {
			return
		}
		if err != nil {
			log.Warn("bad input line", zap.String("line", line), zap.Error(err))
			continue
		}
		if !q.Push(ev) {
			log.Warn("input queue full, event dropped", zap.String("line", line))
		}
	}
	if err := sc.Err(); err != nil {
		log.Warn("input read failed", zap.Error(err))
	}
}

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

	return zapCfg.Build()
}
