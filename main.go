package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	charmlog "github.com/charmbracelet/log"

	engineinput "nightshift/pkg/engine/input"
	"nightshift/pkg/engine/terminal"
	"nightshift/pkg/game/config"
	"nightshift/pkg/game/events"
	"nightshift/pkg/game/gameplay"
	"nightshift/pkg/game/hud"
	"nightshift/pkg/game/journal"
	"nightshift/pkg/game/renderer"
	ebitenrenderer "nightshift/pkg/game/renderer/ebiten"
	"nightshift/pkg/game/renderer/tui"
	"nightshift/pkg/game/session"
)

// keyRepeatWindow swallows terminal auto-repeat so a held key toggles once.
const keyRepeatWindow = 150 * time.Millisecond

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logOut, closeLog, err := journalOutput(cfg)
	if err != nil {
		log.Fatalf("journal: %v", err)
	}
	defer closeLog()
	logger, err := journal.NewLogger(logOut, cfg.LogLevel)
	if err != nil {
		log.Fatalf("journal: %v", err)
	}

	cat, err := hud.LoadCatalog(cfg.Locale)
	if err != nil {
		logger.Fatal("catalog", "err", err)
	}
	nights, err := cfg.Nights()
	if err != nil {
		logger.Fatal("night table", "err", err)
	}

	g, err := gameplay.BuildGame(gameplay.Options{
		Session: session.Options{
			Seed:       cfg.Seed,
			HourLength: cfg.HourSeconds,
			Nights:     nights,
		},
		Night:     cfg.Night,
		Catalog:   cat,
		Listeners: []events.Listener{journal.New(logger).Listen},
	})
	if err != nil {
		logger.Fatal("start", "err", err)
	}
	logger.Debug("session ready", "seed", g.Session.Random().Seed(), "night", cfg.Night, "frontend", cfg.Frontend)

	switch cfg.Frontend {
	case config.FrontendHeadless:
		runHeadless(g, cfg, logger)
	case config.FrontendEbiten:
		if err := ebitenrenderer.Run(g, cfg.TickRate); err != nil {
			logger.Fatal("ebiten", "err", err)
		}
	default:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		runTUI(ctx, g, cfg)
	}
	logSummary(logger, g)
}

// journalOutput picks where the journal goes. The terminal frontend owns
// the screen, so without a log file it logs nowhere.
func journalOutput(cfg config.Config) (io.Writer, func(), error) {
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { f.Close() }, nil
	}
	if cfg.Frontend == config.FrontendTUI {
		return io.Discard, func() {}, nil
	}
	return os.Stderr, func() {}, nil
}

// runHeadless plays the configured night without input at a fixed tick.
func runHeadless(g *gameplay.Game, cfg config.Config, logger *charmlog.Logger) {
	dt := cfg.Tick().Seconds()
	ticks := int(cfg.HeadlessSeconds / dt)
	for i := 0; i < ticks && g.Session.State() == session.Playing; i++ {
		g.Tick(dt)
	}
	logger.Info("headless run finished",
		"state", g.Session.State(),
		"elapsed", fmt.Sprintf("%.1f", g.Session.Elapsed()),
		"power", fmt.Sprintf("%.1f", g.Session.PowerRemaining()))
}

// runTUI drives the terminal frontend: keys arrive on their own goroutine,
// the session ticks on a fixed ticker and a frame is drawn after each tick.
func runTUI(ctx context.Context, g *gameplay.Game, cfg config.Config) {
	renderer.SetRenderer(tui.New(os.Stdout, terminal.IsTerminal()))
	if err := renderer.Init(); err != nil {
		log.Fatalf("terminal: %v", err)
	}
	defer renderer.Close()

	keys := engineinput.Listen(ctx, os.Stdin)
	debounce := engineinput.NewDebouncer(keyRepeatWindow)
	ticker := time.NewTicker(cfg.Tick())
	defer ticker.Stop()
	dt := cfg.Tick().Seconds()

	renderer.RenderFrame(g)
	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-keys:
			if !ok {
				return
			}
			ev, keep := debounce.Filter(raw)
			if !keep {
				continue
			}
			g.ProcessIntent(engineinput.MapToIntent(ev))
			if g.Quit() {
				return
			}
		case <-ticker.C:
			g.Tick(dt)
			renderer.RenderFrame(g)
		}
	}
}

func logSummary(logger *charmlog.Logger, g *gameplay.Game) {
	st := g.Stats.Snapshot()
	logger.Info("summary",
		"nights", st.Nights,
		"survived", st.Survived,
		"actions", st.ActionTotal,
		"cooldown", st.ActionCooldown,
		"broken", st.ActionBroken,
		"attacks", st.Attacks)
}
