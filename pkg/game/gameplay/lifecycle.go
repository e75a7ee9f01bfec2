// Package gameplay connects player intents to a running session: door and
// light commands, restarts and moving between nights.
package gameplay

import (
	"fmt"

	"nightshift/pkg/game/door"
	"nightshift/pkg/game/events"
	"nightshift/pkg/game/hud"
	"nightshift/pkg/game/journal"
	"nightshift/pkg/game/night"
	"nightshift/pkg/game/session"
)

// Game is one player's run through the nights.
type Game struct {
	Session *session.Session
	Log     *hud.Log
	Stats   *journal.Stats

	// HoldToFlash makes a light stay on only while its key is held. Frontends
	// without key-release events leave it off and lights toggle instead.
	HoldToFlash bool

	night     int
	quit      bool
	releasing [len(door.Sides)]bool
}

// Options configures a new Game.
type Options struct {
	Session     session.Options
	Night       int
	Catalog     *hud.Catalog
	HoldToFlash bool
	// Listeners are subscribed before the first night starts.
	Listeners []events.Listener
}

// BuildGame creates the session, subscribes the message log and statistics
// to it, and starts the first night.
func BuildGame(opts Options) (*Game, error) {
	s, err := session.New(opts.Session)
	if err != nil {
		return nil, fmt.Errorf("build session: %w", err)
	}
	g := &Game{
		Session:     s,
		Log:         hud.NewLog(opts.Catalog),
		Stats:       journal.NewStats(),
		HoldToFlash: opts.HoldToFlash,
	}
	s.Subscribe(g.Log.Listen)
	s.Subscribe(g.Stats.Listen)
	for _, fn := range opts.Listeners {
		s.Subscribe(fn)
	}
	if err := g.StartNight(opts.Night); err != nil {
		return nil, err
	}
	return g, nil
}

// StartNight starts (or restarts) night n.
func (g *Game) StartNight(n int) error {
	if err := g.Session.Start(n); err != nil {
		return err
	}
	g.night = n
	g.releasing = [len(door.Sides)]bool{}
	return nil
}

// Restart replays the current night.
func (g *Game) Restart() error {
	return g.StartNight(g.night)
}

// NextNight moves on after a win, or stays on the last night.
func (g *Game) NextNight() error {
	if g.night >= night.Last {
		return g.Restart()
	}
	return g.StartNight(g.night + 1)
}

// PrevNight goes back one night, stopping at the first.
func (g *Game) PrevNight() error {
	if g.night <= night.First {
		return g.Restart()
	}
	return g.StartNight(g.night - 1)
}

// Night is the night being played.
func (g *Game) Night() int { return g.night }

// Quit reports whether the player asked to leave.
func (g *Game) Quit() bool { return g.quit }

// Over reports whether the current night has ended either way.
func (g *Game) Over() bool {
	switch g.Session.State() {
	case session.Victory, session.GameOver, session.GameOverSpecial:
		return true
	}
	return false
}

// Tick advances the session by one fixed step.
func (g *Game) Tick(delta float64) {
	g.Session.Update(delta)
	g.settleReleases()
}
