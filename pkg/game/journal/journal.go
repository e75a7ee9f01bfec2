// Package journal writes session notifications to a structured log and
// counts what the player did.
package journal

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"nightshift/pkg/game/events"
)

// NewLogger creates a logger writing to w at the named level
// (debug, info, warn, error).
func NewLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "nightshift",
		ReportTimestamp: true,
	}), nil
}

// Journal logs every notification it hears.
type Journal struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Journal {
	return &Journal{logger: logger}
}

// Listen is an events.Listener.
func (j *Journal) Listen(e events.Event) {
	l := j.logger.With("night", e.Night, "t", fmt.Sprintf("%.2f", e.Elapsed))
	switch e.Kind {
	case events.SessionStarted:
		l.Info("night started")
	case events.DoorChanged:
		l.Info("door changed", "side", e.Door, "closed", e.Closed)
	case events.DoorFlashChanged:
		l.Info("light changed", "side", e.Door, "lit", e.Lit)
	case events.DoorBroken:
		l.Warn("door broken", "side", e.Door)
	case events.AnimatronicMoved:
		l.Debug("moved", "agent", e.AgentName, "from", e.FromName, "to", e.ToName)
	case events.AnimatronicSpotted:
		l.Info("spotted", "agent", e.AgentName, "side", e.Door)
	case events.AnimatronicSneakedIn:
		l.Warn("sneaked in", "agent", e.AgentName, "side", e.Door)
	case events.AnimatronicAttack:
		if e.Agent == events.NoAgent {
			l.Warn("attacked in the dark")
			return
		}
		l.Warn("attacked", "agent", e.AgentName)
	case events.PowerOut:
		l.Warn("power out")
	case events.NightCompleted:
		l.Info("night completed")
	default:
		l.Error("unknown notification", "kind", e.Kind)
	}
}
