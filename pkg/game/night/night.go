// Package night defines the per-night configuration: power drain, starting
// power and where each animatronic starts and how aggressive it is. Later
// nights only ever get harder; night 7 puts every animatronic at maximum.
package night

import (
	"errors"
	"fmt"

	"nightshift/pkg/game/animatronic"
)

// Night bounds
const (
	First = 1
	Last  = 7
)

// MaxPower is the starting power of every built-in night, in percent.
const MaxPower = 100.0

// HoursPerNight is the number of in-game hours from midnight to 6 AM.
const HoursPerNight = 6

// ErrUnknownNight is returned for nights outside First..Last.
var ErrUnknownNight = errors.New("night must be 1..7")

// Info is the configuration of one night.
type Info struct {
	Night int
	// PassiveConsumption is drained every second regardless of defenses,
	// in percent per second.
	PassiveConsumption float64
	StartingPower      float64
	Agents             map[animatronic.ID]animatronic.StartConfig
}

// Agent returns the start configuration for id. Animatronics missing from
// the table start inactive on the show stage.
func (i Info) Agent(id animatronic.ID) animatronic.StartConfig {
	if cfg, ok := i.Agents[id]; ok {
		return cfg
	}
	return animatronic.StartConfig{AILevel: 0, Room: animatronic.ShowStage}
}

// Table holds the configuration of nights First..Last.
type Table [Last]Info

// Lookup returns the configuration of night n.
func (t *Table) Lookup(n int) (Info, error) {
	if n < First || n > Last {
		return Info{}, fmt.Errorf("%w (got %d)", ErrUnknownNight, n)
	}
	return t[n-1], nil
}

func agents(rabbit, duck, bear int) map[animatronic.ID]animatronic.StartConfig {
	return map[animatronic.ID]animatronic.StartConfig{
		animatronic.Rabbit: {AILevel: rabbit, Room: animatronic.ShowStage},
		animatronic.Duck:   {AILevel: duck, Room: animatronic.ShowStage},
		animatronic.Bear:   {AILevel: bear, Room: animatronic.ShowStage},
	}
}

// Default returns the built-in night table.
func Default() *Table {
	return &Table{
		{Night: 1, PassiveConsumption: 0, StartingPower: MaxPower, Agents: agents(0, 0, 0)},
		{Night: 2, PassiveConsumption: 0.05, StartingPower: MaxPower, Agents: agents(3, 1, 0)},
		{Night: 3, PassiveConsumption: 0.0625, StartingPower: MaxPower, Agents: agents(5, 4, 1)},
		{Night: 4, PassiveConsumption: 0.075, StartingPower: MaxPower, Agents: agents(8, 7, 2)},
		{Night: 5, PassiveConsumption: 0.0875, StartingPower: MaxPower, Agents: agents(11, 10, 4)},
		{Night: 6, PassiveConsumption: 0.1, StartingPower: MaxPower, Agents: agents(15, 14, 7)},
		{Night: 7, PassiveConsumption: 0.1, StartingPower: MaxPower, Agents: agents(20, 20, 20)},
	}
}

// Hour returns the in-game hour (0 = 12 AM .. HoursPerNight = 6 AM) after
// elapsed seconds with hours of hourLength seconds.
func Hour(elapsed, hourLength float64) int {
	if hourLength <= 0 || elapsed <= 0 {
		return 0
	}
	h := int(elapsed / hourLength)
	if h > HoursPerNight {
		return HoursPerNight
	}
	return h
}

// ClockLabel formats an hour as shown on the office clock.
func ClockLabel(hour int) string {
	if hour <= 0 {
		return "12 AM"
	}
	return fmt.Sprintf("%d AM", hour)
}
