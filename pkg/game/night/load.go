package night

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"nightshift/pkg/game/animatronic"
)

type fileAgent struct {
	AI   *int   `yaml:"ai"`
	Room string `yaml:"room"`
}

type fileNight struct {
	Night              int                  `yaml:"night"`
	PassiveConsumption *float64             `yaml:"passive_consumption"`
	StartingPower      *float64             `yaml:"starting_power"`
	Agents             map[string]fileAgent `yaml:"agents"`
}

type fileTable struct {
	Nights []fileNight `yaml:"nights"`
}

// LoadTable reads a YAML night table. Entries override the built-in table
// field by field; nights and fields not mentioned keep their defaults. AI
// levels are clamped to 0..20.
//
//	nights:
//	  - night: 3
//	    passive_consumption: 0.07
//	    agents:
//	      rabbit: {ai: 6, room: dining_area}
func LoadTable(r io.Reader) (*Table, error) {
	var raw fileTable
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode night table: %w", err)
	}

	t := Default()
	for _, fn := range raw.Nights {
		if fn.Night < First || fn.Night > Last {
			return nil, fmt.Errorf("night table: %w (got %d)", ErrUnknownNight, fn.Night)
		}
		info := &t[fn.Night-1]
		if fn.PassiveConsumption != nil {
			if *fn.PassiveConsumption < 0 {
				return nil, fmt.Errorf("night %d: negative passive_consumption", fn.Night)
			}
			info.PassiveConsumption = *fn.PassiveConsumption
		}
		if fn.StartingPower != nil {
			if *fn.StartingPower <= 0 {
				return nil, fmt.Errorf("night %d: starting_power must be > 0", fn.Night)
			}
			info.StartingPower = *fn.StartingPower
		}
		for name, fa := range fn.Agents {
			id, err := animatronic.ParseID(name)
			if err != nil {
				return nil, fmt.Errorf("night %d: %w", fn.Night, err)
			}
			cfg := info.Agent(id)
			if fa.AI != nil {
				cfg.AILevel = clampAI(*fa.AI)
			}
			if fa.Room != "" {
				room, err := animatronic.ParseRoom(fa.Room)
				if err != nil {
					return nil, fmt.Errorf("night %d: %s: %w", fn.Night, name, err)
				}
				cfg.Room = room
			}
			info.Agents[id] = cfg
		}
	}
	return t, nil
}

func clampAI(level int) int {
	if level < animatronic.MinAILevel {
		return animatronic.MinAILevel
	}
	if level > animatronic.MaxAILevel {
		return animatronic.MaxAILevel
	}
	return level
}
