package animatronic

import "nightshift/pkg/game/door"

// RabbitProfile walks the west side to the left door. Its graph forks at
// the Dining Area and the West Hall.
func RabbitProfile() *Profile {
	return &Profile{
		ID:       Rabbit,
		Name:     "Rabbit",
		Door:     door.Left,
		DoorRoom: LeftDoor,
		Edges: map[Room][]Room{
			ShowStage:      {DiningArea},
			DiningArea:     {Backstage, WestHall},
			Backstage:      {WestHall},
			WestHall:       {SupplyCloset, WestHallCorner},
			SupplyCloset:   {WestHallCorner},
			WestHallCorner: {LeftDoor},
		},
		Backoff: []Room{DiningArea, Backstage, WestHall},

		MoveTwice:   Curve{Low: 0, High: 0.3},
		IntervalMin: Curve{Low: 12, High: 3},
		IntervalMax: Curve{Low: 24, High: 8},
		DwellMin:    Curve{Low: 6, High: 2},
		DwellMax:    Curve{Low: 18, High: 7},

		SneakInDelay: 8,
		SpottedGrace: 1.5,
		AttackMin:    2,
		AttackMax:    5,
	}
}

// DuckProfile walks the east side to the right door along a single path,
// but may randomly fall back from the Kitchen and the East Hall.
func DuckProfile() *Profile {
	return &Profile{
		ID:       Duck,
		Name:     "Duck",
		Door:     door.Right,
		DoorRoom: RightDoor,
		Edges: map[Room][]Room{
			ShowStage:      {DiningArea},
			DiningArea:     {Kitchen},
			Restrooms:      {Kitchen},
			Kitchen:        {EastHall},
			EastHall:       {EastHallCorner},
			EastHallCorner: {RightDoor},
		},
		Retreats: map[Room]Retreat{
			Kitchen: {
				Chance: Curve{Low: 0.35, High: 0.1},
				Rooms:  []RetreatRoom{{DiningArea, 1}, {Restrooms, 2}},
			},
			EastHall: {
				Chance: Curve{Low: 0.3, High: 0.05},
				Rooms:  []RetreatRoom{{Restrooms, 2}, {Kitchen, 1}, {DiningArea, 1}},
			},
		},
		Backoff: []Room{Restrooms, Kitchen, EastHall},

		MoveTwice:   Curve{Low: 0, High: 0.25},
		IntervalMin: Curve{Low: 14, High: 4},
		IntervalMax: Curve{Low: 26, High: 9},
		DwellMin:    Curve{Low: 5, High: 2},
		DwellMax:    Curve{Low: 16, High: 6},

		SneakInDelay: 7,
		SpottedGrace: 1.5,
		AttackMin:    2,
		AttackMax:    4.5,
	}
}

// BearProfile is slow and never double-hops, but takes the long way round
// to the right door and attacks quickly once inside.
func BearProfile() *Profile {
	return &Profile{
		ID:       Bear,
		Name:     "Bear",
		Door:     door.Right,
		DoorRoom: RightDoor,
		Edges: map[Room][]Room{
			ShowStage:      {DiningArea},
			DiningArea:     {Restrooms},
			Restrooms:      {Kitchen},
			Kitchen:        {EastHall},
			EastHall:       {EastHallCorner},
			EastHallCorner: {RightDoor},
		},
		Backoff: []Room{Kitchen, EastHall},

		MoveTwice:   Curve{},
		IntervalMin: Curve{Low: 30, High: 10},
		IntervalMax: Curve{Low: 45, High: 18},
		DwellMin:    Curve{Low: 8, High: 3},
		DwellMax:    Curve{Low: 20, High: 9},

		SneakInDelay: 10,
		SpottedGrace: 2,
		AttackMin:    1.5,
		AttackMax:    3,
	}
}

// Profiles returns a fresh profile for every animatronic, in tick order.
func Profiles() []*Profile {
	return []*Profile{RabbitProfile(), DuckProfile(), BearProfile()}
}

// NewRoster builds every animatronic for a session, in tick order.
func NewRoster(office Host) []Animatronic {
	profiles := Profiles()
	out := make([]Animatronic, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, NewAgent(p, office))
	}
	return out
}
