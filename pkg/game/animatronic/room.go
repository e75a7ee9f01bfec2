package animatronic

import (
	"fmt"
	"strings"

	"nightshift/pkg/game/door"
)

// Room is a location on the pizzeria map. Each animatronic walks its own
// directed subset of these rooms.
type Room int

// Rooms
const (
	ShowStage Room = iota
	DiningArea
	Backstage
	WestHall
	SupplyCloset
	WestHallCorner
	LeftDoor
	Restrooms
	Kitchen
	EastHall
	EastHallCorner
	RightDoor
	Office
	roomCount
)

var roomNames = [roomCount]string{
	ShowStage:      "Show Stage",
	DiningArea:     "Dining Area",
	Backstage:      "Backstage",
	WestHall:       "West Hall",
	SupplyCloset:   "Supply Closet",
	WestHallCorner: "West Hall Corner",
	LeftDoor:       "Left Door",
	Restrooms:      "Restrooms",
	Kitchen:        "Kitchen",
	EastHall:       "East Hall",
	EastHallCorner: "East Hall Corner",
	RightDoor:      "Right Door",
	Office:         "Office",
}

func (r Room) String() string {
	if r < 0 || r >= roomCount {
		panic(fmt.Sprintf("not implemented: room %d", int(r)))
	}
	return roomNames[r]
}

// Key returns the room's configuration key, e.g. "west_hall_corner".
func (r Room) Key() string {
	return strings.ReplaceAll(strings.ToLower(r.String()), " ", "_")
}

// ParseRoom resolves a configuration key or display name to a room.
func ParseRoom(s string) (Room, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
	for r := Room(0); r < roomCount; r++ {
		if r.Key() == norm {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown room %q", s)
}

// DoorRoom is the room just outside the office door on side.
func DoorRoom(side door.Side) Room {
	if side == door.Left {
		return LeftDoor
	}
	return RightDoor
}
