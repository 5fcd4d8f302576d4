package domain

// Location is a scene the player can be in
type Location string

const (
	LocationFarm  Location = "farm"
	LocationHome  Location = "home"
	LocationTown  Location = "town"
	LocationCoop  Location = "coop"
	LocationBeach Location = "beach"
)

// Locations lists every known scene
var Locations = []Location{LocationFarm, LocationHome, LocationTown, LocationCoop, LocationBeach}

// Valid reports whether l is a known location
func (l Location) Valid() bool {
	for _, known := range Locations {
		if l == known {
			return true
		}
	}
	return false
}
