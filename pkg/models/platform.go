package models

// Coalition identifies which side of the conflict a platform belongs to.
type Coalition string

const (
	CoalitionRed     Coalition = "RED"
	CoalitionBlue    Coalition = "BLUE"
	CoalitionNeutral Coalition = "NEUTRAL"
)

// Category is a coarse platform category used by proximity queries.
type Category string

const (
	CategoryAir    Category = "AIR"
	CategoryGround Category = "GROUND"
	CategoryWeapon Category = "WEAPON"
)
