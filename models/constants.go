package models

// Bounds shared by recipe validation and the importer.
const (
	MinValue       = 1
	MaxAmount      = 32000
	MaxCookingTime = 32000

	MaxFieldLength = 150
	MaxTagLength   = 20
	MaxEmailLength = 254
)
