package db

// Player outlives any match structure. Names are not unique.
//
// CumulativeScore is maintained by callers that apply team scores; the schema
// does not derive it.
type Player struct {
	ID              uint   `gorm:"primaryKey"`
	Name            string `gorm:"size:64;not null"`
	CumulativeScore int    `gorm:"not null;default:0"`
	Teams           []Team `gorm:"many2many:team_players;constraint:OnDelete:CASCADE"`
}
