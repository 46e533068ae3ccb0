package db

// TeamPlayersTable links teams and players; it carries no attributes of its own.
const TeamPlayersTable = "team_players"

type Team struct {
	ID      uint     `gorm:"primaryKey"`
	Score   int      `gorm:"not null;default:0"`
	MatchID uint     `gorm:"index;not null"`
	Match   *Match   `gorm:"foreignKey:MatchID"`
	Players []Player `gorm:"many2many:team_players;constraint:OnDelete:CASCADE"`
}

// PlayerIDs returns member ids in association order.
func (t *Team) PlayerIDs() []uint {
	ids := make([]uint, 0, len(t.Players))
	for _, player := range t.Players {
		ids = append(ids, player.ID)
	}
	return ids
}

// HasPlayer reports whether a persisted player is a member.
func (t *Team) HasPlayer(id uint) bool {
	for _, player := range t.Players {
		if player.ID == id {
			return true
		}
	}
	return false
}
