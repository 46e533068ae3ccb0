package db

// Match may exist before it is scheduled into a round.
type Match struct {
	ID      uint   `gorm:"primaryKey"`
	RoundID *uint  `gorm:"index"`
	Round   *Round `gorm:"foreignKey:RoundID"`
	Teams   []Team `gorm:"constraint:OnDelete:CASCADE"`
}
