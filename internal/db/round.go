package db

type Round struct {
	ID           uint        `gorm:"primaryKey"`
	RoundNumber  int         `gorm:"not null;uniqueIndex:idx_rounds_tournament_number"`
	TournamentID uint        `gorm:"index;not null;uniqueIndex:idx_rounds_tournament_number"`
	Tournament   *Tournament `gorm:"foreignKey:TournamentID"`
	Matches      []Match     `gorm:"constraint:OnDelete:CASCADE"`
}
