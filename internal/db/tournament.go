package db

import "gorm.io/datatypes"

// DefaultRoundsCount applies when a tournament is created without an explicit count.
const DefaultRoundsCount = 10

type Tournament struct {
	ID          uint           `gorm:"primaryKey"`
	StartDate   datatypes.Date `gorm:"not null"`
	RoundsCount int            `gorm:"not null;default:10"`
	Rounds      []Round        `gorm:"constraint:OnDelete:CASCADE"`
}
