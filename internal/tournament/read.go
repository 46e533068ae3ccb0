package tournament

import (
	"context"
	"fmt"

	"ttt/internal/db"

	"gorm.io/gorm"
)

// GetTournament loads the full tree: rounds by number, then matches, teams and
// players by id.
func (s *Service) GetTournament(ctx context.Context, id uint) (*db.Tournament, error) {
	var tournament *db.Tournament
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		var err error
		tournament, err = loadTournament(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tournament, nil
}

func loadTournament(tx *gorm.DB, id uint) (*db.Tournament, error) {
	var tournament db.Tournament
	err := tx.
		Preload("Rounds", orderBy("rounds.round_number")).
		Preload("Rounds.Matches", orderBy("matches.id")).
		Preload("Rounds.Matches.Teams", orderBy("teams.id")).
		Preload("Rounds.Matches.Teams.Players", orderBy("players.id")).
		First(&tournament, id).Error
	if err != nil {
		return nil, err
	}
	return &tournament, nil
}

func orderBy(column string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Order(column)
	}
}

// ListTournaments returns tournaments without their rounds, newest first.
func (s *Service) ListTournaments(ctx context.Context) ([]db.Tournament, error) {
	var list []db.Tournament
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		return tx.Order("id desc").Find(&list).Error
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// GetRound reads a round back with its tournament.
func (s *Service) GetRound(ctx context.Context, id uint) (*db.Round, error) {
	var round db.Round
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		return tx.Preload("Tournament").First(&round, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &round, nil
}

// GetMatch reads a match back with its round; Round is nil for an
// unscheduled match.
func (s *Service) GetMatch(ctx context.Context, id uint) (*db.Match, error) {
	var match db.Match
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		return tx.Preload("Round").Preload("Teams", orderBy("teams.id")).First(&match, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// GetTeam reads a team back with its match and members.
func (s *Service) GetTeam(ctx context.Context, id uint) (*db.Team, error) {
	var team db.Team
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		return tx.Preload("Match").Preload("Players", orderBy("players.id")).First(&team, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *Service) GetPlayer(ctx context.Context, id uint) (*db.Player, error) {
	var player db.Player
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		return tx.First(&player, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &player, nil
}

// SetRoundsCount changes how many rounds the tournament plays. Existing rounds
// are kept.
func (s *Service) SetRoundsCount(ctx context.Context, tournamentID uint, count int) error {
	if count <= 0 {
		return ErrInvalidRoundsCount
	}
	return s.inTx(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&db.Tournament{}).Where("id = ?", tournamentID).Update("rounds_count", count)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("tournament %d: %w", tournamentID, db.ErrNotFound)
		}
		return nil
	})
}

// DeleteTournament removes the tournament; rounds, matches, teams and team
// memberships go with it. Players are kept.
func (s *Service) DeleteTournament(ctx context.Context, id uint) error {
	return s.inTx(ctx, func(tx *gorm.DB) error {
		result := tx.Delete(&db.Tournament{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("tournament %d: %w", id, db.ErrNotFound)
		}
		return nil
	})
}

type Counts struct {
	Tournaments int64
	Rounds      int64
	Matches     int64
	Teams       int64
	Players     int64
}

func (s *Service) Counts(ctx context.Context) (Counts, error) {
	var counts Counts
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		targets := []struct {
			model any
			dest  *int64
		}{
			{&db.Tournament{}, &counts.Tournaments},
			{&db.Round{}, &counts.Rounds},
			{&db.Match{}, &counts.Matches},
			{&db.Team{}, &counts.Teams},
			{&db.Player{}, &counts.Players},
		}
		for _, target := range targets {
			if err := tx.Model(target.model).Count(target.dest).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Counts{}, err
	}
	return counts, nil
}
