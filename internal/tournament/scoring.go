package tournament

import (
	"context"
	"fmt"

	"ttt/internal/db"

	"gorm.io/gorm"
)

// ApplyTeamScoreToPlayers adds the team's persisted score to the cumulative
// score of every member. Applying it twice counts the match twice.
//
// The increment is a single UPDATE evaluated by the database, so concurrent
// applications to the same player do not lose updates.
func (s *Service) ApplyTeamScoreToPlayers(ctx context.Context, team *db.Team) error {
	if team == nil || team.ID == 0 {
		return fmt.Errorf("%w: %w", db.ErrReferential, ErrTeamNotPersisted)
	}
	return s.inTx(ctx, func(tx *gorm.DB) error {
		var current db.Team
		if err := tx.First(&current, team.ID).Error; err != nil {
			return err
		}
		if err := applyScore(tx, current.ID, current.Score); err != nil {
			return err
		}
		members, err := loadMembers(tx, current.ID)
		if err != nil {
			return err
		}
		team.Score = current.Score
		team.Players = members
		return nil
	})
}

func applyScore(tx *gorm.DB, teamID uint, score int) error {
	members := tx.Table(db.TeamPlayersTable).Select("player_id").Where("team_id = ?", teamID)
	return tx.Model(&db.Player{}).
		Where("id IN (?)", members).
		UpdateColumn("cumulative_score", gorm.Expr("cumulative_score + ?", score)).Error
}

// DerivedScores computes each player's cumulative score from match history:
// the sum of the scores of every team the player belongs to. Players with no
// teams map to 0.
func (s *Service) DerivedScores(ctx context.Context) (map[uint]int, error) {
	var totals map[uint]int
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		var err error
		totals, err = derivedScores(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return totals, nil
}

type derivedRow struct {
	PlayerID uint
	Total    int
}

func derivedScores(tx *gorm.DB) (map[uint]int, error) {
	var rows []derivedRow
	err := tx.Table("players").
		Select("players.id AS player_id, CAST(COALESCE(SUM(teams.score), 0) AS BIGINT) AS total").
		Joins("LEFT JOIN " + db.TeamPlayersTable + " ON " + db.TeamPlayersTable + ".player_id = players.id").
		Joins("LEFT JOIN teams ON teams.id = " + db.TeamPlayersTable + ".team_id").
		Group("players.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	totals := make(map[uint]int, len(rows))
	for _, row := range rows {
		totals[row.PlayerID] = row.Total
	}
	return totals, nil
}

// ReconcileCumulativeScores overwrites every stored cumulative score that
// disagrees with match history and returns how many players changed.
func (s *Service) ReconcileCumulativeScores(ctx context.Context) (int, error) {
	changed := 0
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		totals, err := derivedScores(tx)
		if err != nil {
			return err
		}
		var players []db.Player
		if err := tx.Select("id", "cumulative_score").Order("id").Find(&players).Error; err != nil {
			return err
		}
		for _, player := range players {
			want := totals[player.ID]
			if player.CumulativeScore == want {
				continue
			}
			if err := tx.Model(&db.Player{}).Where("id = ?", player.ID).
				UpdateColumn("cumulative_score", want).Error; err != nil {
				return err
			}
			changed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}

type Standing struct {
	Rank            int
	PlayerID        uint
	Name            string
	CumulativeScore int
	TeamsPlayed     int
}

// Standings ranks players by cumulative score, highest first. Ties share a
// rank and are listed by name then id. A limit of 0 returns every player.
func (s *Service) Standings(ctx context.Context, limit int) ([]Standing, error) {
	var rows []Standing
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		query := tx.Table("players").
			Select("players.id AS player_id, players.name AS name, players.cumulative_score AS cumulative_score, COUNT(" + db.TeamPlayersTable + ".team_id) AS teams_played").
			Joins("LEFT JOIN " + db.TeamPlayersTable + " ON " + db.TeamPlayersTable + ".player_id = players.id").
			Group("players.id, players.name, players.cumulative_score").
			Order("players.cumulative_score DESC, players.name ASC, players.id ASC")
		if limit > 0 {
			query = query.Limit(limit)
		}
		return query.Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	rank := 0
	for i := range rows {
		if i == 0 || rows[i].CumulativeScore != rows[i-1].CumulativeScore {
			rank++
		}
		rows[i].Rank = rank
	}
	return rows, nil
}

// ApplyTournamentScores applies every team score of the tournament once, in
// round then match order, and returns how many teams were applied. Running it
// again counts the tournament again.
func (s *Service) ApplyTournamentScores(ctx context.Context, tournamentID uint) (int, error) {
	applied := 0
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		var teams []db.Team
		err := tx.Joins("JOIN matches ON matches.id = teams.match_id").
			Joins("JOIN rounds ON rounds.id = matches.round_id").
			Where("rounds.tournament_id = ?", tournamentID).
			Order("rounds.round_number, matches.id, teams.id").
			Find(&teams).Error
		if err != nil {
			return err
		}
		for _, team := range teams {
			if err := applyScore(tx, team.ID, team.Score); err != nil {
				return err
			}
			applied++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}
