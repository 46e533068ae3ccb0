package tournament

import (
	"context"
	"fmt"
	"time"

	"ttt/internal/db"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateTournament persists a tournament starting on startDate with the
// configured rounds count.
func (s *Service) CreateTournament(ctx context.Context, startDate time.Time) (*db.Tournament, error) {
	record := &db.Tournament{
		StartDate:   datatypes.Date(startDate),
		RoundsCount: s.roundsCount(),
	}
	if err := s.inTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(record).Error
	}); err != nil {
		return nil, err
	}
	return record, nil
}

// CreateRound links a new round to an existing tournament. A missing
// tournament surfaces as db.ErrReferential.
func (s *Service) CreateRound(ctx context.Context, tournamentID uint, roundNumber int) (*db.Round, error) {
	var round *db.Round
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		var err error
		round, err = createRound(tx, tournamentID, roundNumber)
		return err
	})
	if err != nil {
		return nil, err
	}
	return round, nil
}

// CreateMatch persists a match, scheduled into roundID when it is non-nil.
func (s *Service) CreateMatch(ctx context.Context, roundID *uint) (*db.Match, error) {
	var match *db.Match
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		var err error
		match, err = createMatch(tx, roundID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return match, nil
}

func (s *Service) CreateTeam(ctx context.Context, matchID uint, score int) (*db.Team, error) {
	var team *db.Team
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		var err error
		team, err = createTeam(tx, matchID, score)
		return err
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

// AssignPlayersToTeam adds players to the team. Players without an id are
// inserted first; persisted players are linked as they are. On return
// team.Players holds every member ordered by id.
func (s *Service) AssignPlayersToTeam(ctx context.Context, team *db.Team, players []*db.Player) error {
	if team == nil || team.ID == 0 {
		return fmt.Errorf("%w: %w", db.ErrReferential, ErrTeamNotPersisted)
	}
	return s.inTx(ctx, func(tx *gorm.DB) error {
		return assignPlayers(tx, team, players)
	})
}

func createRound(tx *gorm.DB, tournamentID uint, roundNumber int) (*db.Round, error) {
	round := &db.Round{
		RoundNumber:  roundNumber,
		TournamentID: tournamentID,
	}
	if err := tx.Create(round).Error; err != nil {
		return nil, err
	}
	return round, nil
}

func createMatch(tx *gorm.DB, roundID *uint) (*db.Match, error) {
	match := &db.Match{}
	if roundID != nil {
		id := *roundID
		match.RoundID = &id
	}
	if err := tx.Create(match).Error; err != nil {
		return nil, err
	}
	return match, nil
}

func createTeam(tx *gorm.DB, matchID uint, score int) (*db.Team, error) {
	team := &db.Team{
		MatchID: matchID,
		Score:   score,
	}
	if err := tx.Create(team).Error; err != nil {
		return nil, err
	}
	return team, nil
}

func assignPlayers(tx *gorm.DB, team *db.Team, players []*db.Player) error {
	if err := createMissingPlayers(tx, players); err != nil {
		return err
	}
	if len(players) > 0 {
		if err := tx.Model(team).Association("Players").Append(players); err != nil {
			return err
		}
	}
	members, err := loadMembers(tx, team.ID)
	if err != nil {
		return err
	}
	team.Players = members
	return nil
}

func createMissingPlayers(tx *gorm.DB, players []*db.Player) error {
	for _, player := range players {
		if player == nil {
			return fmt.Errorf("%w: nil player", db.ErrReferential)
		}
		if player.ID != 0 {
			continue
		}
		if err := tx.Create(player).Error; err != nil {
			return err
		}
	}
	return nil
}

func loadMembers(tx *gorm.DB, teamID uint) ([]db.Player, error) {
	var players []db.Player
	err := tx.Joins("JOIN "+db.TeamPlayersTable+" ON "+db.TeamPlayersTable+".player_id = players.id").
		Where(db.TeamPlayersTable+".team_id = ?", teamID).
		Order("players.id").
		Find(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}
