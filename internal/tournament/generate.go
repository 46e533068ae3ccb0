package tournament

import (
	"context"
	"errors"
	"fmt"

	"ttt/internal/db"

	"gorm.io/gorm"
)

type GenerateOptions struct {
	MatchesPerRound int
	TeamsPerMatch   int
	PlayersPerTeam  int
	Pairer          Pairer
	Scorer          Scorer
}

// DefaultGenerateOptions shuffles players and draws scores in
// [0, MaxTeamScore], both seeded from PairingSeed.
func (s *Service) DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		MatchesPerRound: s.cfg.MatchesPerRound,
		TeamsPerMatch:   s.cfg.TeamsPerMatch,
		PlayersPerTeam:  s.cfg.PlayersPerTeam,
		Pairer:          NewShufflePairer(s.cfg.PairingSeed),
		Scorer:          NewRandomScorer(s.cfg.MaxTeamScore, s.cfg.PairingSeed),
	}
}

func (o GenerateOptions) validate() error {
	if o.MatchesPerRound <= 0 {
		return errors.New("matches per round must be positive")
	}
	if o.TeamsPerMatch <= 0 || o.PlayersPerTeam <= 0 {
		return ErrInvalidMatchShape
	}
	if o.Pairer == nil {
		return errors.New("pairer is required")
	}
	if o.Scorer == nil {
		return errors.New("scorer is required")
	}
	return nil
}

// GenerateFullTournament creates rounds 1..RoundsCount for the tournament,
// MatchesPerRound matches per round and TeamsPerMatch teams per match, each
// team filled by the pairer and scored by the scorer. Unsaved players are
// inserted first. The whole tournament is written in one transaction and
// tournament.Rounds is reloaded on success.
func (s *Service) GenerateFullTournament(ctx context.Context, tournament *db.Tournament, players []*db.Player, opts GenerateOptions) error {
	if tournament == nil {
		return errors.New("tournament is nil")
	}
	if err := opts.validate(); err != nil {
		return err
	}
	if need := opts.TeamsPerMatch * opts.PlayersPerTeam; need > len(players) {
		return fmt.Errorf("%w: need %d, have %d", ErrNotEnoughPlayers, need, len(players))
	}
	return s.inTx(ctx, func(tx *gorm.DB) error {
		if err := createMissingPlayers(tx, players); err != nil {
			return err
		}
		for number := 1; number <= tournament.RoundsCount; number++ {
			if err := generateRound(tx, tournament.ID, number, players, opts); err != nil {
				return fmt.Errorf("round %d: %w", number, err)
			}
		}
		loaded, err := loadTournament(tx, tournament.ID)
		if err != nil {
			return err
		}
		tournament.Rounds = loaded.Rounds
		return nil
	})
}

func generateRound(tx *gorm.DB, tournamentID uint, number int, players []*db.Player, opts GenerateOptions) error {
	round, err := createRound(tx, tournamentID, number)
	if err != nil {
		return err
	}
	for i := 0; i < opts.MatchesPerRound; i++ {
		match, err := createMatch(tx, &round.ID)
		if err != nil {
			return err
		}
		groups, err := opts.Pairer.Pair(players, opts.TeamsPerMatch, opts.PlayersPerTeam)
		if err != nil {
			return err
		}
		if len(groups) != opts.TeamsPerMatch {
			return fmt.Errorf("pairer returned %d teams, want %d", len(groups), opts.TeamsPerMatch)
		}
		for _, group := range groups {
			team, err := createTeam(tx, match.ID, opts.Scorer.Score())
			if err != nil {
				return err
			}
			if err := assignPlayers(tx, team, group); err != nil {
				return err
			}
		}
	}
	return nil
}
