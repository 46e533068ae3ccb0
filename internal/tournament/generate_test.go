package tournament

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"ttt/internal/db"
)

func TestCreateFullTournamentStructure(t *testing.T) {
	srv := newTestService(t)
	ctx := context.Background()
	tournament := mustTournament(t, srv)
	players := newPlayers(playerNames...)

	if err := srv.GenerateFullTournament(ctx, tournament, players, srv.DefaultGenerateOptions()); err != nil {
		t.Fatalf("generate: %v", err)
	}

	counts := mustCounts(t, srv)
	want := Counts{Tournaments: 1, Rounds: 10, Matches: 60, Teams: 120, Players: 24}
	if counts != want {
		t.Fatalf("expected %+v, got %+v", want, counts)
	}

	loaded, err := srv.GetTournament(ctx, tournament.ID)
	if err != nil {
		t.Fatalf("get tournament: %v", err)
	}
	if len(loaded.Rounds) != 10 {
		t.Fatalf("expected 10 rounds, got %d", len(loaded.Rounds))
	}
	for i, round := range loaded.Rounds {
		if round.RoundNumber != i+1 {
			t.Fatalf("expected round %d, got %d", i+1, round.RoundNumber)
		}
		if len(round.Matches) != 6 {
			t.Fatalf("round %d: expected 6 matches, got %d", round.RoundNumber, len(round.Matches))
		}
		for _, match := range round.Matches {
			if len(match.Teams) != 2 {
				t.Fatalf("match %d: expected 2 teams, got %d", match.ID, len(match.Teams))
			}
			seen := make(map[uint]bool)
			for _, team := range match.Teams {
				if len(team.Players) != 2 {
					t.Fatalf("team %d: expected 2 players, got %d", team.ID, len(team.Players))
				}
				if team.Score < 0 || team.Score > 21 {
					t.Fatalf("team %d: score %d out of range", team.ID, team.Score)
				}
				for _, player := range team.Players {
					if seen[player.ID] {
						t.Fatalf("match %d: player %s on both teams", match.ID, player.Name)
					}
					seen[player.ID] = true
				}
			}
		}
	}
	if len(tournament.Rounds) != 10 {
		t.Fatalf("expected generated rounds on the tournament, got %d", len(tournament.Rounds))
	}

	var out bytes.Buffer
	if err := WriteStructure(&out, loaded); err != nil {
		t.Fatalf("write structure: %v", err)
	}
	if got := strings.Count(out.String(), "\n      Team "); got != 120 {
		t.Fatalf("expected 120 team lines, got %d", got)
	}
}

func TestGenerateWithInjectedStrategy(t *testing.T) {
	srv := newTestServiceRounds(t, 2)
	ctx := context.Background()
	tournament := mustTournament(t, srv)
	players := newPlayers("Alice", "Bob", "Charlie", "Dana", "Eve")

	calls := 0
	opts := GenerateOptions{
		MatchesPerRound: 3,
		TeamsPerMatch:   2,
		PlayersPerTeam:  2,
		Pairer: PairFunc(func(pool []*db.Player, teams, perTeam int) ([][]*db.Player, error) {
			calls++
			return [][]*db.Player{pool[0:2], pool[2:4]}, nil
		}),
		Scorer: ScoreFunc(func() int { return 5 }),
	}
	if err := srv.GenerateFullTournament(ctx, tournament, players, opts); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if calls != 6 {
		t.Fatalf("expected one pairing per match, got %d", calls)
	}

	counts := mustCounts(t, srv)
	if counts.Rounds != 2 || counts.Matches != 6 || counts.Teams != 12 || counts.Players != 5 {
		t.Fatalf("unexpected counts %+v", counts)
	}
	for _, round := range tournament.Rounds {
		for _, match := range round.Matches {
			first, second := match.Teams[0], match.Teams[1]
			if first.Score != 5 || second.Score != 5 {
				t.Fatalf("expected fixed scores, got %d and %d", first.Score, second.Score)
			}
			if first.Players[0].Name != "Alice" || second.Players[1].Name != "Dana" {
				t.Fatalf("expected fixed pairing, got %v / %v", first.Players, second.Players)
			}
		}
	}

	eve, err := srv.GetPlayer(ctx, players[4].ID)
	if err != nil {
		t.Fatalf("expected bench player persisted: %v", err)
	}
	if eve.Name != "Eve" {
		t.Fatalf("expected Eve, got %s", eve.Name)
	}
}

func TestGenerateIsAllOrNothing(t *testing.T) {
	srv := newTestServiceRounds(t, 3)
	ctx := context.Background()
	tournament := mustTournament(t, srv)

	calls := 0
	boom := errors.New("pairing failed")
	opts := GenerateOptions{
		MatchesPerRound: 2,
		TeamsPerMatch:   2,
		PlayersPerTeam:  1,
		Pairer: PairFunc(func(pool []*db.Player, teams, perTeam int) ([][]*db.Player, error) {
			calls++
			if calls == 4 {
				return nil, boom
			}
			return [][]*db.Player{pool[0:1], pool[1:2]}, nil
		}),
		Scorer: ScoreFunc(func() int { return 1 }),
	}
	err := srv.GenerateFullTournament(ctx, tournament, newPlayers("Ivy", "Jack"), opts)
	if !errors.Is(err, boom) {
		t.Fatalf("expected pairing error, got %v", err)
	}

	counts := mustCounts(t, srv)
	want := Counts{Tournaments: 1}
	if counts != want {
		t.Fatalf("expected only the tournament to remain, got %+v", counts)
	}
}

func TestGenerateNotEnoughPlayers(t *testing.T) {
	srv := newTestService(t)
	tournament := mustTournament(t, srv)

	err := srv.GenerateFullTournament(context.Background(), tournament, newPlayers("Kara", "Leo", "Mona"), srv.DefaultGenerateOptions())
	if !errors.Is(err, ErrNotEnoughPlayers) {
		t.Fatalf("expected not enough players, got %v", err)
	}
	if counts := mustCounts(t, srv); counts.Rounds != 0 || counts.Players != 0 {
		t.Fatalf("expected nothing written, got %+v", counts)
	}
}

func TestGenerateRejectsIncompleteOptions(t *testing.T) {
	srv := newTestService(t)
	tournament := mustTournament(t, srv)
	opts := srv.DefaultGenerateOptions()
	opts.Pairer = nil

	if err := srv.GenerateFullTournament(context.Background(), tournament, newPlayers(playerNames...), opts); err == nil {
		t.Fatalf("expected missing pairer to fail")
	}
}

func TestGenerateForMissingTournament(t *testing.T) {
	srv := newTestServiceRounds(t, 1)

	err := srv.GenerateFullTournament(context.Background(), &db.Tournament{ID: 9999, RoundsCount: 1}, newPlayers(playerNames[:4]...), srv.DefaultGenerateOptions())
	if !errors.Is(err, db.ErrReferential) {
		t.Fatalf("expected referential error, got %v", err)
	}
}

func TestDeleteTournamentCascades(t *testing.T) {
	srv := newTestServiceRounds(t, 2)
	ctx := context.Background()
	tournament := mustTournament(t, srv)
	if err := srv.GenerateFullTournament(ctx, tournament, newPlayers(playerNames[:8]...), srv.DefaultGenerateOptions()); err != nil {
		t.Fatalf("generate: %v", err)
	}
	loose := mustMatch(t, srv, nil)

	if err := srv.DeleteTournament(ctx, tournament.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	counts := mustCounts(t, srv)
	want := Counts{Matches: 1, Players: 8}
	if counts != want {
		t.Fatalf("expected %+v, got %+v", want, counts)
	}
	var links int64
	if err := srv.db.Table(db.TeamPlayersTable).Count(&links).Error; err != nil {
		t.Fatalf("count links: %v", err)
	}
	if links != 0 {
		t.Fatalf("expected memberships removed, got %d", links)
	}
	if _, err := srv.GetMatch(ctx, loose.ID); err != nil {
		t.Fatalf("expected unscheduled match to survive: %v", err)
	}

	if err := srv.DeleteTournament(ctx, tournament.ID); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestSetRoundsCount(t *testing.T) {
	srv := newTestService(t)
	ctx := context.Background()
	tournament := mustTournament(t, srv)

	if err := srv.SetRoundsCount(ctx, tournament.ID, 4); err != nil {
		t.Fatalf("set rounds: %v", err)
	}
	loaded, err := srv.GetTournament(ctx, tournament.ID)
	if err != nil {
		t.Fatalf("get tournament: %v", err)
	}
	if loaded.RoundsCount != 4 {
		t.Fatalf("expected 4 rounds, got %d", loaded.RoundsCount)
	}

	if err := srv.SetRoundsCount(ctx, tournament.ID, 0); !errors.Is(err, ErrInvalidRoundsCount) {
		t.Fatalf("expected invalid count, got %v", err)
	}
	if err := srv.SetRoundsCount(ctx, 9999, 3); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetTournamentNotFound(t *testing.T) {
	srv := newTestService(t)

	if _, err := srv.GetTournament(context.Background(), 9999); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListTournaments(t *testing.T) {
	srv := newTestService(t)
	first := mustTournament(t, srv)
	second := mustTournament(t, srv)

	list, err := srv.ListTournaments(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first, got %#v", list)
	}
}
