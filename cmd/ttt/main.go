package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"ttt/internal/config"
	"ttt/internal/db"
	"ttt/internal/tournament"

	"gorm.io/gorm"
)

const usage = `usage: ttt <command> [flags]

commands:
  migrate     create or update the tournament tables
  generate    create a tournament and play every round
  show        print a tournament's rounds, matches and teams
  list        list tournaments
  standings   rank players by cumulative score
  reconcile   rewrite cumulative scores from match history
  delete      delete a tournament and its rounds
`

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	if err := run(context.Background(), os.Args[1:], config.Load(), os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, cfg config.Config, stdout io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, usage)
		return errors.New("command is required")
	}
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}
	command, args := args[0], args[1:]

	if db.IsPostgres(cfg.DatabaseURL) {
		if err := db.MigrateSQL(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
	}

	conn, err := db.OpenConfig(cfg)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer closeDB(conn)
	if err := db.Migrate(conn); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}
	srv := tournament.New(conn, cfg)

	switch command {
	case "migrate":
		return nil
	case "generate":
		return runGenerate(ctx, conn, cfg, args, stdout)
	case "show":
		return runShow(ctx, srv, args, stdout)
	case "list":
		return runList(ctx, srv, stdout)
	case "standings":
		return runStandings(ctx, srv, args, stdout)
	case "reconcile":
		changed, err := srv.ReconcileCumulativeScores(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "reconciled %d players\n", changed)
		return nil
	case "delete":
		return runDelete(ctx, srv, args, stdout)
	}
	fmt.Fprint(stdout, usage)
	return fmt.Errorf("unknown command %q", command)
}

func runGenerate(ctx context.Context, conn *gorm.DB, cfg config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stdout)
	roster := fs.String("roster", "", "players csv (header row, name in last column)")
	start := fs.String("start", "", "start date YYYY-MM-DD (default today)")
	rounds := fs.Int("rounds", cfg.RoundsCount, "number of rounds")
	matches := fs.Int("matches", cfg.MatchesPerRound, "matches per round")
	seed := fs.Int64("seed", cfg.PairingSeed, "pairing and score seed (0 = random)")
	rotate := fs.Bool("rotate", false, "rotate partners instead of shuffling")
	apply := fs.Bool("apply", true, "add team scores to player cumulative scores")
	if err := fs.Parse(args); err != nil {
		return err
	}

	startDate := time.Now().UTC()
	if *start != "" {
		parsed, err := time.Parse(time.DateOnly, *start)
		if err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
		startDate = parsed
	}

	players, err := rosterPlayers(*roster)
	if err != nil {
		return err
	}

	cfg.RoundsCount = *rounds
	cfg.MatchesPerRound = *matches
	cfg.PairingSeed = *seed
	srv := tournament.New(conn, cfg)
	opts := srv.DefaultGenerateOptions()
	if *rotate {
		opts.Pairer = &tournament.RotationPairer{}
	}

	created, err := srv.CreateTournament(ctx, startDate)
	if err != nil {
		return err
	}
	if err := srv.GenerateFullTournament(ctx, created, players, opts); err != nil {
		return err
	}
	if *apply {
		if _, err := srv.ApplyTournamentScores(ctx, created.ID); err != nil {
			return err
		}
	}
	return tournament.WriteStructure(stdout, created)
}

// rosterPlayers loads the roster when one is given, otherwise it seeds the
// default 24-player pool.
func rosterPlayers(path string) ([]*db.Player, error) {
	var names []string
	if path == "" {
		names = defaultRoster
	} else {
		loaded, err := db.ReadRoster(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read roster: %w", err)
		}
		names = loaded
	}
	players := make([]*db.Player, 0, len(names))
	for _, name := range names {
		players = append(players, &db.Player{Name: name})
	}
	return players, nil
}

var defaultRoster = []string{
	"Alice", "Bob", "Charlie", "Dana", "Eve", "Frank", "Grace", "Hank",
	"Ivy", "Jack", "Kara", "Leo", "Mona", "Nate", "Olivia", "Pete",
	"Quinn", "Rachel", "Steve", "Tina", "Uma", "Victor", "Wendy", "Xander",
}

func runShow(ctx context.Context, srv *tournament.Service, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(stdout)
	id := fs.Uint("id", 0, "tournament id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	loaded, err := srv.GetTournament(ctx, *id)
	if err != nil {
		return err
	}
	return tournament.WriteStructure(stdout, loaded)
}

func runList(ctx context.Context, srv *tournament.Service, stdout io.Writer) error {
	list, err := srv.ListTournaments(ctx)
	if err != nil {
		return err
	}
	for _, item := range list {
		fmt.Fprintf(stdout, "%d\t%s\t%d rounds\n", item.ID, time.Time(item.StartDate).Format(time.DateOnly), item.RoundsCount)
	}
	return nil
}

func runStandings(ctx context.Context, srv *tournament.Service, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("standings", flag.ContinueOnError)
	fs.SetOutput(stdout)
	limit := fs.Int("limit", 0, "rows to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	standings, err := srv.Standings(ctx, *limit)
	if err != nil {
		return err
	}
	return tournament.WriteStandings(stdout, standings)
}

func runDelete(ctx context.Context, srv *tournament.Service, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.SetOutput(stdout)
	id := fs.Uint("id", 0, "tournament id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := srv.DeleteTournament(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "deleted tournament %d\n", *id)
	return nil
}

func closeDB(conn *gorm.DB) {
	if sqlDB, err := conn.DB(); err == nil {
		sqlDB.Close()
	}
}
