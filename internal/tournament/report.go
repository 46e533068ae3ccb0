package tournament

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"ttt/internal/db"
)

// WriteStructure prints a loaded tournament as an indented tree, one line per
// round, match and team.
func WriteStructure(w io.Writer, tournament *db.Tournament) error {
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "Tournament ID: %d, Start Date: %s\n", tournament.ID, time.Time(tournament.StartDate).Format(time.DateOnly))
	fmt.Fprintln(out, "***")
	for _, round := range tournament.Rounds {
		fmt.Fprintf(out, "  Round %d\n", round.RoundNumber)
		for _, match := range round.Matches {
			fmt.Fprintf(out, "    Match %d\n", match.ID)
			for _, team := range match.Teams {
				names := make([]string, 0, len(team.Players))
				for _, player := range team.Players {
					names = append(names, player.Name)
				}
				fmt.Fprintf(out, "      Team %d (Score: %d): %s\n", team.ID, team.Score, strings.Join(names, ", "))
			}
		}
	}
	return out.Flush()
}

// WriteStandings prints one "rank. name score (teams)" line per player.
func WriteStandings(w io.Writer, standings []Standing) error {
	out := bufio.NewWriter(w)
	for _, row := range standings {
		fmt.Fprintf(out, "%3d. %-20s %5d  (%d teams)\n", row.Rank, row.Name, row.CumulativeScore, row.TeamsPlayed)
	}
	return out.Flush()
}
