package tournament

import (
	"fmt"
	"math/rand/v2"
	"time"

	"ttt/internal/db"
)

// Pairer splits a player pool into the teams of one match.
type Pairer interface {
	Pair(players []*db.Player, teams, perTeam int) ([][]*db.Player, error)
}

// PairFunc adapts an ordinary function to Pairer.
type PairFunc func(players []*db.Player, teams, perTeam int) ([][]*db.Player, error)

func (f PairFunc) Pair(players []*db.Player, teams, perTeam int) ([][]*db.Player, error) {
	return f(players, teams, perTeam)
}

// ShufflePairer shuffles the pool and takes consecutive slices. It gives no
// balance or no-repeat guarantees across rounds.
type ShufflePairer struct {
	rng *rand.Rand
}

// NewShufflePairer returns a pairer seeded with seed, or from the clock when
// seed is 0.
func NewShufflePairer(seed int64) *ShufflePairer {
	return &ShufflePairer{rng: newRand(seed, 1)}
}

func (p *ShufflePairer) Pair(players []*db.Player, teams, perTeam int) ([][]*db.Player, error) {
	if err := checkShape(len(players), teams, perTeam); err != nil {
		return nil, err
	}
	pool := append([]*db.Player(nil), players...)
	p.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return split(pool, teams, perTeam), nil
}

// RotationPairer is deterministic: the first player stays fixed and the rest
// of the pool rotates by one position on every call, circle-method style.
type RotationPairer struct {
	turn int
}

func (p *RotationPairer) Pair(players []*db.Player, teams, perTeam int) ([][]*db.Player, error) {
	if err := checkShape(len(players), teams, perTeam); err != nil {
		return nil, err
	}
	pool := make([]*db.Player, 0, len(players))
	pool = append(pool, players[0])
	if rest := players[1:]; len(rest) > 0 {
		k := p.turn % len(rest)
		pool = append(pool, rest[k:]...)
		pool = append(pool, rest[:k]...)
	}
	p.turn++
	return split(pool, teams, perTeam), nil
}

func checkShape(pool, teams, perTeam int) error {
	if teams <= 0 || perTeam <= 0 {
		return ErrInvalidMatchShape
	}
	if need := teams * perTeam; need > pool {
		return fmt.Errorf("%w: need %d, have %d", ErrNotEnoughPlayers, need, pool)
	}
	return nil
}

func split(pool []*db.Player, teams, perTeam int) [][]*db.Player {
	groups := make([][]*db.Player, 0, teams)
	for i := 0; i < teams; i++ {
		start := i * perTeam
		groups = append(groups, pool[start:start+perTeam:start+perTeam])
	}
	return groups
}

// Scorer produces the score of a newly generated team.
type Scorer interface {
	Score() int
}

type ScoreFunc func() int

func (f ScoreFunc) Score() int {
	return f()
}

// RandomScorer draws uniformly from [0, max].
type RandomScorer struct {
	rng      *rand.Rand
	maxScore int
}

func NewRandomScorer(maxScore int, seed int64) *RandomScorer {
	if maxScore < 0 {
		maxScore = 0
	}
	return &RandomScorer{rng: newRand(seed, 2), maxScore: maxScore}
}

func (s *RandomScorer) Score() int {
	return s.rng.IntN(s.maxScore + 1)
}

func newRand(seed int64, stream uint64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), stream))
}
