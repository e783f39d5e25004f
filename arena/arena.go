package main

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/raddah/GomokuMaster/engine"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"lukechampine.com/frand"
)

type openingMove struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type contender struct {
	ID     string            `json:"id"`
	Source engine.MoveSource `json:"source"`
	Elo    float64           `json:"elo"`
	Wins   int               `json:"wins"`
	Losses int               `json:"losses"`
	Draws  int               `json:"draws"`
}

type matchResult struct {
	Black     string        `json:"black"`
	White     string        `json:"white"`
	Status    string        `json:"status"`
	Plies     int           `json:"plies"`
	Fallbacks int           `json:"fallbacks"`
	Elapsed   time.Duration `json:"elapsedNs"`
	// scoreForBlack is 1 for a black win, 0 for a white win and 0.5 otherwise.
	scoreForBlack float64
}

type report struct {
	BoardSize  int           `json:"boardSize"`
	Difficulty int           `json:"difficulty"`
	Openings   int           `json:"openings"`
	Standings  []contender   `json:"standings"`
	Matches    []matchResult `json:"matches"`
}

// arena plays every contender against every other one over a fixed suite of
// openings, each opening once per color.
type arena struct {
	boardSize    int
	difficulty   int
	openings     int
	openingPlies int
	maxPlies     int
	eloK         float64
	seed         int64
	search       engine.Config
}

var openingOffsets = []openingMove{
	{0, 0}, {1, 0}, {0, 1}, {-1, 0}, {0, -1}, {1, 1}, {-1, -1}, {1, -1}, {-1, 1}, {2, 0}, {0, 2},
}

// parseContenders builds one contender per listed strategy. Repeated
// strategies get a numeric suffix so ids stay unique.
func parseContenders(list string) ([]*contender, error) {
	names := lo.Compact(lo.Map(strings.Split(list, ","), func(name string, _ int) string {
		return strings.TrimSpace(name)
	}))
	seen := map[string]int{}
	out := make([]*contender, 0, len(names))
	for _, name := range names {
		source, err := engine.ParseMoveSource(name)
		if err != nil {
			return nil, err
		}
		if source.IsHuman() {
			return nil, fmt.Errorf("contender %q is not an engine", name)
		}
		seen[source.String()]++
		id := source.String()
		if n := seen[id]; n > 1 {
			id = fmt.Sprintf("%s#%d", id, n)
		}
		out = append(out, &contender{ID: id, Source: source, Elo: 1500})
	}
	if len(out) < 2 {
		return nil, errors.New("need at least two contenders")
	}
	return out, nil
}

// buildOpeningSuite returns count openings of stones placed around the board
// center. The suite depends only on the board size, ply count and salt.
func (a *arena) buildOpeningSuite(count int, salt int64) [][]openingMove {
	seed := make([]byte, 32)
	binary.LittleEndian.PutUint64(seed, uint64(int64(a.boardSize*97+a.openingPlies*13)+salt))
	rng := frand.NewCustom(seed, 1024, 12)

	center := a.boardSize / 2
	candidates := lo.Filter(openingOffsets, func(off openingMove, _ int) bool {
		return engine.NewMove(center+off.Row, center+off.Col).IsValid(a.boardSize)
	})
	plies := a.openingPlies
	if plies > len(candidates) {
		plies = len(candidates)
	}

	suite := make([][]openingMove, 0, count)
	for i := 0; i < count; i++ {
		used := map[openingMove]bool{}
		opening := make([]openingMove, 0, plies)
		for len(opening) < plies {
			off := candidates[rng.Intn(len(candidates))]
			if used[off] {
				continue
			}
			used[off] = true
			opening = append(opening, openingMove{Row: center + off.Row, Col: center + off.Col})
		}
		suite = append(suite, opening)
	}
	return suite
}

func (a *arena) playGame(ctx context.Context, black, white *contender, opening []openingMove) (matchResult, error) {
	settings := engine.DefaultGameSettings()
	settings.BoardSize = a.boardSize
	settings.Difficulty = a.difficulty
	settings.Black = black.Source
	settings.White = white.Source
	settings.Search = a.search
	gc, err := engine.NewGameController(settings)
	if err != nil {
		return matchResult{}, err
	}

	start := time.Now()
	for _, m := range opening {
		if _, err := gc.ForceMove(engine.NewMove(m.Row, m.Col)); err != nil {
			return matchResult{}, fmt.Errorf("opening move (%d,%d): %w", m.Row, m.Col, err)
		}
	}
	fallbacks := 0
	for gc.Status() == engine.StatusRunning {
		if err := ctx.Err(); err != nil {
			return matchResult{}, err
		}
		if a.maxPlies > 0 && gc.History().Size() >= a.maxPlies {
			break
		}
		result, err := gc.RequestAIMove(ctx)
		if err != nil {
			return matchResult{}, err
		}
		if result.Fallback {
			fallbacks++
		}
	}

	status := gc.Status()
	match := matchResult{
		Black:         black.ID,
		White:         white.ID,
		Status:        status.String(),
		Plies:         gc.History().Size(),
		Fallbacks:     fallbacks,
		Elapsed:       time.Since(start),
		scoreForBlack: 0.5,
	}
	switch status {
	case engine.StatusBlackWon:
		match.scoreForBlack = 1
	case engine.StatusWhiteWon:
		match.scoreForBlack = 0
	case engine.StatusRunning:
		match.Status = "adjudicated_draw"
	}
	return match, nil
}

// playHeadToHead plays the opening twice with colors swapped and returns the
// score for first out of 2.
func (a *arena) playHeadToHead(ctx context.Context, first, second *contender, opening []openingMove) (float64, []matchResult, error) {
	g1, err := a.playGame(ctx, first, second, opening)
	if err != nil {
		return 0, nil, err
	}
	g2, err := a.playGame(ctx, second, first, opening)
	if err != nil {
		return 0, nil, err
	}
	return g1.scoreForBlack + (1 - g2.scoreForBlack), []matchResult{g1, g2}, nil
}

func (a *arena) run(ctx context.Context, contenders []*contender) (report, error) {
	suite := a.buildOpeningSuite(a.openings, a.seed)
	rep := report{BoardSize: a.boardSize, Difficulty: a.difficulty, Openings: len(suite)}
	for i := 0; i < len(contenders); i++ {
		for j := i + 1; j < len(contenders); j++ {
			for n, opening := range suite {
				first, second := contenders[i], contenders[j]
				score, games, err := a.playHeadToHead(ctx, first, second, opening)
				if err != nil {
					return rep, err
				}
				for _, g := range games {
					recordResult(contenders, g)
					rep.Matches = append(rep.Matches, g)
				}
				updateElo(first, second, score/2, a.eloK)
				log.Info().
					Str("first", first.ID).
					Str("second", second.ID).
					Int("opening", n).
					Float64("score", score).
					Float64("firstElo", first.Elo).
					Float64("secondElo", second.Elo).
					Msg("arena-pairing")
			}
		}
	}
	rep.Standings = standings(contenders)
	return rep, nil
}

func recordResult(contenders []*contender, g matchResult) {
	black, _ := lo.Find(contenders, func(c *contender) bool { return c.ID == g.Black })
	white, _ := lo.Find(contenders, func(c *contender) bool { return c.ID == g.White })
	if black == nil || white == nil {
		return
	}
	switch g.scoreForBlack {
	case 1:
		black.Wins++
		white.Losses++
	case 0:
		white.Wins++
		black.Losses++
	default:
		black.Draws++
		white.Draws++
	}
}

func updateElo(a, b *contender, resultForA float64, k float64) {
	expA := 1.0 / (1.0 + math.Pow(10, (b.Elo-a.Elo)/400.0))
	expB := 1.0 / (1.0 + math.Pow(10, (a.Elo-b.Elo)/400.0))
	a.Elo += k * (resultForA - expA)
	b.Elo += k * ((1.0 - resultForA) - expB)
}

func standings(contenders []*contender) []contender {
	out := lo.Map(contenders, func(c *contender, _ int) contender { return *c })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Elo > out[j].Elo })
	return out
}
