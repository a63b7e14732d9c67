package match3

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

// DefaultSimSwapLimit caps headless games that would otherwise not end.
const DefaultSimSwapLimit = 1000

// SimResult summarizes one headless game.
type SimResult struct {
	Seed         int64
	Score        int
	MovesUsed    int
	MaxChain     int
	Hints        int
	OpeningMoves int              // matching swaps on the first board
	Reason       engine.EndReason // EndNone when the swap limit stopped the game
}

// SimOptions configures Simulate.
type SimOptions struct {
	Mode      Mode
	Games     int
	Seed      int64 // game i uses Seed+i
	SwapLimit int   // default DefaultSimSwapLimit
	Workers   int   // default GOMAXPROCS
}

// PlayHinted plays one game on cfg with the hint search as the player,
// until the engine ends it or limit swaps have been made.
func PlayHinted(cfg config.Match3Config, mode Mode, seed int64, limit int) (SimResult, error) {
	ec := EngineConfig(cfg, mode, seed)
	eng, err := engine.New(ec)
	if err != nil {
		return SimResult{}, fmt.Errorf("match3: seed %d: %w", seed, err)
	}

	res := SimResult{Seed: seed, OpeningMoves: len(engine.AllMoves(eng.Grid()))}
	unsubscribe := eng.Subscribe(func(ev engine.Event) {
		switch e := ev.(type) {
		case engine.MatchFound:
			res.MaxChain = max(res.MaxChain, e.Chain)
		case engine.HintFound:
			res.Hints++
		}
	})
	defer unsubscribe()

	for res.MovesUsed < limit && !eng.IsEnded() {
		m, ok := eng.QueryHint()
		if !ok {
			// A live game always has a move
			return res, fmt.Errorf("match3: seed %d: no hint before the game ended", seed)
		}
		sr, err := eng.AttemptSwap(m.A, m.B)
		if err != nil {
			return res, fmt.Errorf("match3: seed %d: hinted swap %v: %w", seed, m, err)
		}
		if !sr.Matched {
			return res, fmt.Errorf("match3: seed %d: hinted swap %v did not match", seed, m)
		}
		res.MovesUsed++
	}

	res.Score = eng.Score()
	res.Reason = eng.EndReason()
	return res, nil
}

// Simulate plays opts.Games independent games concurrently, each on its
// own engine. Results are in seed order.
func Simulate(ctx context.Context, cfg config.Match3Config, opts SimOptions) ([]SimResult, error) {
	if opts.Games <= 0 {
		return nil, nil
	}
	if opts.SwapLimit <= 0 {
		opts.SwapLimit = DefaultSimSwapLimit
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Mode == "" {
		opts.Mode = ModeClassic
	}

	results := make([]SimResult, opts.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i := range opts.Games {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := PlayHinted(cfg, opts.Mode, opts.Seed+int64(i), opts.SwapLimit)
			if err != nil {
				return err
			}
			results[i] = r
			if engineLogger != nil {
				engineLogger.Debug("simulated game", "seed", r.Seed, "opening", r.OpeningMoves, "score", r.Score, "moves", r.MovesUsed, "end", r.Reason)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
