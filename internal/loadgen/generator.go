package loadgen

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/okian/courtzones/internal/domain/model"
	"github.com/okian/courtzones/internal/domain/zone"
	"github.com/okian/courtzones/pkg/logger"
)

// Shots per synthetic game; the game id advances after this many events.
const shotsPerGame = 80

// band is one shot distance family with its share of attempts and its make
// rate for an average shooter. Distances are in tenths of a foot.
type band struct {
	weight     int
	minR, maxR float64
	makeRate   float64
	corner     bool
	backcourt  bool
}

var bands = []band{
	{weight: 34, minR: 0, maxR: 70, makeRate: 0.63},
	{weight: 10, minR: 80, maxR: 155, makeRate: 0.41},
	{weight: 14, minR: 165, maxR: 230, makeRate: 0.40},
	{weight: 30, minR: 240, maxR: 270, makeRate: 0.36},
	{weight: 10, makeRate: 0.39, corner: true},
	{weight: 2, makeRate: 0.03, backcourt: true},
}

var bandWeight = func() int {
	total := 0
	for _, b := range bands {
		total += b.weight
	}
	return total
}()

// Generator produces plausible shot records. It is not safe for concurrent
// use; give each goroutine its own.
type Generator struct {
	rng   *rand.Rand
	game  int
	event int
}

// NewGenerator returns a deterministic generator for seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Skill draws a shooter quality multiplier around 1.
func (g *Generator) Skill() float64 {
	return 0.8 + 0.4*g.rng.Float64()
}

// Shots generates n shots for a shooter of the given skill. Tags are derived
// from the location so every shot classifies consistently.
func (g *Generator) Shots(n int, skill float64) []model.ShotRecord {
	out := make([]model.ShotRecord, n)
	for i := range out {
		out[i] = g.shot(skill)
	}
	return out
}

func (g *Generator) shot(skill float64) model.ShotRecord {
	b := g.pick()
	var x, y float64
	switch {
	case b.corner:
		x = 222 + 18*g.rng.Float64()
		if g.rng.IntN(2) == 0 {
			x = -x
		}
		y = -40 + 125*g.rng.Float64()
	case b.backcourt:
		x = -250 + 500*g.rng.Float64()
		y = 430 + 300*g.rng.Float64()
	default:
		r := b.minR + (b.maxR-b.minR)*g.rng.Float64()
		theta := (g.rng.Float64() - 0.5) * math.Pi * 0.95
		x, y = r*math.Sin(theta), r*math.Cos(theta)
	}

	t := zone.InferTags(x, y)
	g.event++
	if g.event%shotsPerGame == 0 {
		g.game++
	}
	return model.ShotRecord{
		X:        math.Round(x),
		Y:        math.Round(y),
		Made:     g.rng.Float64() < math.Min(b.makeRate*skill, 0.95),
		RangeTag: t.Range.String(),
		AreaTag:  t.Area.String(),
		BasicTag: t.Basic.String(),
		GameID:   fmt.Sprintf("SYN%07d", g.game),
		EventID:  g.event,
	}
}

func (g *Generator) pick() band {
	n := g.rng.IntN(bandWeight)
	for _, b := range bands {
		if n < b.weight {
			return b
		}
		n -= b.weight
	}
	return bands[0]
}

// generateRequests builds one chart request per subject concurrently. Each
// worker owns a generator seeded from config.Seed and its index.
func generateRequests(ctx context.Context, config *Config, baseline []model.BaselineRecord, stats *Stats) ([]ChartRequest, error) {
	logger.Get().Info(ctx, "generating subjects", logger.Int("subjects", config.Subjects))

	type result struct {
		index int
		req   ChartRequest
		err   error
	}

	reqs := make([]ChartRequest, config.Subjects)
	resultChan := make(chan result, config.Subjects)

	workerCount := min(config.Workers, config.Subjects)
	perWorker := config.Subjects / workerCount

	for w := 0; w < workerCount; w++ {
		start := w * perWorker
		end := start + perWorker
		if w == workerCount-1 {
			end = config.Subjects
		}

		go func(w, start, end int) {
			gen := NewGenerator(config.Seed + uint64(w) + 1)
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					resultChan <- result{index: i, err: err}
					return
				}
				resultChan <- result{index: i, req: ChartRequest{
					SubjectID: fmt.Sprintf("synthetic-%05d", i),
					Shots:     gen.Shots(config.ShotsPerSubject, gen.Skill()),
					Baseline:  baseline,
				}}
			}
		}(w, start, end)
	}

	for i := 0; i < config.Subjects; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during generation: %w", ctx.Err())
		case r := <-resultChan:
			if r.err != nil {
				return nil, fmt.Errorf("generate subject %d: %w", r.index, r.err)
			}
			reqs[r.index] = r.req
		}
	}

	stats.SubjectsGenerated = len(reqs)
	logger.Get().Info(ctx, "generated subjects", logger.Int("count", len(reqs)))
	return reqs, nil
}
