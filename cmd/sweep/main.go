// Command sweep plays batches of headless minesweeper rounds with the
// logic solver and reports per-preset win statistics.
package main

import (
	"flag"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"minegrid/internal/preset"
	"minegrid/internal/session"
	"minegrid/internal/solver"
	"minegrid/pkg/grid"
)

type gameResult struct {
	status   session.Status
	guesses  int
	revealed int
}

type presetStats struct {
	name     string
	games    int
	wins     int
	losses   int
	stalled  int
	guesses  int
	revealed int
}

func (s presetStats) String() string {
	winRate := 0.0
	if s.games > 0 {
		winRate = float64(s.wins) / float64(s.games) * 100
	}
	games := max(s.games, 1)
	return fmt.Sprintf("%-14s games=%d wins=%d losses=%d stalled=%d winrate=%.1f%% guesses/game=%.2f revealed/game=%.1f",
		s.name, s.games, s.wins, s.losses, s.stalled, winRate,
		float64(s.guesses)/float64(games), float64(s.revealed)/float64(games))
}

func main() {
	presetNames := flag.String("presets", "beginner,intermediate,expert", "comma-separated preset names to sweep")
	presetFile := flag.String("preset-file", "", "optional YAML file with extra presets")
	games := flag.Int("games", 200, "rounds to play per preset")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	seed := flag.Int64("seed", 1337, "base seed; round i uses seed+i")
	verbose := flag.Bool("v", false, "log solver deductions")
	flag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if *presetFile != "" {
		if err := preset.LoadFile(*presetFile); err != nil {
			log.Fatalf("load presets: %v", err)
		}
	}

	var selected []preset.Preset
	for _, name := range strings.Split(*presetNames, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		p, ok := preset.Lookup(name)
		if !ok {
			log.Fatalf("unknown preset %q (have: %s)", name, strings.Join(preset.Names(), ", "))
		}
		selected = append(selected, p)
	}
	if len(selected) == 0 {
		log.Fatal("no presets selected")
	}

	start := time.Now()
	var all []presetStats
	for _, p := range selected {
		stats := sweepPreset(p, *games, *workers, *seed, log)
		fmt.Println(stats)
		all = append(all, stats)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].wins > all[j].wins })
	fmt.Printf("\nSwept %d presets x %d games in %s; best: %s\n",
		len(all), *games, time.Since(start).Round(time.Millisecond), all[0].name)
}

func sweepPreset(p preset.Preset, games, workers int, baseSeed int64, log *logrus.Logger) presetStats {
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int64)
	results := make(chan gameResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				results <- playRound(p, seed, log)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for i := 0; i < games; i++ {
			jobs <- baseSeed + int64(i)
		}
		close(jobs)
	}()

	stats := presetStats{name: p.Name}
	for res := range results {
		stats.games++
		stats.guesses += res.guesses
		stats.revealed += res.revealed
		switch res.status {
		case session.StatusWon:
			stats.wins++
		case session.StatusLost:
			stats.losses++
		default:
			stats.stalled++
		}
	}
	return stats
}

func playRound(p preset.Preset, seed int64, log *logrus.Logger) gameResult {
	cfg := p.Config(seed)
	s := session.New(cfg)

	// Opening click in the middle of the board, the usual human start.
	s.Reveal(grid.Point{X: cfg.Width / 2, Y: cfg.Height / 2})

	sv := solver.New(s, seed, log)
	status := sv.Play(0)

	revealed := 0
	for _, pt := range s.Field().Points() {
		if c, err := s.Field().Get(pt); err == nil && c.Visible {
			revealed++
		}
	}

	return gameResult{status: status, guesses: sv.Guesses(), revealed: revealed}
}
