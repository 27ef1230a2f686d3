package main

import (
	"flag"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Garsondee/Ricochet-Tanks/internal/config"
	"github.com/Garsondee/Ricochet-Tanks/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64
	outcome  game.RoundOutcome

	firstShotTick   int
	firstBounceTick int
	firstKillTick   int

	redirects int
	expired   int
	volleys   int
	killers   map[string]int // enemy label -> rounds that label ended
}

type aggregate struct {
	runs     int
	wins     int
	defeats  int
	timeouts int

	kills      int
	shotsFired int
	enemyShots int
	bounces    int
	redirects  int

	endTicks  []int
	killTicks []int
	killers   map[string]int
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var configPath string

	flag.IntVar(&runs, "runs", 5, "number of headless rounds")
	flag.IntVar(&ticks, "ticks", 3600, "tick limit per round")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&configPath, "config", "", "optional TOML file overriding the default arena and rules")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal("Loading config failed", "error", err)
	}
	rules := cfg.Rules()

	fmt.Printf("=== Headless Round Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d enemies=%d obstacles=%d\n\n",
		runs, ticks, seedBase, seedStep, len(rules.EnemySpawns), len(rules.Obstacles))

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runRound(i+1, seed, ticks, rules)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(summarize(all))
}

// runRound plays one round with the autopilot at the controls.
func runRound(runIndex int, seed int64, ticks int, rules game.Rules) runStats {
	ts := game.NewTestSim(
		game.WithRules(rules),
		game.WithSeed(seed),
	)
	pilot := game.NewAutopilot(rand.New(rand.NewSource(seed ^ 0x5eed))) // #nosec G404 -- deterministic report
	ts.Input = func(ts *game.TestSim) game.Input {
		return pilot.Next(ts.World)
	}
	ts.RunTicks(ticks)

	entries := ts.SimLog.Entries()
	o := ts.World.Outcome()
	rs := runStats{
		runIndex:        runIndex,
		seed:            seed,
		outcome:         o,
		firstShotTick:   firstTick(entries, "P", "shot", "fired"),
		firstBounceTick: firstTick(entries, "P", "shot", "bounce"),
		firstKillTick:   firstTick(entries, "", "enemy", "destroyed"),
		redirects:       ts.SimLog.CountCategory("enemy", "redirect"),
		expired:         ts.SimLog.CountCategory("shot", "expired"),
		volleys:         ts.SimLog.CountCategory("enemy", "volley"),
		killers:         map[string]int{},
	}
	if o.Status == game.StatusDefeat {
		rs.killers[o.KilledBy]++
	}
	return rs
}

// firstTick returns the tick of the first entry matching category/key, and
// actor when it is non-empty, or -1.
func firstTick(entries []game.SimLogEntry, actor, category, key string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if actor == "" || e.Actor == actor {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	o := rs.outcome
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("result: %s at tick %d  (%s)\n", o.Status, o.Tick, o.Description)
	fmt.Printf("phase_markers: first_shot=%d first_bounce=%d first_kill=%d\n",
		rs.firstShotTick, rs.firstBounceTick, rs.firstKillTick)
	fmt.Printf("event_totals: shots=%d enemy_shots=%d bounces=%d expired=%d redirects=%d volleys=%d\n",
		o.ShotsFired, o.EnemyShots, o.Bounces, rs.expired, rs.redirects, rs.volleys)
	fmt.Printf("kills=%d enemies_left=%d accuracy=%s\n", o.Kills, o.EnemiesLeft, ratioString(o.Kills, o.ShotsFired))
	fmt.Println()
}

func summarize(all []runStats) aggregate {
	agg := aggregate{runs: len(all), killers: map[string]int{}}
	for _, rs := range all {
		o := rs.outcome
		switch o.Status {
		case game.StatusVictory:
			agg.wins++
		case game.StatusDefeat:
			agg.defeats++
		default:
			agg.timeouts++
		}
		agg.kills += o.Kills
		agg.shotsFired += o.ShotsFired
		agg.enemyShots += o.EnemyShots
		agg.bounces += o.Bounces
		agg.redirects += rs.redirects
		agg.endTicks = append(agg.endTicks, o.Tick)
		if rs.firstKillTick >= 0 {
			agg.killTicks = append(agg.killTicks, rs.firstKillTick)
		}
		for label, n := range rs.killers {
			agg.killers[label] += n
		}
	}
	return agg
}

func printAggregate(agg aggregate) {
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d wins=%d defeats=%d timeouts=%d win_rate=%s\n",
		agg.runs, agg.wins, agg.defeats, agg.timeouts, ratioString(agg.wins, agg.runs))
	fmt.Printf("avg_per_run: kills=%.1f shots=%.1f enemy_shots=%.1f bounces=%.1f redirects=%.1f\n",
		avg(agg.kills, agg.runs), avg(agg.shotsFired, agg.runs), avg(agg.enemyShots, agg.runs),
		avg(agg.bounces, agg.runs), avg(agg.redirects, agg.runs))
	fmt.Printf("avg_ticks: round_end=%s first_kill=%s\n", avgTickString(agg.endTicks), avgTickString(agg.killTicks))
	fmt.Printf("accuracy=%s\n", ratioString(agg.kills, agg.shotsFired))
	fmt.Printf("defeated_by: %s\n", joinCounts(agg.killers))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func ratioString(num, den int) string {
	if den <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.0f%%", float64(num)/float64(den)*100)
}

func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(counts))
	for k := range counts {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	parts := make([]string, 0, len(labels))
	for _, k := range labels {
		parts = append(parts, fmt.Sprintf("%s(%d)", k, counts[k]))
	}
	return strings.Join(parts, ",")
}
