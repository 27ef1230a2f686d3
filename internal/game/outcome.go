package game

import "fmt"

// Status is the state of a round after a tick.
type Status int

const (
	StatusRunning Status = iota
	StatusQuit
	StatusDefeat
	StatusVictory
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusQuit:
		return "quit"
	case StatusDefeat:
		return "defeat"
	case StatusVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Over reports whether the round has ended.
func (s Status) Over() bool { return s != StatusRunning }

// RoundOutcome summarises a finished (or in-progress) round.
type RoundOutcome struct {
	RoundID     string
	Status      Status
	Tick        int
	Kills       int
	EnemiesLeft int
	ShotsFired  int
	EnemyShots  int
	Bounces     int
	KilledBy    string // label of the shot owner that ended the round on defeat
	Description string
}

// Outcome builds the summary for the world's current state.
func (w *World) Outcome() RoundOutcome {
	o := RoundOutcome{
		RoundID:     w.RoundID,
		Status:      w.status,
		Tick:        w.Tick,
		Kills:       w.stats.kills,
		EnemiesLeft: len(w.Enemies),
		ShotsFired:  w.stats.playerShots,
		EnemyShots:  w.stats.enemyShots,
		Bounces:     w.stats.bounces,
		KilledBy:    w.stats.killedBy,
	}
	switch w.status {
	case StatusDefeat:
		o.Description = fmt.Sprintf("player destroyed by %s at tick %d", o.KilledBy, o.Tick)
	case StatusVictory:
		o.Description = fmt.Sprintf("all %d enemies destroyed by tick %d", o.Kills, o.Tick)
	case StatusQuit:
		o.Description = fmt.Sprintf("round abandoned at tick %d", o.Tick)
	default:
		o.Description = fmt.Sprintf("in progress: %d enemies left", o.EnemiesLeft)
	}
	return o
}
