package screen

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Ricochet-Tanks/internal/game"
)

const (
	feedPanelWidth = 240
	feedMaxEntries = 40
	feedLineHeight = 14
	feedRecent     = 3 // newest entries get a highlighted row

	// debug font glyphs are 6px wide; leave room for the tick and actor columns
	feedTextChars = (feedPanelWidth - 16 - 9*6) / 6
)

type feedEntry struct {
	Tick  int
	Actor string
	Text  string
}

// EventFeed is a ring buffer of round events shown beside the arena. It
// pulls from a SimLog and skips per-tick position entries.
type EventFeed struct {
	entries []feedEntry
	head    int
	count   int

	source *game.SimLog
	seen   int
}

// NewEventFeed creates an empty feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{entries: make([]feedEntry, feedMaxEntries)}
}

func (f *EventFeed) add(e feedEntry) {
	f.entries[f.head] = e
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Sync appends every entry sl gained since the previous call. Switching to
// a different log (a restarted round) starts reading it from the beginning.
func (f *EventFeed) Sync(sl *game.SimLog) {
	if sl != f.source {
		f.source = sl
		f.seen = 0
	}
	all := sl.Entries()
	for _, e := range all[f.seen:] {
		if e.Key == "position" {
			continue
		}
		f.add(feedEntry{
			Tick:  e.Tick,
			Actor: e.Actor,
			Text:  fitLine(fmt.Sprintf("%s %s", e.Key, e.Value)),
		})
	}
	f.seen = len(all)
}

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []feedEntry {
	result := make([]feedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// Draw renders the feed panel with the newest entry at the bottom.
func (f *EventFeed) Draw(dst *ebiten.Image, panelX, panelH int) {
	vector.FillRect(dst, float32(panelX), 0, feedPanelWidth, float32(panelH), color.RGBA{R: 14, G: 14, B: 18, A: 255}, false)
	vector.StrokeLine(dst, float32(panelX), 0, float32(panelX), float32(panelH), 1, color.RGBA{R: 60, G: 60, B: 80, A: 255}, false)
	ebitenutil.DebugPrintAt(dst, "EVENTS", panelX+8, 2)

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for i, e := range entries {
		if i >= len(entries)-feedRecent {
			vector.FillRect(dst, float32(panelX+2), float32(y), feedPanelWidth-4, feedLineHeight, color.RGBA{R: 30, G: 30, B: 44, A: 200}, false)
		}
		vector.FillRect(dst, float32(panelX+5), float32(y+5), 3, 5, actorColor(e.Actor), false)
		ebitenutil.DebugPrintAt(dst, fmt.Sprintf("%4d %-3s %s", e.Tick, e.Actor, e.Text), panelX+12, y)
		y += feedLineHeight
	}
}

// fitLine keeps feed text ASCII and short enough for one panel row.
func fitLine(s string) string {
	s = strings.ReplaceAll(s, "→", "->")
	if len(s) > feedTextChars {
		s = s[:feedTextChars-1] + "~"
	}
	return s
}

func actorColor(actor string) color.Color {
	switch actor {
	case "P":
		return colorPlayer
	case "--":
		return colorBarrel
	default:
		return colorEnemy
	}
}
