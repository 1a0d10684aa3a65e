package services

import (
	"fmt"
	"time"

	"github.com/abdulhameed-s/leveling_tracker/models"
)

// PoolEntry is one candidate quest in a cadence's content pool.
type PoolEntry struct {
	Title      string
	Category   string
	Cadence    string
	Difficulty string
	XP         int
}

// QuestConfig is built once at startup and passed into NewQuestService.
// It is never mutated afterwards.
type QuestConfig struct {
	RegenIntervals map[string]time.Duration
	DrawCounts     map[string]int
	Pools          map[string][]PoolEntry
}

// NewQuestConfig validates pools at load time so configuration mistakes
// surface at startup instead of silently defaulting at draw time. Entries
// missing optional fields are filled in: category "General", difficulty
// "Medium", xp 10.
func NewQuestConfig(intervals map[string]time.Duration, counts map[string]int, pools map[string][]PoolEntry) (QuestConfig, error) {
	cfg := QuestConfig{
		RegenIntervals: make(map[string]time.Duration, len(intervals)),
		DrawCounts:     make(map[string]int, len(counts)),
		Pools:          make(map[string][]PoolEntry, len(pools)),
	}

	for _, cadence := range []string{models.CadenceDaily, models.CadenceWeekly, models.CadenceMonthly} {
		interval, ok := intervals[cadence]
		if !ok || interval <= 0 {
			return QuestConfig{}, fmt.Errorf("quest config: missing or non-positive regen interval for %q", cadence)
		}
		count, ok := counts[cadence]
		if !ok || count <= 0 {
			return QuestConfig{}, fmt.Errorf("quest config: missing or non-positive draw count for %q", cadence)
		}
		cfg.RegenIntervals[cadence] = interval
		cfg.DrawCounts[cadence] = count

		entries := make([]PoolEntry, len(pools[cadence]))
		for i, entry := range pools[cadence] {
			if entry.Title == "" {
				return QuestConfig{}, fmt.Errorf("quest config: %s pool entry %d has no title", cadence, i)
			}
			if entry.Cadence == "" {
				entry.Cadence = cadence
			}
			if entry.Cadence != cadence {
				return QuestConfig{}, fmt.Errorf("quest config: %s pool entry %q tagged %q", cadence, entry.Title, entry.Cadence)
			}
			if entry.Category == "" {
				entry.Category = "General"
			}
			if entry.Difficulty == "" {
				entry.Difficulty = "Medium"
			}
			if entry.XP <= 0 {
				entry.XP = 10
			}
			entries[i] = entry
		}
		cfg.Pools[cadence] = entries
	}

	for cadence := range pools {
		if !models.ValidCadence(cadence) {
			return QuestConfig{}, fmt.Errorf("quest config: unknown cadence %q in pools", cadence)
		}
	}

	return cfg, nil
}

// DefaultQuestConfig returns the stock pools and intervals. The monthly
// interval is fixed at 30 days.
func DefaultQuestConfig() QuestConfig {
	cfg, err := NewQuestConfig(
		map[string]time.Duration{
			models.CadenceDaily:   24 * time.Hour,
			models.CadenceWeekly:  7 * 24 * time.Hour,
			models.CadenceMonthly: 30 * 24 * time.Hour,
		},
		map[string]int{
			models.CadenceDaily:   3,
			models.CadenceWeekly:  2,
			models.CadenceMonthly: 1,
		},
		map[string][]PoolEntry{
			models.CadenceDaily: {
				{Title: "Read 20 pages of a book", Category: "Academics", Difficulty: "Easy", XP: 15},
				{Title: "Practice coding for 30 minutes", Category: "Academics", Difficulty: "Medium", XP: 20},
				{Title: "Meditate for 10 minutes", Category: "Mental", Difficulty: "Easy", XP: 10},
			},
			models.CadenceWeekly: {
				{Title: "Finish one small project", Category: "Project", Difficulty: "Hard", XP: 80},
				{Title: "Workout 4 times this week", Category: "Physical", Difficulty: "Hard", XP: 70},
			},
			models.CadenceMonthly: {
				{Title: "Complete a mini-course", Category: "Academics", Difficulty: "Hard", XP: 200},
				{Title: "Read a full book", Category: "Academics", Difficulty: "Medium", XP: 150},
			},
		},
	)
	if err != nil {
		// The stock configuration is compile-time data; this cannot happen.
		panic(err)
	}
	return cfg
}
