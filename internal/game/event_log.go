package game

import (
	"fmt"
	"strings"
)

// Event categories.
const (
	CatCombat      = "combat"
	CatMining      = "mining"
	CatHangar      = "hangar"
	CatCommand     = "command"
	CatLocation    = "location"
	CatWave        = "wave"
	CatFabrication = "fabrication"
	CatSave        = "save"
	CatOutcome     = "outcome"
)

// Event is one structured simulation event.
type Event struct {
	Tick     int
	Unit     string  // label e.g. "MS1", "PF7", or "--" for global events
	Side     string  // "player", "enemy", or "--"
	Category string  // one of the Cat* constants
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0421] RC5   mining    delivered        75 M
func (e Event) String() string {
	return fmt.Sprintf("[T=%04d] %-5s %-9s %-16s %s",
		e.Tick, e.Unit, e.Category, e.Key, e.Value)
}

// EventLog collects structured events. With a positive limit the oldest
// entries are dropped once the limit is reached.
type EventLog struct {
	entries []Event
	limit   int
	dropped int
}

func NewEventLog(limit int) *EventLog {
	return &EventLog{limit: limit}
}

func (l *EventLog) add(e Event) {
	if l.limit > 0 && len(l.entries) >= l.limit {
		n := len(l.entries) - l.limit + 1
		l.entries = append(l.entries[:0], l.entries[n:]...)
		l.dropped += n
	}
	l.entries = append(l.entries, e)
}

// Add records a global event.
func (l *EventLog) Add(tick int, category, key, value string, numVal float64) {
	l.add(Event{Tick: tick, Unit: "--", Side: "--", Category: category, Key: key, Value: value, NumVal: numVal})
}

// AddUnit records an event attributed to u.
func (l *EventLog) AddUnit(tick int, u *Unit, category, key, value string, numVal float64) {
	side := "player"
	if u.Enemy {
		side = "enemy"
	}
	l.add(Event{Tick: tick, Unit: u.Label, Side: side, Category: category, Key: key, Value: value, NumVal: numVal})
}

func (l *EventLog) Entries() []Event { return l.entries }

// Dropped is the number of entries evicted by the limit.
func (l *EventLog) Dropped() int { return l.dropped }

// Filter returns entries matching category and key. Empty matches any.
func (l *EventLog) Filter(category, key string) []Event {
	var out []Event
	for _, e := range l.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterUnit returns entries for one unit label.
func (l *EventLog) FilterUnit(label string) []Event {
	var out []Event
	for _, e := range l.entries {
		if e.Unit == label {
			out = append(out, e)
		}
	}
	return out
}

func (l *EventLog) Count(category, key string) int {
	return len(l.Filter(category, key))
}

// Sum adds up NumVal over matching entries.
func (l *EventLog) Sum(category, key string) float64 {
	var s float64
	for _, e := range l.Filter(category, key) {
		s += e.NumVal
	}
	return s
}

// LastOf returns the most recent entry matching category+key.
func (l *EventLog) LastOf(category, key string) (Event, bool) {
	entries := l.Filter(category, key)
	if len(entries) == 0 {
		return Event{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry reports whether some entry matches category, key and contains
// valueSubstr in its value.
func (l *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range l.Filter(category, key) {
		if valueSubstr == "" || strings.Contains(e.Value, valueSubstr) {
			return true
		}
	}
	return false
}

// Recent returns up to n of the newest entries, oldest first.
func (l *EventLog) Recent(n int) []Event {
	if n <= 0 {
		return nil
	}
	if n > len(l.entries) {
		n = len(l.entries)
	}
	return l.entries[len(l.entries)-n:]
}

// Format returns the whole log for t.Log output.
func (l *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range l.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
