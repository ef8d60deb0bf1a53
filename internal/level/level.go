// Package level holds the static level table and the end-of-game messages.
package level

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Config is the immutable parameter set of one level.
type Config struct {
	Number          int     `yaml:"number"`
	Title           string  `yaml:"title"`
	HeartsTarget    int     `yaml:"hearts"`
	ThornsCount     int     `yaml:"thorns"`
	TimeLimit       float64 `yaml:"time_limit"`      // Seconds
	PlayerSpeed     float64 `yaml:"player_speed"`    // Units per second
	ThornSpeed      float64 `yaml:"thorn_speed"`     // Units per second
	Invulnerability float64 `yaml:"invulnerability"` // Seconds after a thorn hit
}

// Messages are the texts shown after the final level.
type Messages struct {
	Win       string `yaml:"win"`
	Signature string `yaml:"signature"`
	ShareText string `yaml:"share_text"`
	ShareHint string `yaml:"share_hint"`
}

// Celebration tunes the win effect.
type Celebration struct {
	Seconds float64 `yaml:"seconds"`
	DelayMs int     `yaml:"delay_ms"`
}

// Duration returns how long the effect runs.
func (c Celebration) Duration() time.Duration {
	return time.Duration(c.Seconds * float64(time.Second))
}

// Delay returns the pause between clearing a level and the effect starting.
func (c Celebration) Delay() time.Duration {
	return time.Duration(c.DelayMs) * time.Millisecond
}

// ErrNoLevels is returned when a table defines no levels.
var ErrNoLevels = errors.New("level: table has no levels")

// Table is a validated, read-only set of levels keyed by number.
type Table struct {
	Messages    Messages
	Celebration Celebration

	levels  map[int]Config
	numbers []int // Sorted ascending
}

// NewTable validates levels and builds a table from them.
func NewTable(levels []Config, msgs Messages, fx Celebration) (*Table, error) {
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	t := &Table{
		Messages:    msgs,
		Celebration: fx,
		levels:      make(map[int]Config, len(levels)),
	}
	for _, cfg := range levels {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		if _, dup := t.levels[cfg.Number]; dup {
			return nil, fmt.Errorf("level: duplicate level number %d", cfg.Number)
		}
		t.levels[cfg.Number] = cfg
		t.numbers = append(t.numbers, cfg.Number)
	}
	sort.Ints(t.numbers)
	if fx.Seconds < 0 || fx.DelayMs < 0 {
		return nil, fmt.Errorf("level: celebration timings must not be negative")
	}
	return t, nil
}

// Validate reports the first constraint the config violates.
func (c Config) Validate() error {
	switch {
	case c.Number < 1:
		return fmt.Errorf("level: number %d must be positive", c.Number)
	case c.HeartsTarget <= 0:
		return fmt.Errorf("level %d: hearts must be positive", c.Number)
	case c.ThornsCount < 0:
		return fmt.Errorf("level %d: thorns must not be negative", c.Number)
	case c.TimeLimit <= 0:
		return fmt.Errorf("level %d: time_limit must be positive", c.Number)
	case c.PlayerSpeed <= 0:
		return fmt.Errorf("level %d: player_speed must be positive", c.Number)
	case c.ThornSpeed < 0:
		return fmt.Errorf("level %d: thorn_speed must not be negative", c.Number)
	case c.Invulnerability < 0:
		return fmt.Errorf("level %d: invulnerability must not be negative", c.Number)
	}
	return nil
}

// Get returns the config of level n.
func (t *Table) Get(n int) (Config, bool) {
	cfg, ok := t.levels[n]
	return cfg, ok
}

// HasNext reports whether level n+1 is configured.
func (t *Table) HasNext(n int) bool {
	_, ok := t.levels[n+1]
	return ok
}

// First returns the lowest configured level number.
func (t *Table) First() int {
	return t.numbers[0]
}

// Len returns the number of configured levels.
func (t *Table) Len() int {
	return len(t.numbers)
}
