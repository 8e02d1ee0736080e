package board

import (
	"errors"
	"fmt"
	"sort"
)

// ErrConfig is matched by every *ConfigError.
var ErrConfig = errors.New("invalid game configuration")

// ConfigError reports a level or face catalog that cannot produce a board.
type ConfigError struct {
	Level  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Level == "" {
		return fmt.Sprintf("%v: %s", ErrConfig, e.Reason)
	}
	return fmt.Sprintf("%v: level %q: %s", ErrConfig, e.Level, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfig
}

// Level is the immutable shape of a board.
type Level struct {
	Name       string
	GroupSize  int // cards that must be selected together to clear a group
	TotalCards int // must be a multiple of GroupSize
}

// GroupCount is the number of distinct identities on the board.
func (l Level) GroupCount() int {
	if l.GroupSize <= 0 {
		return 0
	}
	return l.TotalCards / l.GroupSize
}

// Validate checks the level's own arithmetic. Catalog size is checked by Build.
func (l Level) Validate() error {
	if l.GroupSize < 2 {
		return &ConfigError{Level: l.Name, Reason: fmt.Sprintf("group size %d, need at least 2", l.GroupSize)}
	}
	if l.TotalCards <= 0 {
		return &ConfigError{Level: l.Name, Reason: fmt.Sprintf("total cards %d, need at least one group", l.TotalCards)}
	}
	if l.TotalCards%l.GroupSize != 0 {
		return &ConfigError{Level: l.Name, Reason: fmt.Sprintf("%d cards do not split into groups of %d", l.TotalCards, l.GroupSize)}
	}
	return nil
}

// Key identifies the level shape, used to group score history.
func (l Level) Key() string {
	return fmt.Sprintf("%s/%dx%d", l.Name, l.GroupSize, l.TotalCards)
}

var presets = map[string]Level{
	"1": {Name: "Level 1", GroupSize: 2, TotalCards: 4},
	"2": {Name: "Level 2", GroupSize: 2, TotalCards: 12},
	"3": {Name: "Level 3", GroupSize: 3, TotalCards: 18},
	"4": {Name: "Level 4", GroupSize: 2, TotalCards: 20},
}

// Preset looks up a built-in level by its short name ("1".."4").
func Preset(name string) (Level, error) {
	l, ok := presets[name]
	if !ok {
		return Level{}, &ConfigError{Level: name, Reason: fmt.Sprintf("unknown preset, choose one of %v", PresetNames())}
	}
	return l, nil
}

// PresetNames lists the built-in level names in order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
