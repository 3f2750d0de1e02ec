package constraint

import (
	"encoding/json"
	"fmt"
)

// #region level

// Level ranks constraint severity. Lower value = higher priority.
type Level int

const (
	LevelFatal      Level = iota // anaphylaxis risk
	LevelMedical                 // celiac, diabetes, alpha-gal
	LevelReligious               // halal, kosher, jain
	LevelPreference              // vegan, vegetarian
)

var levelNames = map[Level]string{
	LevelFatal:      "fatal",
	LevelMedical:    "medical",
	LevelReligious:  "religious",
	LevelPreference: "preference",
}

// String returns the lowercase name of the level.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel maps a level name to its Level value.
func ParseLevel(name string) (Level, error) {
	for l, n := range levelNames {
		if n == name {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown constraint level %q", name)
}

// UnmarshalYAML parses a level from its name, for profile files.
func (l *Level) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := ParseLevel(name)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalYAML emits the level name.
func (l Level) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}

// UnmarshalJSON parses a level from its name, for fixtures and API payloads.
func (l *Level) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseLevel(name)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalJSON emits the level name.
func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// #endregion level

// #region mode

// Mode selects how a trigger term is matched against text.
type Mode string

const (
	MatchWord      Mode = "word"      // whole-token match, the default
	MatchSubstring Mode = "substring" // contiguous substring match
)

// #endregion mode

// #region definition

// Definition is an immutable constraint: a key, a severity level,
// and the trigger terms that fire it.
type Definition struct {
	Key   string   `yaml:"key" json:"key"`
	Level Level    `yaml:"level" json:"level"`
	Terms []string `yaml:"terms" json:"terms"`
	Mode  Mode     `yaml:"match_mode,omitempty" json:"match_mode,omitempty"`
}

// MatchMode returns the definition's mode, defaulting to word matching.
func (d Definition) MatchMode() Mode {
	if d.Mode == "" {
		return MatchWord
	}
	return d.Mode
}

// WithLevel returns a copy of the definition with the level replaced.
func (d Definition) WithLevel(level Level) Definition {
	d.Level = level
	return d
}

// #endregion definition
