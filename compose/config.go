// Package compose loads a composition's YAML configuration and drives
// the melody/reharmonize/singable pipeline into a finished Piece.
package compose

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"reharmonia/melody"
	"reharmonia/theory"
)

// Config is the YAML-driven description of one composition run: key,
// mode, motive pattern, tension range, reharmonization granularity and
// restrictions, tempo, instrument program numbers, and output paths.
type Config struct {
	Title       string            `yaml:"title"`
	Key         string            `yaml:"key"`
	Mode        string            `yaml:"mode,omitempty"`
	Tempo       int               `yaml:"tempo,omitempty"`
	Pattern     string            `yaml:"pattern,omitempty"`
	Periods     int               `yaml:"periods,omitempty"`
	Tension     TensionRange      `yaml:"tension"`
	Reharmonize ReharmonizeConfig `yaml:"reharmonize,omitempty"`
	Instruments InstrumentConfig  `yaml:"instruments,omitempty"`
	Search      SearchConfig      `yaml:"search,omitempty"`
	Seed        int64             `yaml:"seed,omitempty"`
	Output      OutputConfig      `yaml:"output,omitempty"`
}

// TensionRange bounds the fractal tension contour a generated melody
// is fit against.
type TensionRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// ReharmonizeConfig carries the reharmonize.Options fields that make
// sense to expose in a track file: the offsets keyed map mirrors
// parser.StringOrList's "accept the natural YAML shape" idiom, just
// for a map instead of a scalar-or-list.
type ReharmonizeConfig struct {
	Granularity    Granularity       `yaml:"granularity,omitempty"`
	Restrictions   map[string]string `yaml:"restrictions,omitempty"`
	CadencePeriod  float64           `yaml:"cadence_period,omitempty"`
	CadencePenalty float64           `yaml:"cadence_penalty,omitempty"`
}

// Granularity can be unmarshaled from either a single beat count or a
// list of them, same idiom as parser.StringOrList.
type Granularity []float64

// UnmarshalYAML implements custom unmarshaling for Granularity.
func (g *Granularity) UnmarshalYAML(node *yaml.Node) error {
	var single float64
	if err := node.Decode(&single); err == nil {
		*g = Granularity{single}
		return nil
	}

	var list []float64
	if err := node.Decode(&list); err == nil {
		*g = Granularity(list)
		return nil
	}

	return nil
}

// InstrumentConfig holds the GM program number for each voice; 0 is a
// valid program (Acoustic Grand Piano), so Melody and Chords are left
// at their YAML zero value. Bass is the exception: a zero Bass is
// replaced by 33 in setDefaults, so program 0 cannot be chosen for it.
type InstrumentConfig struct {
	Melody int `yaml:"melody"`
	Chords int `yaml:"chords"`
	Bass   int `yaml:"bass"`
}

// SearchConfig overrides the optimizer's defaults; zero fields fall
// through to melody.SearchOptions.withDefaults.
type SearchConfig struct {
	Iterations      int `yaml:"iterations,omitempty"`
	MutantsPerTrial int `yaml:"mutants_per_trial,omitempty"`
	MaxFluctuations int `yaml:"max_fluctuations,omitempty"`
}

// OutputConfig names the files a composition run writes.
type OutputConfig struct {
	MIDI  string `yaml:"midi,omitempty"`
	Score string `yaml:"score,omitempty"`
}

// Load reads and parses a composition config file.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Tempo == 0 {
		c.Tempo = 120
	}
	if c.Periods == 0 {
		c.Periods = 1
	}
	if c.Pattern == "" {
		c.Pattern = string(melody.PatternAABA)
	}
	if c.Tension.Min == 0 && c.Tension.Max == 0 {
		c.Tension.Max = 1
	}
	if len(c.Reharmonize.Granularity) == 0 {
		c.Reharmonize.Granularity = Granularity{1, 2, 4}
	}
	if c.Instruments.Bass == 0 {
		c.Instruments.Bass = 33 // Fingered Bass, matching the teacher's default
	}
}

// Tonic parses Key into a theory.Note.
func (c *Config) Tonic() (theory.Note, error) {
	return theory.ParseNote(c.Key)
}

// ModeKind resolves Mode into a melody.Kind.
func (c *Config) ModeKind() melody.Kind {
	switch strings.ToLower(c.Mode) {
	case "aeolian", "natural_minor", "minor":
		return melody.Aeolian
	default:
		return melody.Ionian
	}
}

// restrictionsAsFloat converts the string-keyed YAML restriction map
// into the float64-keyed map reharmonize.Options expects.
func (c ReharmonizeConfig) restrictionsAsFloat() (map[float64]string, error) {
	if len(c.Restrictions) == 0 {
		return nil, nil
	}

	out := make(map[float64]string, len(c.Restrictions))
	for k, v := range c.Restrictions {
		f, err := strconv.ParseFloat(k, 64)
		if err != nil {
			return nil, fmt.Errorf("compose: invalid restriction offset %q: %w", k, err)
		}
		out[f] = v
	}
	return out, nil
}
