// Package sim provides a simulated robot for running programs outside
// the game: a square arena with an opponent, fuel barrels and walls.
//
// Coordinates are cells. X grows to the east and Y grows to the north;
// both range over [0, Size).
package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/naoina/toml"
	"gopkg.in/yaml.v3"
)

// Scenario defaults.
const (
	DefaultSize   = 10
	DefaultFuel   = 100
	DefaultRefuel = 20
)

// Point is an arena cell.
type Point struct {
	X int `yaml:"x" toml:"x"`
	Y int `yaml:"y" toml:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Scenario describes the starting state of a simulation. A zero Size
// means DefaultSize and an empty Heading means north; every other field
// is used as given. Start from DefaultScenario for a ready arena.
type Scenario struct {
	Size     int     `yaml:"size" toml:"size"`
	Robot    Point   `yaml:"robot" toml:"robot"`
	Heading  string  `yaml:"heading" toml:"heading"`
	Fuel     int     `yaml:"fuel" toml:"fuel"`
	Refuel   int     `yaml:"refuel" toml:"refuel"` // Fuel gained per barrel
	Opponent Point   `yaml:"opponent" toml:"opponent"`
	Barrels  []Point `yaml:"barrels" toml:"barrels"`
	Steps    int     `yaml:"steps" toml:"steps"` // Robot call limit, 0 for none
}

// DefaultScenario returns a scenario with the robot in the south-west
// corner facing north, the opponent in the opposite corner and two
// barrels.
func DefaultScenario() *Scenario {
	return &Scenario{
		Size:     DefaultSize,
		Heading:  "north",
		Fuel:     DefaultFuel,
		Refuel:   DefaultRefuel,
		Opponent: defaultOpponent(DefaultSize),
		Barrels:  defaultBarrels(DefaultSize),
	}
}

func defaultOpponent(size int) Point {
	return Point{X: size - 1, Y: size - 1}
}

func defaultBarrels(size int) []Point {
	return []Point{{X: 0, Y: size / 2}, {X: size * 2 / 5, Y: size / 5}}
}

func (s *Scenario) applyDefaults() {
	if s.Size == 0 {
		s.Size = DefaultSize
	}
	if s.Heading == "" {
		s.Heading = "north"
	}
}

// Validate reports every problem with the scenario at once.
func (s *Scenario) Validate() error {
	var issues []string
	if s.Size < 1 {
		issues = append(issues, fmt.Sprintf("size %d must be positive", s.Size))
	}
	if _, ok := parseHeading(s.Heading); !ok {
		issues = append(issues, fmt.Sprintf("unknown heading %q", s.Heading))
	}
	if s.Fuel < 0 {
		issues = append(issues, "fuel must not be negative")
	}
	if s.Steps < 0 {
		issues = append(issues, "steps must not be negative")
	}
	if !s.inside(s.Robot) {
		issues = append(issues, fmt.Sprintf("robot %v is outside the arena", s.Robot))
	}
	if !s.inside(s.Opponent) {
		issues = append(issues, fmt.Sprintf("opponent %v is outside the arena", s.Opponent))
	}
	if s.Robot == s.Opponent {
		issues = append(issues, "robot and opponent share a cell")
	}
	for i, b := range s.Barrels {
		if !s.inside(b) {
			issues = append(issues, fmt.Sprintf("barrels[%d] %v is outside the arena", i, b))
		}
	}
	if len(issues) == 0 {
		return nil
	}
	return &ScenarioError{Issues: issues}
}

func (s *Scenario) inside(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < s.Size && p.Y < s.Size
}

// ScenarioError lists validation problems.
type ScenarioError struct {
	Path   string
	Issues []string
}

func (e *ScenarioError) Error() string {
	var b strings.Builder
	b.WriteString("scenario")
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	b.WriteString(" is invalid:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// tomlSettings rejects keys that have no matching Scenario field.
var tomlSettings = toml.Config{
	NormFieldName: toml.DefaultConfig.NormFieldName,
	FieldToKey:    toml.DefaultConfig.FieldToKey,
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// LoadScenario reads a scenario file. Files ending in .toml are decoded
// as TOML, everything else as YAML.
func LoadScenario(path string) (*Scenario, error) {
	if path == "" {
		return nil, errors.New("scenario: empty path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}

	format := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		format = "toml"
	}
	s, err := ParseScenario(data, format)
	if err != nil {
		var se *ScenarioError
		if errors.As(err, &se) {
			se.Path = path
			return nil, se
		}
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// unsetOpponent marks an opponent the file did not place.
var unsetOpponent = Point{X: math.MinInt, Y: math.MinInt}

// ParseScenario decodes a scenario in the given format ("yaml" or
// "toml") and validates it. Keys the file leaves out keep the values of
// DefaultScenario; the default opponent and barrels follow the file's
// size.
func ParseScenario(data []byte, format string) (*Scenario, error) {
	s := DefaultScenario()
	s.Opponent = unsetOpponent
	s.Barrels = nil

	switch format {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case "toml":
		if err := tomlSettings.NewDecoder(bytes.NewReader(data)).Decode(s); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown scenario format %q", format)
	}

	if s.Opponent == unsetOpponent {
		s.Opponent = defaultOpponent(s.Size)
	}
	if s.Barrels == nil {
		s.Barrels = defaultBarrels(s.Size)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
