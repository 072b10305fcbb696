// Package prefs loads the user preferences of the canvas overlay: handle
// size, pick tolerance, grid display defaults and the log level.
//
// Preferences are read from a TOML or YAML file, chosen by extension, and
// then overridden from OVERLAY_* environment variables:
//
//	handle_size = 4
//	pick_tolerance = 2
//
//	[grid]
//	xray = true
//	spacing = 10
//
// is equivalent to OVERLAY_HANDLE_SIZE=4 OVERLAY_PICK_TOLERANCE=2
// OVERLAY_GRID_XRAY=true OVERLAY_GRID_SPACING=10.
package prefs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of the environment overrides.
const EnvPrefix = "OVERLAY"

// Handle size indices accepted by HandleSize.
const (
	MinHandleSize = 1
	MaxHandleSize = 7
)

// ErrUnknownFormat is returned by Load for files that are neither TOML nor
// YAML.
var ErrUnknownFormat = errors.New("prefs: unknown file format")

// Grid holds the display defaults of document grids.
type Grid struct {
	XRay                    bool    `toml:"xray" yaml:"xray" envconfig:"XRAY"`
	NoEmphasisWhenZoomedOut bool    `toml:"no_emphasis_when_zoomed_out" yaml:"no_emphasis_when_zoomed_out" envconfig:"NO_EMPHASIS_WHEN_ZOOMED_OUT"`
	Color                   string  `toml:"color" yaml:"color" envconfig:"COLOR"`
	EmpColor                string  `toml:"emp_color" yaml:"emp_color" envconfig:"EMP_COLOR"`
	EmpSpacing              int     `toml:"emp_spacing" yaml:"emp_spacing" envconfig:"EMP_SPACING"`
	Spacing                 float64 `toml:"spacing" yaml:"spacing" envconfig:"SPACING"`
	Dotted                  bool    `toml:"dotted" yaml:"dotted" envconfig:"DOTTED"`
	SnapTolerance           float64 `toml:"snap_tolerance" yaml:"snap_tolerance" envconfig:"SNAP_TOLERANCE"`
}

// Preferences are the user settings that affect the overlay.
type Preferences struct {
	// HandleSize is the handle size index, 1 to 7.
	HandleSize int `toml:"handle_size" yaml:"handle_size" envconfig:"HANDLE_SIZE"`

	// PickTolerance is the picking distance in canvas units.
	PickTolerance float64 `toml:"pick_tolerance" yaml:"pick_tolerance" envconfig:"PICK_TOLERANCE"`

	// LogLevel is a slog level name: debug, info, warn or error.
	LogLevel string `toml:"log_level" yaml:"log_level" envconfig:"LOG_LEVEL"`

	Grid Grid `toml:"grid" yaml:"grid" envconfig:"GRID"`
}

// Defaults returns the preferences used when nothing is configured.
func Defaults() Preferences {
	return Preferences{
		HandleSize: 3,
		LogLevel:   "info",
		Grid: Grid{
			Color:         "#3f3fff20",
			EmpColor:      "#3f3fff40",
			EmpSpacing:    5,
			Spacing:       1,
			SnapTolerance: 10,
		},
	}
}

// Load reads the preferences at path over the defaults and applies the
// environment overrides. An empty path reads only the environment.
func Load(path string) (Preferences, error) {
	p := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return p, fmt.Errorf("prefs: read %s: %w", path, err)
		}
		if err := decode(path, data, &p); err != nil {
			return p, err
		}
	}
	if err := envconfig.Process(EnvPrefix, &p); err != nil {
		return p, fmt.Errorf("prefs: environment: %w", err)
	}
	p.normalize()
	return p, nil
}

func decode(path string, data []byte, p *Preferences) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, p)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, p)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return fmt.Errorf("prefs: parse %s: %w", path, err)
	}
	return nil
}

// normalize clamps out-of-range values, logging each change.
func (p *Preferences) normalize() {
	if p.HandleSize < MinHandleSize || p.HandleSize > MaxHandleSize {
		clamped := min(max(p.HandleSize, MinHandleSize), MaxHandleSize)
		logger().Warn("prefs: handle size out of range", "value", p.HandleSize, "using", clamped)
		p.HandleSize = clamped
	}
	if p.PickTolerance < 0 {
		logger().Warn("prefs: negative pick tolerance", "value", p.PickTolerance)
		p.PickTolerance = 0
	}
	if p.Grid.SnapTolerance < 0 {
		logger().Warn("prefs: negative snap tolerance", "value", p.Grid.SnapTolerance)
		p.Grid.SnapTolerance = 0
	}
	if p.Grid.EmpSpacing < 1 {
		p.Grid.EmpSpacing = 1
	}
	if p.Grid.Spacing <= 0 {
		p.Grid.Spacing = 1
	}
}

// Level returns LogLevel as a slog level. Unknown names are an error.
func (p Preferences) Level() (slog.Level, error) {
	var l slog.Level
	if p.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(p.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("prefs: log level: %w", err)
	}
	return l, nil
}
