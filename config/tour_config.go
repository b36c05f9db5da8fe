// Package config loads tour definitions from YAML or TOML files and turns them into navigator
// settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
	"github.com/Carmen-Shannon/oxy-tour/engine/navigation"
)

// ErrInvalidConfig is returned when a tour file decodes but fails validation.
var ErrInvalidConfig = errors.New("config: invalid tour")

// Format is a tour file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// TourConfig is a complete tour definition.
type TourConfig struct {
	Name   string       `yaml:"name" toml:"name"`
	Window WindowConfig `yaml:"window" toml:"window"`
	POIs   []POIConfig  `yaml:"pois" toml:"pois"`
	Path   PathConfig   `yaml:"path" toml:"path"`
	Lens   LensConfig   `yaml:"lens" toml:"lens"`
	Orbit  OrbitConfig  `yaml:"orbit" toml:"orbit"`
	Input  InputConfig  `yaml:"input" toml:"input"`
	Scroll ScrollConfig `yaml:"scroll" toml:"scroll"`
}

// WindowConfig sizes the host window.
type WindowConfig struct {
	Title  string `yaml:"title" toml:"title"`
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
}

// POIConfig is one point of interest, either cartesian (position) or spherical in degrees
// (theta, phi, radius).
type POIConfig struct {
	ID       string    `yaml:"id" toml:"id"`
	Label    string    `yaml:"label" toml:"label"`
	Position []float32 `yaml:"position,omitempty" toml:"position,omitempty"`
	Theta    float32   `yaml:"theta" toml:"theta"`
	Phi      float32   `yaml:"phi" toml:"phi"`
	Radius   float32   `yaml:"radius" toml:"radius"`
}

// PathConfig shapes the tour path. Zero values select defaults.
type PathConfig struct {
	Standoff      float32 `yaml:"standoff" toml:"standoff"`
	Bow           float32 `yaml:"bow" toml:"bow"`
	RollAmplitude float32 `yaml:"roll_amplitude" toml:"roll_amplitude"`
}

// LensConfig sets the field-of-view range in degrees.
type LensConfig struct {
	NearFov float32 `yaml:"near_fov" toml:"near_fov"`
	FarFov  float32 `yaml:"far_fov" toml:"far_fov"`
}

// OrbitConfig tunes free orbit.
type OrbitConfig struct {
	MinRadius      float32 `yaml:"min_radius" toml:"min_radius"`
	MaxRadius      float32 `yaml:"max_radius" toml:"max_radius"`
	PolarEpsilon   float32 `yaml:"polar_epsilon" toml:"polar_epsilon"`
	RotateSpeed    float32 `yaml:"rotate_speed" toml:"rotate_speed"`
	ZoomSpeed      float32 `yaml:"zoom_speed" toml:"zoom_speed"`
	PinchZoomSpeed float32 `yaml:"pinch_zoom_speed" toml:"pinch_zoom_speed"`
	KeyRotateSpeed float32 `yaml:"key_rotate_speed" toml:"key_rotate_speed"`
	KeyZoomSpeed   float32 `yaml:"key_zoom_speed" toml:"key_zoom_speed"`
	PivotDrift     *bool   `yaml:"pivot_drift" toml:"pivot_drift"`
}

// InputConfig tunes gesture classification. Durations are in milliseconds.
type InputConfig struct {
	ActivateDelayMs  int     `yaml:"activate_delay_ms" toml:"activate_delay_ms"`
	MoveSlop         float32 `yaml:"move_slop" toml:"move_slop"`
	SuppressWindowMs int     `yaml:"suppress_window_ms" toml:"suppress_window_ms"`
}

// ScrollConfig tunes scroll coupling. Durations are in milliseconds.
type ScrollConfig struct {
	Epsilon          float32 `yaml:"epsilon" toml:"epsilon"`
	ResizeDebounceMs int     `yaml:"resize_debounce_ms" toml:"resize_debounce_ms"`
	WheelStep        float32 `yaml:"wheel_step" toml:"wheel_step"`
}

// FormatForPath picks the encoding from a file extension.
//
// Parameters:
//   - path: file path ending in .yaml, .yml or .toml
//
// Returns:
//   - Format: the detected format
//   - error: if the extension is not recognized
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported tour file extension %q", filepath.Ext(path))
	}
}

// LoadTourConfig reads, decodes and validates a tour file.
//
// Parameters:
//   - path: tour file path; the extension selects YAML or TOML
//
// Returns:
//   - *TourConfig: the validated tour
//   - error: read, decode or validation error
func LoadTourConfig(path string) (*TourConfig, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tour %s: %w", path, err)
	}
	cfg, err := DecodeTourConfig(data, format)
	if err != nil {
		return nil, fmt.Errorf("load tour %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeTourConfig decodes and validates a tour document.
//
// Parameters:
//   - data: the encoded document
//   - format: its encoding
//
// Returns:
//   - *TourConfig: the validated tour
//   - error: decode or validation error
func DecodeTourConfig(data []byte, format Format) (*TourConfig, error) {
	cfg := &TourConfig{}
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported tour format %q", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the tour for problems that would stop it from mounting.
//
// Returns:
//   - error: wraps ErrInvalidConfig with every problem found
func (c *TourConfig) Validate() error {
	var problems []string

	if len(c.POIs) < 2 {
		problems = append(problems, fmt.Sprintf("need at least 2 pois, have %d", len(c.POIs)))
	}
	seen := make(map[string]bool, len(c.POIs))
	for i, p := range c.POIs {
		if p.ID == "" {
			problems = append(problems, fmt.Sprintf("poi %d has no id", i))
		} else if seen[p.ID] {
			problems = append(problems, fmt.Sprintf("poi %q is defined twice", p.ID))
		}
		seen[p.ID] = true

		if p.Position != nil && len(p.Position) != 3 {
			problems = append(problems, fmt.Sprintf("poi %q position needs 3 components, has %d", p.ID, len(p.Position)))
		}
		if p.Position == nil && p.Radius <= 0 {
			problems = append(problems, fmt.Sprintf("poi %q needs a position or a positive radius", p.ID))
		}
	}

	if c.Orbit.MinRadius < 0 || c.Orbit.MaxRadius < 0 {
		problems = append(problems, "orbit radius bounds must not be negative")
	}
	if c.Orbit.MinRadius > 0 && c.Orbit.MaxRadius > 0 && c.Orbit.MinRadius > c.Orbit.MaxRadius {
		problems = append(problems, fmt.Sprintf("orbit min_radius %.2f exceeds max_radius %.2f", c.Orbit.MinRadius, c.Orbit.MaxRadius))
	}
	if c.Lens.NearFov < 0 || c.Lens.FarFov < 0 || c.Lens.NearFov >= 180 || c.Lens.FarFov >= 180 {
		problems = append(problems, "lens fov must be in [0, 180) degrees")
	}
	if c.Input.ActivateDelayMs < 0 || c.Input.SuppressWindowMs < 0 || c.Scroll.ResizeDebounceMs < 0 {
		problems = append(problems, "durations must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Stops converts the configured points of interest into navigation POIs.
//
// Returns:
//   - []navigation.POI: points in tour order
func (c *TourConfig) Stops() []navigation.POI {
	pois := make([]navigation.POI, 0, len(c.POIs))
	for _, p := range c.POIs {
		label := common.Coalesce(p.Label, p.ID)
		if len(p.Position) == 3 {
			pois = append(pois, navigation.POI{
				ID:       p.ID,
				Label:    label,
				Position: common.Vec3{p.Position[0], p.Position[1], p.Position[2]},
			})
			continue
		}
		pois = append(pois, navigation.SphericalPOI(p.ID, label, p.Theta, p.Phi, p.Radius))
	}
	return pois
}

// RestartSections lists the sections of next that differ from c and only take effect when the
// tour restarts. Points of interest, path and lens are applied live through Navigator.SetTour.
//
// Parameters:
//   - next: the reloaded configuration
//
// Returns:
//   - []string: changed section names, empty if everything can be applied live
func (c *TourConfig) RestartSections(next *TourConfig) []string {
	var changed []string
	if !reflect.DeepEqual(c.Window, next.Window) {
		changed = append(changed, "window")
	}
	if !reflect.DeepEqual(c.Orbit, next.Orbit) {
		changed = append(changed, "orbit")
	}
	if !reflect.DeepEqual(c.Input, next.Input) {
		changed = append(changed, "input")
	}
	if !reflect.DeepEqual(c.Scroll, next.Scroll) {
		changed = append(changed, "scroll")
	}
	return changed
}

// WheelStep returns the pixels one wheel notch scrolls the host document.
func (c *TourConfig) WheelStep() float32 {
	return common.FirstPositive(c.Scroll.WheelStep, 100)
}

// PathOptions converts the path section into path builder options, defaulting unset values.
//
// Returns:
//   - []navigation.PathOption: options for navigation.BuildPath
func (c *TourConfig) PathOptions() []navigation.PathOption {
	return []navigation.PathOption{
		navigation.WithStandoff(common.FirstPositive(c.Path.Standoff, navigation.DefaultStandoff)),
		navigation.WithBow(common.FirstPositive(c.Path.Bow, navigation.DefaultBow)),
		navigation.WithRollAmplitude(common.FirstPositive(c.Path.RollAmplitude, navigation.DefaultRollAmplitude)),
	}
}

// LensRange returns the configured field of view range in degrees, defaulting unset values.
//
// Returns:
//   - navigation.Lens: the near and far field of view
func (c *TourConfig) LensRange() navigation.Lens {
	return navigation.Lens{
		NearFov: common.FirstPositive(c.Lens.NearFov, navigation.DefaultNearFov),
		FarFov:  common.FirstPositive(c.Lens.FarFov, navigation.DefaultFarFov),
	}
}

// NavigatorOptions converts the tunables into navigator options. Unset values keep the
// navigator defaults.
//
// Returns:
//   - []navigation.NavigatorOption: options for navigation.NewNavigator
func (c *TourConfig) NavigatorOptions() []navigation.NavigatorOption {
	lens := c.LensRange()
	opts := []navigation.NavigatorOption{
		navigation.WithPathOptions(c.PathOptions()...),
		navigation.WithLens(lens.NearFov, lens.FarFov),
	}

	var orbit []camera.OrbitControllerOption
	if c.Orbit.MinRadius > 0 || c.Orbit.MaxRadius > 0 {
		orbit = append(orbit, camera.WithRadiusBounds(
			common.FirstPositive(c.Orbit.MinRadius, camera.DefaultMinRadius),
			common.FirstPositive(c.Orbit.MaxRadius, camera.DefaultMaxRadius),
		))
	}
	if c.Orbit.PolarEpsilon > 0 {
		orbit = append(orbit, camera.WithPolarEpsilon(c.Orbit.PolarEpsilon))
	}
	if c.Orbit.RotateSpeed > 0 {
		orbit = append(orbit, camera.WithRotateSpeed(c.Orbit.RotateSpeed))
	}
	if c.Orbit.ZoomSpeed > 0 {
		orbit = append(orbit, camera.WithZoomSpeed(c.Orbit.ZoomSpeed))
	}
	if c.Orbit.PinchZoomSpeed > 0 {
		orbit = append(orbit, camera.WithPinchZoomSpeed(c.Orbit.PinchZoomSpeed))
	}
	if c.Orbit.KeyRotateSpeed > 0 {
		orbit = append(orbit, camera.WithKeyRotateSpeed(c.Orbit.KeyRotateSpeed))
	}
	if c.Orbit.KeyZoomSpeed > 0 {
		orbit = append(orbit, camera.WithKeyZoomSpeed(c.Orbit.KeyZoomSpeed))
	}
	if len(orbit) > 0 {
		opts = append(opts, navigation.WithOrbitOptions(orbit...))
	}
	if c.Orbit.PivotDrift != nil {
		opts = append(opts, navigation.WithPivotDrift(*c.Orbit.PivotDrift))
	}

	if c.Input.ActivateDelayMs > 0 {
		opts = append(opts, navigation.WithActivateDelay(millis(c.Input.ActivateDelayMs)))
	}
	if c.Input.MoveSlop > 0 {
		opts = append(opts, navigation.WithMoveSlop(c.Input.MoveSlop))
	}
	if c.Input.SuppressWindowMs > 0 {
		opts = append(opts, navigation.WithSuppressWindow(millis(c.Input.SuppressWindowMs)))
	}
	if c.Scroll.Epsilon > 0 {
		opts = append(opts, navigation.WithScrollEpsilon(c.Scroll.Epsilon))
	}
	if c.Scroll.ResizeDebounceMs > 0 {
		opts = append(opts, navigation.WithResizeDebounce(millis(c.Scroll.ResizeDebounceMs)))
	}
	return opts
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
