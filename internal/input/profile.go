package input

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/matrix-arcade/internal/core"
	"github.com/vovakirdan/matrix-arcade/internal/input/evdev"
)

//go:embed profiles/*
var builtinProfiles embed.FS

// FallbackProfile is used for gamepads no profile matches.
const FallbackProfile = "xbox"

// Profile maps one controller model's raw codes to logical buttons.
type Profile struct {
	Name     string            `yaml:"name" toml:"name"`
	Match    []string          `yaml:"match" toml:"match"`
	Deadzone float64           `yaml:"deadzone" toml:"deadzone"`
	Buttons  map[string]string `yaml:"buttons" toml:"buttons"`
	Sticks   []StickMapping    `yaml:"sticks" toml:"sticks"`
	Hat      HatMapping        `yaml:"hat" toml:"hat"`

	buttons map[uint16]core.Button
	sticks  []stickCodes
	hatX    uint16
	hatY    uint16
	hasHat  bool
}

// StickMapping names the two axes of an analog stick.
type StickMapping struct {
	X       string `yaml:"x" toml:"x"`
	Y       string `yaml:"y" toml:"y"`
	InvertY bool   `yaml:"invert_y" toml:"invert_y"`
}

// HatMapping names the axes of a d-pad reported as a hat switch.
type HatMapping struct {
	X string `yaml:"x" toml:"x"`
	Y string `yaml:"y" toml:"y"`
}

type stickCodes struct {
	x, y    uint16
	invertY bool
}

// ParseProfile decodes a profile in the given format ("yaml" or "toml").
func ParseProfile(data []byte, format string) (*Profile, error) {
	var p Profile
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("input: parse yaml profile: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("input: parse toml profile: %w", err)
		}
	default:
		return nil, fmt.Errorf("input: unknown profile format %q", format)
	}
	if err := p.compile(); err != nil {
		return nil, err
	}
	return &p, nil
}

// compile resolves code names so lookups at poll time are map hits.
func (p *Profile) compile() error {
	if p.Name == "" {
		return fmt.Errorf("input: profile without a name")
	}
	if p.Deadzone < 0 || p.Deadzone >= 1 {
		return fmt.Errorf("input: profile %s: deadzone %.2f out of range", p.Name, p.Deadzone)
	}

	p.buttons = make(map[uint16]core.Button, len(p.Buttons))
	for codeName, buttonName := range p.Buttons {
		code, err := evdev.ParseCode(codeName)
		if err != nil {
			return fmt.Errorf("input: profile %s: %w", p.Name, err)
		}
		b, ok := core.ParseButton(buttonName)
		if !ok {
			return fmt.Errorf("input: profile %s: unknown button %q", p.Name, buttonName)
		}
		p.buttons[code] = b
	}

	p.sticks = p.sticks[:0]
	for _, s := range p.Sticks {
		x, err := evdev.ParseCode(s.X)
		if err != nil {
			return fmt.Errorf("input: profile %s: %w", p.Name, err)
		}
		y, err := evdev.ParseCode(s.Y)
		if err != nil {
			return fmt.Errorf("input: profile %s: %w", p.Name, err)
		}
		p.sticks = append(p.sticks, stickCodes{x: x, y: y, invertY: s.InvertY})
	}

	p.hasHat = false
	if p.Hat.X != "" && p.Hat.Y != "" {
		x, err := evdev.ParseCode(p.Hat.X)
		if err != nil {
			return fmt.Errorf("input: profile %s: %w", p.Name, err)
		}
		y, err := evdev.ParseCode(p.Hat.Y)
		if err != nil {
			return fmt.Errorf("input: profile %s: %w", p.Name, err)
		}
		p.hatX, p.hatY, p.hasHat = x, y, true
	}
	return nil
}

// Matches reports whether the device name contains one of the profile's
// match strings, ignoring case.
func (p *Profile) Matches(deviceName string) bool {
	name := strings.ToLower(deviceName)
	for _, m := range p.Match {
		if m != "" && strings.Contains(name, strings.ToLower(m)) {
			return true
		}
	}
	return false
}

// ProfileSet holds the known profiles in match order.
type ProfileSet struct {
	profiles []*Profile
}

// DefaultProfiles returns the profiles compiled into the binary.
func DefaultProfiles() *ProfileSet {
	set := &ProfileSet{}
	entries, err := builtinProfiles.ReadDir("profiles")
	if err != nil {
		panic(fmt.Sprintf("input: embedded profiles: %v", err))
	}
	for _, e := range entries {
		data, err := builtinProfiles.ReadFile("profiles/" + e.Name())
		if err != nil {
			panic(fmt.Sprintf("input: embedded profile %s: %v", e.Name(), err))
		}
		p, err := ParseProfile(data, formatOf(e.Name()))
		if err != nil {
			panic(fmt.Sprintf("input: embedded profile %s: %v", e.Name(), err))
		}
		set.Add(p)
	}
	return set
}

// LoadProfiles returns the built-in profiles overlaid with every *.yaml,
// *.yml and *.toml file in dir. A missing dir is not an error.
func LoadProfiles(dir string) (*ProfileSet, error) {
	set := DefaultProfiles()
	if dir == "" {
		return set, nil
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return set, nil
	}
	if err != nil {
		return set, fmt.Errorf("input: read profiles %s: %w", dir, err)
	}
	for _, e := range entries {
		format := formatOf(e.Name())
		if e.IsDir() || format == "" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return set, fmt.Errorf("input: read profile %s: %w", path, err)
		}
		p, err := ParseProfile(data, format)
		if err != nil {
			return set, fmt.Errorf("%s: %w", path, err)
		}
		set.Add(p)
	}
	return set, nil
}

func formatOf(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	}
	return ""
}

// Add inserts p, replacing a profile with the same name. User profiles are
// matched before built-in ones.
func (s *ProfileSet) Add(p *Profile) {
	for i, existing := range s.profiles {
		if existing.Name == p.Name {
			s.profiles = append(s.profiles[:i], s.profiles[i+1:]...)
			break
		}
	}
	s.profiles = append([]*Profile{p}, s.profiles...)
}

// Get returns the profile with the given name.
func (s *ProfileSet) Get(name string) (*Profile, bool) {
	for _, p := range s.profiles {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Match returns the profile for a device name, falling back to the xbox
// profile.
func (s *ProfileSet) Match(deviceName string) *Profile {
	for _, p := range s.profiles {
		if p.Matches(deviceName) {
			return p
		}
	}
	if p, ok := s.Get(FallbackProfile); ok {
		return p
	}
	if len(s.profiles) > 0 {
		return s.profiles[len(s.profiles)-1]
	}
	return nil
}

// Names returns the profile names, sorted.
func (s *ProfileSet) Names() []string {
	names := make([]string, 0, len(s.profiles))
	for _, p := range s.profiles {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}
