package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/matrix-arcade/internal/core"
	"github.com/vovakirdan/matrix-arcade/internal/input/evdev"
)

func TestDefaultProfiles(t *testing.T) {
	set := DefaultProfiles()
	assert.Equal(t, []string{"gamesir-nova", "xbox"}, set.Names())

	assert.Equal(t, "gamesir-nova", set.Match("GameSir-Nova Lite").Name)
	assert.Equal(t, "xbox", set.Match("Microsoft X-Box 360 pad").Name)
	assert.Equal(t, "xbox", set.Match("Generic USB Joystick").Name, "unknown pads fall back to xbox")
}

func TestParseProfileYAML(t *testing.T) {
	data := []byte(`
name: retro
match: [retro]
deadzone: 0.1
buttons:
  BTN_EAST: A
  "0x130": B
sticks:
  - x: ABS_X
    y: ABS_Y
    invert_y: true
`)
	p, err := ParseProfile(data, "yaml")
	require.NoError(t, err)
	assert.Equal(t, core.ButtonA, p.buttons[evdev.BtnEast])
	assert.Equal(t, core.ButtonB, p.buttons[evdev.BtnSouth])
	require.Len(t, p.sticks, 1)
	assert.True(t, p.sticks[0].invertY)
	assert.False(t, p.hasHat)
}

func TestParseProfileTOML(t *testing.T) {
	data := []byte(`
name = "arcade-stick"
match = ["stick"]
deadzone = 0.3

[buttons]
BTN_SOUTH = "A"

[hat]
x = "ABS_HAT0X"
y = "ABS_HAT0Y"
`)
	p, err := ParseProfile(data, "toml")
	require.NoError(t, err)
	assert.Equal(t, 0.3, p.Deadzone)
	assert.True(t, p.hasHat)
	assert.Equal(t, evdev.AbsHat0X, p.hatX)
	assert.True(t, p.Matches("Arcade STICK v2"))
}

func TestParseProfileErrors(t *testing.T) {
	cases := map[string]string{
		"no name":        "deadzone: 0.1\n",
		"bad deadzone":   "name: x\ndeadzone: 1.5\n",
		"unknown code":   "name: x\nbuttons:\n  BTN_NOPE: A\n",
		"unknown button": "name: x\nbuttons:\n  BTN_SOUTH: Turbo\n",
		"bad stick":      "name: x\nsticks:\n  - x: ABS_X\n    y: ABS_WHAT\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseProfile([]byte(data), "yaml")
			assert.Error(t, err)
		})
	}

	_, err := ParseProfile([]byte("name: x"), "json")
	assert.Error(t, err)
}

func TestLoadProfilesOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	custom := "name: xbox\nmatch: [xbox]\ndeadzone: 0.05\nbuttons:\n  BTN_SOUTH: B\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "xbox.yml"), []byte(custom), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	set, err := LoadProfiles(dir)
	require.NoError(t, err)
	p, ok := set.Get("xbox")
	require.True(t, ok)
	assert.Equal(t, 0.05, p.Deadzone)
	assert.Len(t, set.Names(), 2)
}

func TestLoadProfilesMissingDir(t *testing.T) {
	set, err := LoadProfiles(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.NotNil(t, set.Match("anything"))
}

func TestLoadProfilesInvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.toml"), []byte("name = "), 0o644))
	_, err := LoadProfiles(dir)
	assert.Error(t, err)
}
