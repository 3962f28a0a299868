// Package config provides YAML-based configuration loading for the arcade
// and the difficulty progression shared by the game modules.
package config

// Config is the complete runtime configuration.
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Engine   EngineConfig   `yaml:"engine"`
	Input    InputConfig    `yaml:"input"`
	Audio    AudioConfig    `yaml:"audio"`
	Storage  StorageConfig  `yaml:"storage"`
	Session  SessionConfig  `yaml:"session"`
	Spectate SpectateConfig `yaml:"spectate"`
	Log      LogConfig      `yaml:"log"`
	Games    GamesConfig    `yaml:"games"`
}

// DisplayConfig selects and tunes the output sinks.
type DisplayConfig struct {
	Framebuffer     bool   `yaml:"framebuffer"`
	FramebufferPath string `yaml:"framebuffer_path"`
	Terminal        bool   `yaml:"terminal"`
	LitColor        string `yaml:"lit_color"`    // lipgloss colour for lit pixels
	AccentColor     string `yaml:"accent_color"` // lipgloss colour for accent pixels
}

// EngineConfig tunes the main loop.
type EngineConfig struct {
	TickRate int   `yaml:"tick_rate"`
	Seed     int64 `yaml:"seed"` // 0 = seed from the clock
	MaxTicks int   `yaml:"max_ticks"`
}

// InputConfig tunes device discovery.
type InputConfig struct {
	DeviceGlob     string `yaml:"device_glob"`
	ProfilesDir    string `yaml:"profiles_dir"`
	Grab           bool   `yaml:"grab"`
	TerminalHoldMS int    `yaml:"terminal_hold_ms"`
	RescanEvery    int    `yaml:"rescan_every"` // ticks between device rescans
}

// AudioConfig tunes effects and speech.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Speech     bool    `yaml:"speech"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sample_rate"`
	EspeakPath string  `yaml:"espeak_path"`
}

// StorageConfig points at the score database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// SessionConfig holds the menu and game-over timings, in ticks.
type SessionConfig struct {
	GameOverTimeout int `yaml:"game_over_timeout"`
	DrawIdleTimeout int `yaml:"draw_idle_timeout"`
	SceneTicks      int `yaml:"scene_ticks"`
}

// SpectateConfig configures the read-only SSH mirror.
type SpectateConfig struct {
	Address     string `yaml:"address"` // empty disables the server
	HostKeyPath string `yaml:"host_key_path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // used when the terminal owns stderr
}

// GamesConfig groups the per-module tunables.
type GamesConfig struct {
	Dino  DinoConfig  `yaml:"dino"`
	Pong  PongConfig  `yaml:"pong"`
	Snake SnakeConfig `yaml:"snake"`
	Draw  DrawConfig  `yaml:"draw"`
}

// DinoConfig contains all configuration for the Dino runner.
type DinoConfig struct {
	DuckEnabled bool             `yaml:"duck_enabled"`
	Physics     DinoPhysics      `yaml:"physics"`
	Obstacles   DinoObstacles    `yaml:"obstacles"`
	Player      DinoPlayer       `yaml:"player"`
	Scoring     DinoScoring      `yaml:"scoring"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
}

// DinoPhysics defines the jump arc and scroll speed.
type DinoPhysics struct {
	JumpTicks  int     `yaml:"jump_ticks"`
	JumpHeight float64 `yaml:"jump_height"`
	DuckTicks  int     `yaml:"duck_ticks"`
	BaseSpeed  float64 `yaml:"base_speed"`
	MaxSpeed   float64 `yaml:"max_speed"`
}

// DinoObstacles defines spawn timing in ticks at zero and full difficulty.
type DinoObstacles struct {
	SpawnMin     int `yaml:"spawn_min"`
	SpawnMax     int `yaml:"spawn_max"`
	FastSpawnMin int `yaml:"fast_spawn_min"`
	FastSpawnMax int `yaml:"fast_spawn_max"`
	RampScore    int `yaml:"ramp_score"` // score at which the fast interval applies
	FirstSpawn   int `yaml:"first_spawn"`
}

// DinoPlayer defines the player sprite placement.
type DinoPlayer struct {
	X           int `yaml:"x"`
	Width       int `yaml:"width"`
	StandHeight int `yaml:"stand_height"`
	DuckHeight  int `yaml:"duck_height"`
}

// DinoScoring defines points per passed obstacle and the milestone period.
type DinoScoring struct {
	PassPoints int `yaml:"pass_points"`
	Milestone  int `yaml:"milestone"`
}

// PongConfig contains all configuration for Pong.
type PongConfig struct {
	Paddle     PongPaddle       `yaml:"paddle"`
	Ball       PongBall         `yaml:"ball"`
	CPU        PongCPU          `yaml:"cpu"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PongPaddle defines paddle geometry and speed in pixels per tick.
type PongPaddle struct {
	Height   int     `yaml:"height"`
	Inset    int     `yaml:"inset"`
	Speed    float64 `yaml:"speed"`
	Deadzone float64 `yaml:"deadzone"`
}

// PongBall defines ball speeds in pixels per tick.
type PongBall struct {
	Speed      float64 `yaml:"speed"`
	MaxSpeed   float64 `yaml:"max_speed"`
	MaxDeflect float64 `yaml:"max_deflect"` // vertical speed at the paddle tip
	ServeDelay int     `yaml:"serve_delay"`
}

// PongCPU tunes the paddle used when a side has no player.
type PongCPU struct {
	Speed float64 `yaml:"speed"`
	Slack float64 `yaml:"slack"` // tolerance before the paddle reacts
}

// SnakeConfig contains all configuration for Snake.
type SnakeConfig struct {
	CellSize      int              `yaml:"cell_size"`
	InitialLength int              `yaml:"initial_length"`
	StepTicks     int              `yaml:"step_ticks"`
	MinStepTicks  int              `yaml:"min_step_ticks"`
	Deadzone      float64          `yaml:"deadzone"`
	Difficulty    DifficultyConfig `yaml:"difficulty"`
}

// DrawConfig contains all configuration for Draw mode.
type DrawConfig struct {
	MaxSpeed   float64 `yaml:"max_speed"`  // pixels per tick at full deflection
	RampTicks  int     `yaml:"ramp_ticks"` // ticks to reach a new target velocity
	Deadzone   float64 `yaml:"deadzone"`
	BlinkTicks int     `yaml:"blink_ticks"`
	UndoLimit  int     `yaml:"undo_limit"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // score or ticks at which max difficulty is reached
	Step  int    `yaml:"step"`   // difficulty only changes at multiples of step
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // added to speed at max difficulty
	IntervalReduction int     `yaml:"interval_reduction"` // ticks removed from intervals at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.2
	case DifficultyHard:
		return 0.5
	default:
		return 0.0
	}
}

// ApplyPreset adjusts every module's difficulty for the preset. An empty
// preset leaves the configuration untouched.
func (g *GamesConfig) ApplyPreset(preset DifficultyPreset) {
	if preset == "" {
		return
	}
	for _, d := range []*DifficultyConfig{&g.Dino.Difficulty, &g.Pong.Difficulty, &g.Snake.Difficulty} {
		if preset == DifficultyFixed {
			d.Enabled = false
			continue
		}
		d.Enabled = true
		d.InitialLevel = InitialLevelForPreset(preset)
	}
}
