package config

import (
	_ "embed"
)

//go:embed defaults/arcade.yaml
var defaultArcadeYAML []byte

// Default returns the hardcoded configuration. The embedded arcade.yaml
// mirrors these values.
func Default() Config {
	return Config{
		Display: DisplayConfig{
			Framebuffer:     true,
			FramebufferPath: "/dev/fb0",
			LitColor:        "#FFB000",
			AccentColor:     "#FF5F00",
		},
		Engine: EngineConfig{
			TickRate: 60,
		},
		Input: InputConfig{
			DeviceGlob:     "/dev/input/event*",
			ProfilesDir:    "~/.arcade/profiles",
			Grab:           true,
			TerminalHoldMS: 120,
			RescanEvery:    1,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Speech:     true,
			Volume:     0.6,
			SampleRate: 22050,
			EspeakPath: "espeak",
		},
		Storage: StorageConfig{
			DBPath: "~/.arcade/scores.db",
		},
		Session: SessionConfig{
			GameOverTimeout: 300,
			DrawIdleTimeout: 900,
			SceneTicks:      120,
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.arcade/arcade.log",
		},
		Games: DefaultGamesConfig(),
	}
}

// DefaultGamesConfig returns the default module tunables.
func DefaultGamesConfig() GamesConfig {
	return GamesConfig{
		Dino:  DefaultDinoConfig(),
		Pong:  DefaultPongConfig(),
		Snake: DefaultSnakeConfig(),
		Draw:  DefaultDrawConfig(),
	}
}

// DefaultDinoConfig returns the default Dino runner configuration.
func DefaultDinoConfig() DinoConfig {
	return DinoConfig{
		DuckEnabled: true,
		Physics: DinoPhysics{
			JumpTicks:  33,
			JumpHeight: 13,
			DuckTicks:  15,
			BaseSpeed:  0.6,
			MaxSpeed:   2.4,
		},
		Obstacles: DinoObstacles{
			SpawnMin:     90,
			SpawnMax:     180,
			FastSpawnMin: 48,
			FastSpawnMax: 90,
			RampScore:    500,
			FirstSpawn:   90,
		},
		Player: DinoPlayer{
			X:           10,
			Width:       5,
			StandHeight: 9,
			DuckHeight:  3,
		},
		Scoring: DinoScoring{
			PassPoints: 10,
			Milestone:  100,
		},
		Difficulty: DifficultyConfig{
			Enabled: true,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 1500,
				Step:  100,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 3.0,
			},
		},
	}
}

// DefaultPongConfig returns the default Pong configuration.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Paddle: PongPaddle{
			Height:   5,
			Inset:    2,
			Speed:    0.8,
			Deadzone: 0.25,
		},
		Ball: PongBall{
			Speed:      0.6,
			MaxSpeed:   1.8,
			MaxDeflect: 0.6,
			ServeDelay: 60,
		},
		CPU: PongCPU{
			Speed: 0.45,
			Slack: 1,
		},
		Difficulty: DifficultyConfig{
			Enabled: true,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 3600,
				Step:  600,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 2.0,
			},
		},
	}
}

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		CellSize:      2,
		InitialLength: 5,
		StepTicks:     8,
		MinStepTicks:  3,
		Deadzone:      0.5,
		Difficulty: DifficultyConfig{
			Enabled: true,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 30,
				Step:  5,
			},
			Scaling: ScalingConfig{
				IntervalReduction: 5,
			},
		},
	}
}

// DefaultDrawConfig returns the default Draw configuration.
func DefaultDrawConfig() DrawConfig {
	return DrawConfig{
		MaxSpeed:   1.2,
		RampTicks:  12,
		Deadzone:   0.15,
		BlinkTicks: 20,
		UndoLimit:  4096,
	}
}
