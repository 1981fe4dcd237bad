package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	Session     SessionConfig     `toml:"session"`
	Logging     LoggingConfig     `toml:"logging"`
	Animation   AnimationConfig   `toml:"animation"`
	Movement    MovementConfig    `toml:"movement"`
	Abilities   AbilitiesConfig   `toml:"abilities"`
	Projectiles ProjectilesConfig `toml:"projectiles"`
	AI          AIConfig          `toml:"ai"`
	Camera      CameraConfig      `toml:"camera"`
	Input       InputConfig       `toml:"input"`
	Data        DataConfig        `toml:"data"`
}

type SessionConfig struct {
	Name     string        `toml:"name"`
	TickRate time.Duration `toml:"tick_rate" env:"SKIRMISH_TICK_RATE"`
	Seed     int64         `toml:"seed" env:"SKIRMISH_SEED"` // 0 = seeded from wall clock
}

type LoggingConfig struct {
	Level  string `toml:"level" env:"SKIRMISH_LOG_LEVEL"`
	Format string `toml:"format" env:"SKIRMISH_LOG_FORMAT"` // "json" or "console"
}

type AnimationConfig struct {
	Blend             time.Duration `toml:"blend"`              // cross-fade between persistent actions
	TransientFallback time.Duration `toml:"transient_fallback"` // one-shot length when the clip has none
}

// Steering modes for the player's A/D keys.
const (
	SteeringTurn   = "turn"   // rotate yaw
	SteeringStrafe = "strafe" // translate sideways
)

type MovementConfig struct {
	PlayerSpeed float64 `toml:"player_speed"`
	TurnSpeed   float64 `toml:"turn_speed"` // rad/s
	Steering    string  `toml:"steering"`
	EnemySpeed  float64 `toml:"enemy_speed"`
	EngageRange float64 `toml:"engage_range"`
}

// Player dodge patterns.
const (
	DodgeAlternate = "alternate"
	DodgeRight     = "right"
)

// Player aim sources for fireball.
const (
	AimFacing = "facing"
	AimCamera = "camera"
)

type AbilitiesConfig struct {
	DodgeDistance    float64       `toml:"dodge_distance"`
	PlayerDodge      string        `toml:"player_dodge"`
	FireballSpeed    float64       `toml:"fireball_speed"`
	FireballLifetime time.Duration `toml:"fireball_lifetime"`
	SpawnHeight      float64       `toml:"spawn_height"`
	Aim              string        `toml:"aim"`
	TeleportRadius   float64       `toml:"teleport_radius"`
	ShieldRadius     float64       `toml:"shield_radius"`
	ShieldDuration   time.Duration `toml:"shield_duration"`
	ShieldHeight     float64       `toml:"shield_height"`
}

type ProjectilesConfig struct {
	HitRadius        float64 `toml:"hit_radius"`
	TorsoHeight      float64 `toml:"torso_height"`
	ProjectileRadius float64 `toml:"projectile_radius"`
	MaxRange         float64 `toml:"max_range"` // distance from world origin
}

type AIConfig struct {
	Profile           string `toml:"profile" env:"SKIRMISH_AI_PROFILE"`
	RequireEngagement bool   `toml:"require_engagement"`
}

type CameraConfig struct {
	Offset    []float64 `toml:"offset"`
	Smoothing float64   `toml:"smoothing"` // lerp factor applied once per frame
}

type InputConfig struct {
	QueueSize        int               `toml:"queue_size"`
	MaxEventsPerTick int               `toml:"max_events_per_tick"`
	Bindings         map[string]string `toml:"bindings"` // key name -> forward/backward/left/right or an ability
}

type DataConfig struct {
	Models     string `toml:"models"`
	AIProfiles string `toml:"ai_profiles"`
	SpawnList  string `toml:"spawn_list"`
	Scripts    string `toml:"scripts"`
}

// Load reads a TOML file over the defaults and then applies SKIRMISH_* environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config env overrides: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the gameplay loop cannot run with.
func (c *Config) Validate() error {
	if c.Session.TickRate <= 0 {
		return fmt.Errorf("session.tick_rate must be positive")
	}
	switch c.Movement.Steering {
	case SteeringTurn, SteeringStrafe:
	default:
		return fmt.Errorf("movement.steering %q: want %q or %q", c.Movement.Steering, SteeringTurn, SteeringStrafe)
	}
	switch c.Abilities.PlayerDodge {
	case DodgeAlternate, DodgeRight:
	default:
		return fmt.Errorf("abilities.player_dodge %q: want %q or %q", c.Abilities.PlayerDodge, DodgeAlternate, DodgeRight)
	}
	switch c.Abilities.Aim {
	case AimFacing, AimCamera:
	default:
		return fmt.Errorf("abilities.aim %q: want %q or %q", c.Abilities.Aim, AimFacing, AimCamera)
	}
	if c.Abilities.ShieldDuration <= 0 || c.Abilities.FireballLifetime <= 0 {
		return fmt.Errorf("abilities: shield_duration and fireball_lifetime must be positive")
	}
	if len(c.Camera.Offset) != 3 {
		return fmt.Errorf("camera.offset needs 3 components, got %d", len(c.Camera.Offset))
	}
	return nil
}

// Default returns the configuration used when a key is absent from the file.
func Default() *Config {
	return &Config{
		Session: SessionConfig{
			Name:     "skirmish",
			TickRate: 16 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Animation: AnimationConfig{
			Blend:             200 * time.Millisecond,
			TransientFallback: 600 * time.Millisecond,
		},
		Movement: MovementConfig{
			PlayerSpeed: 5,
			TurnSpeed:   2,
			Steering:    SteeringTurn,
			EnemySpeed:  2,
			EngageRange: 3,
		},
		Abilities: AbilitiesConfig{
			DodgeDistance:    2,
			PlayerDodge:      DodgeAlternate,
			FireballSpeed:    20,
			FireballLifetime: 5 * time.Second,
			SpawnHeight:      1,
			Aim:              AimFacing,
			TeleportRadius:   5,
			ShieldRadius:     1.5,
			ShieldDuration:   3 * time.Second,
			ShieldHeight:     1,
		},
		Projectiles: ProjectilesConfig{
			HitRadius:        1.5,
			TorsoHeight:      1,
			ProjectileRadius: 0.2,
			MaxRange:         100,
		},
		AI: AIConfig{
			Profile:           "representative",
			RequireEngagement: true,
		},
		Camera: CameraConfig{
			Offset:    []float64{0, 3, 5},
			Smoothing: 0.1,
		},
		Input: InputConfig{
			QueueSize:        128,
			MaxEventsPerTick: 32,
			Bindings: map[string]string{
				"KeyW":    "forward",
				"KeyS":    "backward",
				"KeyA":    "left",
				"KeyD":    "right",
				"KeyJ":    "strike",
				"KeyK":    "block",
				"KeyL":    "dodge",
				"Space":   "block",
				"KeyZ":    "dodge",
				"KeyX":    "fireball",
				"KeyQ":    "teleport",
				"KeyE":    "shield",
				"Pointer": "strike",
			},
		},
		Data: DataConfig{
			Models:     "data/yaml/models.yaml",
			AIProfiles: "data/yaml/ai_profiles.yaml",
			SpawnList:  "data/yaml/spawn_list.yaml",
			Scripts:    "scripts",
		},
	}
}
