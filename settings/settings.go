package settings

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/oomph-ac/capsim/collision"
	"github.com/oomph-ac/capsim/game"
	"github.com/oomph-ac/capsim/movement"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// Settings contains everything that can be tuned from the settings file.
type Settings struct {
	Movement struct {
		Gravity         float32
		SlopeThreshold  float32
		StepHeight      float32
		Acceleration    float32
		MaxFallSpeed    float32
		ClimbSpeedRatio float32
		GroundProbe     float32
		JumpThreshold   float32
		JumpHeight      float32
	}
	Octree struct {
		MinBrushesPerNode int
		MinNodeSize       float32
	}
	Camera struct {
		Size         float32
		MinIncidence float32
	}
	Debug struct {
		// LogLevel is one of debug, info, warn or error.
		LogLevel string
		// TraceMovement sends every slide try of every actor to the log.
		TraceMovement bool
	}
}

// DefaultSettings returns the stock tuning.
func DefaultSettings() Settings {
	s := Settings{}
	s.Movement.Gravity = game.Gravity
	s.Movement.SlopeThreshold = game.SlopeThreshold
	s.Movement.StepHeight = game.StepHeight
	s.Movement.Acceleration = game.MoveAcceleration
	s.Movement.MaxFallSpeed = game.MaxFallSpeed
	s.Movement.ClimbSpeedRatio = game.ClimbSpeedRatio
	s.Movement.GroundProbe = game.GroundProbe
	s.Movement.JumpThreshold = game.JumpThreshold
	s.Movement.JumpHeight = game.JumpHeight

	s.Octree.MinBrushesPerNode = game.OctreeMinBrushes
	s.Octree.MinNodeSize = game.OctreeMinNodeSize

	s.Camera.Size = game.CameraSize
	s.Camera.MinIncidence = game.CameraMinIncidence

	s.Debug.LogLevel = "info"
	return s
}

// Load reads the settings file at path, or creates it with the default settings if it does not
// exist yet.
func Load(path string) (Settings, error) {
	s := DefaultSettings()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, Save(path, s)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, errors.Wrap(err, "read settings")
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, errors.Wrapf(err, "decode settings %s", path)
	}
	return s, nil
}

// Save writes the settings to path.
func Save(path string, s Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "encode settings")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "write settings")
	}
	return nil
}

// SolverOptions returns the movement options described by the settings. With TraceMovement set,
// slide traces go to log at debug level.
func (s Settings) SolverOptions(log *slog.Logger) movement.Options {
	opts := movement.DefaultOptions()
	opts.Accel = s.Movement.Acceleration
	opts.MaxFallSpeed = s.Movement.MaxFallSpeed
	opts.ClimbSpeedRatio = s.Movement.ClimbSpeedRatio
	opts.GroundProbe = s.Movement.GroundProbe
	opts.JumpThreshold = s.Movement.JumpThreshold
	opts.Log = log
	if s.Debug.TraceMovement && log != nil {
		opts.Debugf = func(format string, args ...any) {
			log.Debug("movement trace", "msg", fmt.Sprintf(format, args...))
		}
	}
	return opts
}

// CollisionConfig returns the manager configuration described by the settings.
func (s Settings) CollisionConfig(log *slog.Logger) collision.Config {
	cfg := collision.DefaultConfig()
	cfg.MinBrushesPerNode = s.Octree.MinBrushesPerNode
	cfg.MinNodeSize = s.Octree.MinNodeSize
	cfg.CameraSize = s.Camera.Size
	cfg.CameraMinIncidence = s.Camera.MinIncidence
	cfg.Log = log
	return cfg
}

// ApplyState copies the per-actor tuning into the state.
func (s Settings) ApplyState(st *movement.State) {
	st.Gravity = s.Movement.Gravity
	st.SlopeThresh = s.Movement.SlopeThreshold
	st.StepHeight = s.Movement.StepHeight
}

// Level returns the slog level named by Debug.LogLevel, defaulting to info.
func (s Settings) Level() slog.Level {
	switch strings.ToLower(s.Debug.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
