// Package config provides YAML-based settings for the pong front-ends.
// Only runtime concerns live here; the playfield geometry is fixed in the
// pong package.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config contains every user-tunable setting.
type Config struct {
	TickRate int            `yaml:"tick_rate"`
	Terminal TerminalConfig `yaml:"terminal"`
	Window   WindowConfig   `yaml:"window"`
	Keys     KeysConfig     `yaml:"keys"`
	Storage  StorageConfig  `yaml:"storage"`
	SSH      SSHConfig      `yaml:"ssh"`
	Log      LogConfig      `yaml:"log"`
}

// TerminalConfig tunes the terminal front-end.
type TerminalConfig struct {
	HoldMS int `yaml:"hold_ms"` // Synthesised release delay
}

// WindowConfig tunes the desktop window.
type WindowConfig struct {
	Title string `yaml:"title"`
	VSync bool   `yaml:"vsync"`
}

// KeysConfig lists the terminal key names bound to each action.
type KeysConfig struct {
	Up      []string `yaml:"up"`
	Down    []string `yaml:"down"`
	Pause   []string `yaml:"pause"`
	Restart []string `yaml:"restart"`
	Quit    []string `yaml:"quit"`
}

// StorageConfig locates the recordings database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
	Record bool   `yaml:"record"` // Record every terminal session
}

// SSHConfig configures `pong serve`.
type SSHConfig struct {
	Address            string `yaml:"address"`
	HostKeyPath        string `yaml:"host_key_path"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// MaxTickRate bounds TickRate.
const MaxTickRate = 1000

// HoldDuration returns the terminal hold delay.
func (c Config) HoldDuration() time.Duration {
	return time.Duration(c.Terminal.HoldMS) * time.Millisecond
}

// IdleTimeout returns the SSH idle timeout.
func (c Config) IdleTimeout() time.Duration {
	return time.Duration(c.SSH.IdleTimeoutMinutes) * time.Minute
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if c.TickRate <= 0 || c.TickRate > MaxTickRate {
		errs = append(errs, fmt.Errorf("tick_rate %d out of range 1..%d", c.TickRate, MaxTickRate))
	}
	if c.Terminal.HoldMS <= 0 {
		errs = append(errs, fmt.Errorf("terminal.hold_ms must be positive, got %d", c.Terminal.HoldMS))
	}

	for _, b := range []struct {
		name string
		keys []string
	}{
		{"up", c.Keys.Up},
		{"down", c.Keys.Down},
		{"pause", c.Keys.Pause},
		{"restart", c.Keys.Restart},
		{"quit", c.Keys.Quit},
	} {
		if len(b.keys) == 0 {
			errs = append(errs, fmt.Errorf("keys.%s must bind at least one key", b.name))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
