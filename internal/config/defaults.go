package config

import (
	_ "embed"
)

//go:embed defaults/pong.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TickRate: 60,
		Terminal: TerminalConfig{HoldMS: 150},
		Window: WindowConfig{
			Title: "Pong",
			VSync: true,
		},
		Keys: KeysConfig{
			Up:      []string{"up", "w"},
			Down:    []string{"down", "s"},
			Pause:   []string{"p"},
			Restart: []string{"r"},
			Quit:    []string{"q", "esc", "ctrl+c"},
		},
		Storage: StorageConfig{
			DBPath: "~/.pong/pong.db",
		},
		SSH: SSHConfig{
			Address:            ":23234",
			IdleTimeoutMinutes: 30,
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.pong/pong.log",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
