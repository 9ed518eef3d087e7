package fsm

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// LoadConfigAuto loads FSM config with priority: customPath > embedded
func LoadConfigAuto[T any](m *Machine[T], customPath, embeddedFallback string) error {
	if customPath != "" {
		return LoadConfigFromPath(m, customPath)
	}
	return m.LoadConfig([]byte(embeddedFallback))
}

// LoadConfigFromPath loads FSM config from an arbitrary file path
func LoadConfigFromPath[T any](m *Machine[T], configPath string) error {
	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config file not found: %s", configPath)
	}
	if err != nil {
		return fmt.Errorf("failed to read FSM config %s: %w", configPath, err)
	}
	if err := m.LoadConfig(data); err != nil {
		return fmt.Errorf("failed to load FSM config from %s: %w", configPath, err)
	}
	return nil
}
