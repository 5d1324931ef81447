package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory name under $HOME.
const AppDir = ".platformer"

// UserPath joins elem under ~/.platformer.
func UserPath(elem ...string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot get home directory: %w", err)
	}
	return filepath.Join(append([]string{home, AppDir}, elem...)...), nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// LoadPlatformer loads the platformer configuration.
//
// An explicit customPath must load; read and parse errors are returned
// along with the hardcoded defaults. Otherwise the first readable and
// valid file wins: ~/.platformer/configs/platformer.yaml, then
// ./configs/platformer.yaml, then the embedded default. Keys missing from
// the chosen file keep their default values.
func LoadPlatformer(customPath string) (PlatformerConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultPlatformerConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parsePlatformer(data)
		if err != nil {
			return DefaultPlatformerConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths("platformer.yaml") {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parsePlatformer(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parsePlatformer(defaultPlatformerYAML); err == nil {
		return cfg, nil
	}
	return DefaultPlatformerConfig(), nil
}

func parsePlatformer(data []byte) (PlatformerConfig, error) {
	cfg := DefaultPlatformerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultPlatformerConfig(), err
	}
	return cfg, nil
}

// searchPaths lists the implicit config locations, user dir first.
func searchPaths(filename string) []string {
	var paths []string
	if p, err := UserPath("configs", filename); err == nil {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", filename))
}

// ApplyPlatformerPreset modifies the config based on a difficulty preset.
func ApplyPlatformerPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	if lives := LivesForPreset(preset); lives > 0 {
		cfg.Gameplay.Lives = lives
	}
}
