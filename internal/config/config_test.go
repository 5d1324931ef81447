package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	var cfg PlatformerConfig
	if err := yaml.Unmarshal(GetDefaultYAML("platformer"), &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if cfg != DefaultPlatformerConfig() {
		t.Errorf("embedded yaml = %+v\nwant %+v", cfg, DefaultPlatformerConfig())
	}
	if GetDefaultYAML("snake") != nil {
		t.Error("unknown game should have no default yaml")
	}
}

func TestLoadPlatformerCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "platformer.yaml")
	data := "physics:\n  gravity: 0.6\ngameplay:\n  lives: 7\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPlatformer(path)
	if err != nil {
		t.Fatalf("LoadPlatformer() error: %v", err)
	}
	if cfg.Physics.Gravity != 0.6 || cfg.Gameplay.Lives != 7 {
		t.Errorf("gravity=%v lives=%d, want 0.6/7", cfg.Physics.Gravity, cfg.Gameplay.Lives)
	}
	if cfg.Player.JumpPower != 12 {
		t.Errorf("unset jump_power = %v, want default 12", cfg.Player.JumpPower)
	}
}

func TestLoadPlatformerErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "nope.yaml")},
		{"malformed", bad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadPlatformer(tt.path)
			if err == nil {
				t.Fatal("expected error")
			}
			if cfg != DefaultPlatformerConfig() {
				t.Error("failed load should return defaults")
			}
		})
	}
}

func TestApplyPlatformerPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		enabled   bool
		initial   float64
		wantLives int
	}{
		{"", true, 0.0, 3},
		{DifficultyEasy, true, 0.0, 5},
		{DifficultyNormal, true, 0.3, 3},
		{DifficultyHard, true, 0.7, 2},
		{DifficultyFixed, false, 0.0, 3},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultPlatformerConfig()
			ApplyPlatformerPreset(&cfg, tt.preset)
			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("enabled = %v, want %v", cfg.Difficulty.Enabled, tt.enabled)
			}
			if cfg.Difficulty.InitialLevel != tt.initial {
				t.Errorf("initial = %v, want %v", cfg.Difficulty.InitialLevel, tt.initial)
			}
			if cfg.Gameplay.Lives != tt.wantLives {
				t.Errorf("lives = %d, want %d", cfg.Gameplay.Lives, tt.wantLives)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("hard should parse")
	}
	if ParsePreset("nightmare") != "" {
		t.Error("unknown preset should be empty")
	}
}

func TestDifficultyLevelProgression(t *testing.T) {
	dm := NewDifficultyManager(DefaultPlatformerConfig().Difficulty)

	tests := []struct {
		level int
		want  float64
	}{
		{1, 0},
		{12, 1},
		{20, 1},
		{0, 0},
	}
	for _, tt := range tests {
		if got := dm.Level(tt.level, 0); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Level(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
	if got := dm.SpeedScale(12, 0); math.Abs(got-1.5) > 1e-9 {
		t.Errorf("SpeedScale(12) = %v, want 1.5", got)
	}
	if got := dm.SpeedScale(1, 0); got != 1 {
		t.Errorf("SpeedScale(1) = %v, want 1", got)
	}
}

func TestDifficultyScoreAndDisabled(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 1000},
		Scaling:      ScalingConfig{SpeedMultiplier: 1},
	}
	dm := NewDifficultyManager(cfg)
	if got := dm.Level(1, 500); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("Level(score 500) = %v, want 0.75", got)
	}

	cfg.Enabled = false
	if got := NewDifficultyManager(cfg).Level(1, 1000); got != 0.5 {
		t.Errorf("disabled Level = %v, want initial 0.5", got)
	}

	cfg.InitialLevel = 3
	if got := NewDifficultyManager(cfg).Level(1, 0); got != 1 {
		t.Errorf("initial level should clamp to 1, got %v", got)
	}
}

func TestUserPathAndExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := UserPath("configs", "platformer.yaml")
	if err != nil {
		t.Fatalf("UserPath() error: %v", err)
	}
	if want := filepath.Join(home, AppDir, "configs", "platformer.yaml"); got != want {
		t.Errorf("UserPath() = %q, want %q", got, want)
	}

	tests := []struct {
		in, want string
	}{
		{"~/.platformer/scores.db", filepath.Join(home, ".platformer", "scores.db")},
		{"~", home},
		{"/tmp/scores.db", "/tmp/scores.db"},
		{"~other/x", "~other/x"},
	}
	for _, tt := range tests {
		got, err := ExpandHome(tt.in)
		if err != nil {
			t.Fatalf("ExpandHome(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadPlatformerUserDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, AppDir, "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "platformer.yaml"), []byte("gameplay:\n  lives: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPlatformer("")
	if err != nil {
		t.Fatalf("LoadPlatformer() error: %v", err)
	}
	if cfg.Gameplay.Lives != 9 {
		t.Errorf("lives = %d, want 9 from user config", cfg.Gameplay.Lives)
	}
}
