package platformer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/engine"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

type memStore struct {
	blobs map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{blobs: make(map[string][]byte)}
}

func (m *memStore) SaveBlob(key string, data []byte) error {
	m.blobs[key] = append([]byte(nil), data...)
	return nil
}

func (m *memStore) LoadBlob(key string) ([]byte, bool, error) {
	data, ok := m.blobs[key]
	return data, ok, nil
}

// newGame resets the package-level settings after the test.
func newGame(t *testing.T) *Game {
	t.Helper()
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("")
		SetStartLevel(0)
		SetLevelsDir("")
	})
	g := New()
	g.Reset(core.DefaultConfig())
	if g.Session() == nil {
		t.Fatalf("Reset() left no session: %v", g.loadErr)
	}
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func clickAt(col, row int, actions ...core.Action) core.InputFrame {
	f := frame(actions...)
	f.SetPointer(core.Pointer{Col: col, Row: row, Down: true, Pressed: true})
	return f
}

func TestRegistered(t *testing.T) {
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatalf("Create(%q) error: %v", GameID, err)
	}
	if g.Title() != "Platformer" {
		t.Errorf("Title() = %q", g.Title())
	}
	if _, ok := g.(registry.Persistent); !ok {
		t.Error("platformer should implement registry.Persistent")
	}
	if _, ok := g.(registry.Editable); !ok {
		t.Error("platformer should implement registry.Editable")
	}
	if _, ok := g.(registry.Reloadable); !ok {
		t.Error("platformer should implement registry.Reloadable")
	}
}

func TestGameReset(t *testing.T) {
	g := newGame(t)
	s := g.Session()

	if s.Level() != 1 || s.Lives() != 3 {
		t.Errorf("level=%d lives=%d, want 1/3", s.Level(), s.Lives())
	}
	st := g.State()
	if st.GameOver || st.Paused || st.Score != 0 {
		t.Errorf("fresh state = %+v", st)
	}
}

func TestDifficultyPresetLives(t *testing.T) {
	tests := []struct {
		preset string
		lives  int
	}{
		{"easy", 5},
		{"hard", 2},
		{"fixed", 3},
		{"bogus", 3},
	}
	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			SetDifficultyPreset(tt.preset)
			g := newGame(t)
			if got := g.Session().Lives(); got != tt.lives {
				t.Errorf("lives = %d, want %d", got, tt.lives)
			}
		})
	}
}

func TestStartLevelSetting(t *testing.T) {
	SetStartLevel(3)
	g := newGame(t)

	if g.Session().Level() != 3 {
		t.Errorf("Level() = %d, want 3", g.Session().Level())
	}
	if _, _, ok := g.Session().Boss(); !ok {
		t.Error("level 3 should have a boss")
	}
}

func TestConfigPathSetting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "platformer.yaml")
	if err := os.WriteFile(path, []byte("gameplay:\n  lives: 9\nplayer:\n  speed: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	g := newGame(t)

	if g.Session().Lives() != 9 {
		t.Errorf("lives = %d, want 9", g.Session().Lives())
	}
	if g.Session().Tuning().PlayerSpeed != 7 {
		t.Errorf("speed = %v, want 7", g.Session().Tuning().PlayerSpeed)
	}
}

func TestStepMovesPlayer(t *testing.T) {
	g := newGame(t)
	startX := g.Session().World().Player.X

	for i := 0; i < 30; i++ {
		g.Step(frame(core.ActionRight))
	}
	if g.Session().World().Player.X <= startX {
		t.Errorf("player did not move right: %v -> %v", startX, g.Session().World().Player.X)
	}
}

func TestPauseAction(t *testing.T) {
	g := newGame(t)

	res := g.Step(frame(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("pause action should pause")
	}
	res = g.Step(frame(core.ActionPause))
	if res.State.Paused {
		t.Error("second pause action should resume")
	}
}

func TestEditorClickPlacesPlatform(t *testing.T) {
	g := newGame(t)
	g.Step(frame(core.ActionToggleEditor))
	if g.Session().Mode() != engine.ModeEditor {
		t.Fatal("toggle should enter the editor")
	}

	before := len(g.Session().World().Platforms)
	g.Step(clickAt(10, 5, core.ActionTool1))
	w := g.Session().World()
	if len(w.Platforms) != before+1 {
		t.Fatalf("platforms = %d, want %d", len(w.Platforms), before+1)
	}

	// 80x24 screen: 10 world units per column, 600/22 per row
	p := w.Platforms[len(w.Platforms)-1]
	if p.X != engine.Snap(105) || p.Y != engine.Snap((4+0.5)*600.0/22) {
		t.Errorf("platform at (%v,%v)", p.X, p.Y)
	}
}

func TestEditorToolKeys(t *testing.T) {
	g := newGame(t)
	g.Step(frame(core.ActionToggleEditor))

	g.Step(frame(core.ActionTool3))
	if g.Session().Tool() != engine.ToolEnemy {
		t.Errorf("tool = %v, want enemy", g.Session().Tool())
	}
	before := len(g.Session().World().Enemies)
	g.Step(clickAt(20, 10))
	if len(g.Session().World().Enemies) != before+1 {
		t.Error("click with enemy tool should place an enemy")
	}
}

func TestClickOutsidePlayAreaIgnored(t *testing.T) {
	g := newGame(t)
	g.Step(frame(core.ActionToggleEditor))

	before := len(g.Session().World().Platforms)
	g.Step(clickAt(10, 0))  // HUD row
	g.Step(clickAt(10, 23)) // footer row
	g.Step(clickAt(-1, 5))
	if len(g.Session().World().Platforms) != before {
		t.Error("clicks outside the play area must not edit")
	}
}

func TestSaveLoadThroughStore(t *testing.T) {
	store := newMemStore()

	g := newGame(t)
	g.SetStore(store)
	g.Step(frame(core.ActionToggleEditor))
	g.Step(clickAt(30, 8, core.ActionTool2))
	want := len(g.Session().World().Platforms)
	g.Step(frame(core.ActionSave))
	if _, ok := store.blobs[engine.CustomLevelKey]; !ok {
		t.Fatal("save should write the custom level blob")
	}
	if !strings.Contains(g.message, "saved") {
		t.Errorf("message = %q", g.message)
	}

	other := newGame(t)
	other.SetStore(store)
	other.OpenEditor()
	if other.Session().Mode() != engine.ModeEditor {
		t.Fatal("OpenEditor should enter the editor")
	}
	if got := len(other.Session().World().Platforms); got != want {
		t.Errorf("loaded platforms = %d, want %d", got, want)
	}
}

func TestSaveWithoutStore(t *testing.T) {
	g := newGame(t)
	g.Step(frame(core.ActionToggleEditor))
	g.Step(frame(core.ActionSave))

	if !strings.Contains(g.message, "Save failed") {
		t.Errorf("message = %q, want save failure", g.message)
	}
	if g.messageTimer != messageTicks {
		t.Errorf("messageTimer = %d", g.messageTimer)
	}
}

func TestPlayCustomLevel(t *testing.T) {
	g := newGame(t)
	g.Step(frame(core.ActionToggleEditor))
	g.Step(frame(core.ActionPlayCustom))
	if !strings.Contains(g.message, "not playable") {
		t.Fatalf("empty level: message = %q", g.message)
	}

	g.Step(frame(core.ActionTool2))
	for col := 0; col < 80; col += 20 {
		g.Step(clickAt(col, 20))
	}
	g.Step(clickAt(40, 18, core.ActionTool8))
	g.Step(frame(core.ActionPlayCustom))

	s := g.Session()
	if !s.Custom() || s.Mode() != engine.ModeGame {
		t.Fatalf("custom=%v mode=%v, want custom game", s.Custom(), s.Mode())
	}
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.Row(0), "Custom level") {
		t.Errorf("HUD = %q", screen.Row(0))
	}
}

func TestRenderHUD(t *testing.T) {
	g := newGame(t)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	hud := screen.Row(0)
	if !strings.Contains(hud, "Score: 0") || !strings.Contains(hud, "Level 1/12") {
		t.Errorf("HUD = %q", hud)
	}
	if !strings.Contains(screen.Row(23), "space jump") {
		t.Errorf("footer = %q", screen.Row(23))
	}
	if !strings.ContainsRune(screen.String(), PlayerChar) {
		t.Error("player not drawn")
	}
	if !strings.ContainsRune(screen.String(), GroundChar) {
		t.Error("ground not drawn")
	}
}

func TestRenderBossBar(t *testing.T) {
	SetStartLevel(3)
	g := newGame(t)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Boss ■■■■■") {
		t.Errorf("HUD = %q", screen.Row(0))
	}
}

func TestRenderGameOver(t *testing.T) {
	g := newGame(t)
	for i := 0; i < 1000 && !g.State().GameOver; i++ {
		g.Session().World().Player.Y = 5000
		g.Step(frame())
	}
	if !g.State().GameOver {
		t.Fatal("falling repeatedly should end the run")
	}
	if st := g.State(); st.Won || st.Level != 1 {
		t.Errorf("State() = %+v, want lost on level 1", st)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over overlay missing")
	}

	g.Step(frame(core.ActionRestart))
	if g.State().GameOver || g.Session().Lives() != 3 {
		t.Error("restart should begin a new run")
	}
}

func TestScreenTooSmall(t *testing.T) {
	t.Cleanup(func() { SetStartLevel(0) })
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 8})

	g.Step(frame(core.ActionRight))
	screen := core.NewScreen(20, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected too-small message")
	}
}

const overrideLevel = `number: 1
name: %s
width: 1200
platforms:
  - {x: 0, y: 550, w: 1200, h: 50}
goal: {x: 1100, y: 470}
`

func writeOverride(t *testing.T, dir, name string) {
	t.Helper()
	data := strings.Replace(overrideLevel, "%s", name, 1)
	if err := os.WriteFile(filepath.Join(dir, "one.yaml"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLevelsDirAndReload(t *testing.T) {
	dir := t.TempDir()
	writeOverride(t, dir, "Meadow")
	SetLevelsDir(dir)
	g := newGame(t)

	if got := g.Session().LevelName(); got != "Meadow" {
		t.Fatalf("LevelName() = %q, want Meadow", got)
	}
	if dirs := g.ContentDirs(); len(dirs) != 1 || dirs[0] != dir {
		t.Errorf("ContentDirs() = %v", dirs)
	}

	writeOverride(t, dir, "Swamp")
	if err := g.ReloadContent(); err != nil {
		t.Fatalf("ReloadContent() error: %v", err)
	}
	if got := g.Session().World().Width; got != 1200 {
		t.Errorf("running world changed: width %v", got)
	}
	if err := g.Session().LoadLevel(1); err != nil {
		t.Fatal(err)
	}
	if got := g.Session().LevelName(); got != "Swamp" {
		t.Errorf("after reload LevelName() = %q, want Swamp", got)
	}
}

func TestNoContentDirs(t *testing.T) {
	g := newGame(t)
	if dirs := g.ContentDirs(); dirs != nil {
		t.Errorf("ContentDirs() = %v, want nil", dirs)
	}
}

func TestTuningFromConfigDefaults(t *testing.T) {
	g := newGame(t)
	if g.Session().Tuning() != engine.DefaultTuning() {
		t.Errorf("default config should map to default tuning:\n%+v\n%+v", g.Session().Tuning(), engine.DefaultTuning())
	}
}

func TestCampaignLevels(t *testing.T) {
	g := newGame(t)
	infos := g.Levels()

	if len(infos) != 12 {
		t.Fatalf("Levels() = %d entries, want 12", len(infos))
	}
	if infos[0].Number != 1 || infos[0].Name != "Green Hills" || infos[0].Boss {
		t.Errorf("first level = %+v", infos[0])
	}
	for _, n := range []int{3, 6, 9, 12} {
		if !infos[n-1].Boss {
			t.Errorf("level %d should be a boss level", n)
		}
	}
}

func TestStartAtOverridesPackageSetting(t *testing.T) {
	SetStartLevel(2)
	g := newGame(t)
	g.StartAt(6)
	g.Reset(core.DefaultConfig())

	if g.Session().Level() != 6 {
		t.Errorf("Level() = %d, want 6", g.Session().Level())
	}
	if got := g.State().Level; got != 6 {
		t.Errorf("State().Level = %d, want 6", got)
	}
}

func TestResizeUpdatesTooSmall(t *testing.T) {
	g := newGame(t)

	g.Render(core.NewScreen(20, 8))
	before := g.Session().Ticks()
	g.Step(frame(core.ActionRight))
	if g.Session().Ticks() != before {
		t.Error("a too-small screen should freeze the game")
	}

	g.Render(core.NewScreen(80, 24))
	g.Step(frame(core.ActionRight))
	if g.Session().Ticks() != before+1 {
		t.Error("growing the screen should resume the game")
	}
}
