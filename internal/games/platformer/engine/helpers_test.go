package engine

import (
	"errors"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

func flatLevel() *levels.Level {
	return &levels.Level{
		Number:    1,
		Name:      "Flat",
		Width:     2000,
		Height:    600,
		Start:     levels.Point{X: 50, Y: 300},
		Platforms: []levels.Platform{{Rect: Rect{X: 0, Y: 550, W: 2000, H: 50}}},
		Goal:      Rect{X: 1900, Y: 470, W: 40, H: 80},
	}
}

func newTestWorld(l *levels.Level) *World {
	t := DefaultTuning()
	return NewWorld(l, NewPlayer(0, 0, t), t, NewParticles(1))
}

// stand places the player on the flat level's ground at x.
func stand(w *World, x float64) {
	w.Player.X = x
	w.Player.Y = 550 - w.Player.H
	w.Player.VX, w.Player.VY = 0, 0
	w.Player.OnGround = true
}

func tick(w *World, p *Progress, in Input) Result {
	return Resolve(w, p, in, DefaultTuning())
}

type memStore struct {
	blobs    map[string][]byte
	saveErr  error
	loadErr  error
	saveCall int
}

func newMemStore() *memStore {
	return &memStore{blobs: make(map[string][]byte)}
}

func (m *memStore) SaveBlob(key string, data []byte) error {
	m.saveCall++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.blobs[key] = append([]byte(nil), data...)
	return nil
}

func (m *memStore) LoadBlob(key string) ([]byte, bool, error) {
	if m.loadErr != nil {
		return nil, false, m.loadErr
	}
	data, ok := m.blobs[key]
	return data, ok, nil
}

var errDiskFull = errors.New("disk full")
