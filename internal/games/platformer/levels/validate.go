package levels

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog lookups and load-time validation.
var (
	ErrUnknownLevel = errors.New("levels: unknown level")
	ErrInvalidLevel = errors.New("levels: invalid level")
)

// Validate checks that a level is playable. Every problem found is
// reported; the returned error wraps ErrInvalidLevel.
func Validate(l *Level) error {
	if l == nil {
		return fmt.Errorf("%w: nil level", ErrInvalidLevel)
	}

	var problems []error
	if l.Width <= 0 || l.Height <= 0 {
		problems = append(problems, fmt.Errorf("non-positive size %gx%g", l.Width, l.Height))
	}
	if len(l.Platforms) == 0 {
		problems = append(problems, errors.New("no platforms"))
	}
	for i, p := range l.Platforms {
		if p.W <= 0 || p.H <= 0 {
			problems = append(problems, fmt.Errorf("platform %d has non-positive size", i))
		}
	}
	if l.Goal.W <= 0 || l.Goal.H <= 0 {
		problems = append(problems, ErrNoGoal)
	}
	for i, e := range l.Enemies {
		if e.MinX > e.MaxX {
			problems = append(problems, fmt.Errorf("enemy %d patrol range inverted (%g > %g)", i, e.MinX, e.MaxX))
		}
	}
	if b := l.Boss; b != nil {
		if b.Health <= 0 {
			problems = append(problems, errors.New("boss health must be positive"))
		}
		if b.MinX > b.MaxX {
			problems = append(problems, fmt.Errorf("boss patrol range inverted (%g > %g)", b.MinX, b.MaxX))
		}
		if b.W <= 0 || b.H <= 0 {
			problems = append(problems, errors.New("boss has non-positive size"))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w %d (%s): %w", ErrInvalidLevel, l.Number, l.Name, errors.Join(problems...))
}
