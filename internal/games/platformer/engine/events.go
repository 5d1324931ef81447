package engine

// EventKind identifies an effect event emitted by the resolver.
type EventKind int

const (
	EventLanding EventKind = iota
	EventWallSlide
	EventCoin
	EventPowerUp
	EventStomp
	EventFireballHit
	EventBossHit
	EventBossDefeat
	EventBossAttack
	EventDamage
	EventLifeLost
	EventJump
	EventFireball
)

func (k EventKind) String() string {
	switch k {
	case EventLanding:
		return "landing"
	case EventWallSlide:
		return "wall-slide"
	case EventCoin:
		return "coin"
	case EventPowerUp:
		return "power-up"
	case EventStomp:
		return "stomp"
	case EventFireballHit:
		return "fireball-hit"
	case EventBossHit:
		return "boss-hit"
	case EventBossDefeat:
		return "boss-defeat"
	case EventBossAttack:
		return "boss-attack"
	case EventDamage:
		return "damage"
	case EventLifeLost:
		return "life-lost"
	case EventJump:
		return "jump"
	case EventFireball:
		return "fireball"
	default:
		return "unknown"
	}
}

// Event is a transient effect signal positioned in world units.
type Event struct {
	Kind EventKind
	X, Y float64
}

// Outcome is the terminal condition, if any, reached during a tick.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeGoalReached
	OutcomeLost
)

// Result is what one resolver tick produced.
type Result struct {
	Events  []Event
	Outcome Outcome
}

func (r *Result) emit(kind EventKind, x, y float64) {
	r.Events = append(r.Events, Event{Kind: kind, X: x, Y: y})
}

// Has reports whether an event of the given kind was emitted.
func (r Result) Has(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
