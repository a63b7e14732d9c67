package engine

// Event is emitted by the engine as it resolves swaps and hints.
// Listeners type-switch on the concrete types below.
type Event interface {
	eventName() string
}

// MatchFound is emitted at the start of each cascade iteration.
type MatchFound struct {
	Chain     int // 1 for the triggering swap, 2+ for chain reactions
	Positions []Position
	Points    int
}

// HintFound is emitted when QueryHint locates a matching swap.
type HintFound struct {
	Move Move
}

// GameEnded is emitted once, when the game transitions to ended.
type GameEnded struct {
	Reason EndReason
	Score  int
}

func (MatchFound) eventName() string  { return "match_found" }
func (CascadeStep) eventName() string { return "cascade_step" }
func (HintFound) eventName() string   { return "hint_found" }
func (GameEnded) eventName() string   { return "game_ended" }

// Listener receives engine events synchronously on the caller's goroutine.
type Listener func(Event)

// Subscribe registers l and returns a function that removes it.
func (e *Engine) Subscribe(l Listener) (unsubscribe func()) {
	id := e.nextListener
	e.nextListener++
	e.listeners = append(e.listeners, listenerEntry{id: id, fn: l})

	return func() {
		for i, entry := range e.listeners {
			if entry.id == id {
				e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

type listenerEntry struct {
	id int
	fn Listener
}

func (e *Engine) emit(ev Event) {
	// Copy so listeners may unsubscribe during dispatch.
	ls := make([]listenerEntry, len(e.listeners))
	copy(ls, e.listeners)
	for _, l := range ls {
		l.fn(ev)
	}
}
