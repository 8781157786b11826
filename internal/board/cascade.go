package board

import "go.uber.org/zap"

const (
	// MaxStep caps the elapsed time applied in one tick.
	MaxStep = 0.1
	// NoticeDuration is how long the "no moves" notice blocks input.
	NoticeDuration = 2.0
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSwapRequested
	PhaseValidating
	PhaseReverted
	PhaseSwapped
	PhaseMatching
	PhaseClearing
	PhaseCollapsing
	PhaseRefilling
	PhaseStable
)

var phaseNames = [...]string{
	PhaseIdle:          "idle",
	PhaseSwapRequested: "swap_requested",
	PhaseValidating:    "validating",
	PhaseReverted:      "reverted",
	PhaseSwapped:       "swapped",
	PhaseMatching:      "matching",
	PhaseClearing:      "clearing",
	PhaseCollapsing:    "collapsing",
	PhaseRefilling:     "refilling",
	PhaseStable:        "stable",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Step reports what one Tick did.
type Step struct {
	Phase Phase
	// Busy is set when animations were still in flight and nothing advanced.
	Busy      bool
	Removal   *Removal
	Reshuffle ReshuffleOutcome
}

func (b *Board) Phase() Phase { return b.phase }

// Stable reports whether the board is settled with no match left.
func (b *Board) Stable() bool { return b.phase == PhaseStable }

// Notice returns the remaining seconds of the "no moves" notice.
func (b *Board) Notice() float64 { return b.notice }

func (b *Board) AcceptsInput() bool {
	return b.phase == PhaseStable && b.notice <= 0 && b.Settled()
}

// Tick advances animations by dt seconds and, once everything has settled,
// performs exactly one cascade step.
func (b *Board) Tick(dt float64) Step {
	if dt < 0 {
		dt = 0
	}
	if dt > MaxStep {
		dt = MaxStep
	}
	if b.notice > 0 {
		b.notice -= dt
		if b.notice < 0 {
			b.notice = 0
		}
	}

	b.animate(dt)
	if !b.Settled() {
		return Step{Phase: b.phase, Busy: true}
	}

	var step Step
	switch b.phase {
	case PhaseStable:
	case PhaseClearing:
		b.phase = PhaseCollapsing
		b.Collapse()
		b.phase = PhaseRefilling
		b.Refill()
		b.phase = PhaseMatching
	default:
		matches := b.FindMatches()
		if len(matches) > 0 {
			r := b.RemoveMatches(matches)
			b.audio.Play(CueMatch)
			b.scores.Record(r)
			step.Removal = &r
			b.phase = PhaseClearing
			break
		}
		b.phase = PhaseStable
		if b.HasPossibleMoves() {
			b.shuffled = false
			break
		}
		// One move check per tick: a reshuffle is re-checked on the next
		// settled tick and refilled there if it is still deadlocked.
		if b.shuffled {
			b.shuffled = false
			b.refillDeadlocked()
			step.Reshuffle = Refilled
		} else {
			b.log.Info("no possible moves")
			b.log.Debug("board reshuffled", zap.Int("jewels", b.redistribute()))
			b.shuffled = true
			step.Reshuffle = Reshuffled
		}
		b.notice = NoticeDuration
		b.phase = PhaseMatching
	}
	step.Phase = b.phase
	return step
}
