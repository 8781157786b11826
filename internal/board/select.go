package board

type SelectOutcome int

const (
	// SelectIgnored: out of bounds, empty cell, or input not accepted.
	SelectIgnored SelectOutcome = iota
	SelectSelected
	SelectDeselected
	SelectSwitched
	SelectSwapped
	// SelectRejected: adjacent swap that would not match. Both cells shake.
	SelectRejected
)

type SelectResult struct {
	Outcome SelectOutcome
	// Invalid is the previously selected cell of a rejected swap.
	Invalid *Cell
}

// OK mirrors the success flag the host uses for feedback.
func (r SelectResult) OK() bool {
	return r.Outcome != SelectIgnored && r.Outcome != SelectRejected
}

func (b *Board) Selected() (Cell, bool) {
	if b.selected == nil {
		return Cell{}, false
	}
	return *b.selected, true
}

// SelectAt maps a screen point through the layout and selects that cell.
func (b *Board) SelectAt(px, py float64) SelectResult {
	x, y := b.layout.ScreenToCell(px, py)
	if !b.in(x, y) {
		return SelectResult{}
	}
	return b.Select(x, y)
}

func (b *Board) Select(x, y int) SelectResult {
	if !b.AcceptsInput() {
		return SelectResult{}
	}
	j := b.At(x, y)
	if j == nil {
		return SelectResult{}
	}
	b.audio.Play(CueSelect)
	target := Cell{x, y}

	if b.selected == nil {
		b.selected = &target
		j.Select()
		return SelectResult{Outcome: SelectSelected}
	}

	prev := *b.selected
	pj := b.At(prev.X, prev.Y)
	if prev == target {
		j.Deselect()
		b.selected = nil
		return SelectResult{Outcome: SelectDeselected}
	}

	if !prev.adjacent(target) {
		if pj != nil {
			pj.Deselect()
		}
		b.selected = &target
		j.Select()
		return SelectResult{Outcome: SelectSwitched}
	}

	b.phase = PhaseSwapRequested
	b.selected = nil
	if pj != nil {
		pj.Deselect()
	}
	b.phase = PhaseValidating
	if b.IsValidSwap(prev.X, prev.Y, x, y) {
		b.Swap(prev.X, prev.Y, x, y)
		b.audio.Play(CueSwapSuccess)
		b.phase = PhaseSwapped
		return SelectResult{Outcome: SelectSwapped}
	}

	b.phase = PhaseReverted
	if pj != nil {
		pj.Shake()
	}
	j.Shake()
	b.audio.Play(CueSwapFail)
	b.phase = PhaseStable
	return SelectResult{Outcome: SelectRejected, Invalid: &prev}
}

// Deselect drops the current selection without side effects.
func (b *Board) Deselect() {
	if b.selected == nil {
		return
	}
	if j := b.At(b.selected.X, b.selected.Y); j != nil {
		j.Deselect()
	}
	b.selected = nil
}
