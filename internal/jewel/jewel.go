package jewel

import "math"

const SelectedScale = 1.1

type Point struct{ X, Y float64 }

type Jewel struct {
	typ Type

	X, Y     int
	Pos      Point
	Selected bool
	Scale    float64
	Alpha    float64
	Rotation float64

	anim Animation
}

func newJewel(t Type, x, y int) *Jewel {
	return &Jewel{
		typ:   t,
		X:     x,
		Y:     y,
		Scale: 1,
		Alpha: 1,
		anim:  Idle{},
	}
}

func (j *Jewel) Type() Type           { return j.typ }
func (j *Jewel) TypeID() int          { return j.typ.ID }
func (j *Jewel) Points() int          { return j.typ.Points }
func (j *Jewel) Animation() Animation { return j.anim }

// Animating reports whether the jewel is moving or being destroyed. A shake
// counts only when it holds an interrupted move.
func (j *Jewel) Animating() bool {
	switch a := j.anim.(type) {
	case *Moving, *Destroying:
		return true
	case *Shaking:
		return a.Resume != nil
	}
	return false
}

func (j *Jewel) Shaking() bool {
	_, ok := j.anim.(*Shaking)
	return ok
}

// Place puts the jewel at its resting screen position with no animation.
func (j *Jewel) Place(x, y int, pos Point) {
	j.X, j.Y = x, y
	j.Pos = pos
	j.anim = Idle{}
}

// MoveTo sets the logical cell and tweens the screen position to target.
func (j *Jewel) MoveTo(x, y int, target Point) {
	j.X, j.Y = x, y
	j.tween(j.Pos, target, MoveDuration)
}

// Drop places the jewel at from and tweens it to target over duration.
func (j *Jewel) Drop(x, y int, from, target Point, duration float64) {
	j.X, j.Y = x, y
	j.Pos = from
	j.tween(from, target, duration)
}

func (j *Jewel) tween(from, to Point, duration float64) {
	m := &Moving{From: from, To: to, Duration: duration}
	if s, ok := j.anim.(*Shaking); ok {
		m.From = s.Origin
		s.Resume = m
		return
	}
	j.anim = m
}

func (j *Jewel) Shake() {
	switch a := j.anim.(type) {
	case *Destroying:
		return
	case *Shaking:
		a.Elapsed = 0
		return
	case *Moving:
		j.anim = &Shaking{Origin: j.Pos, Resume: a}
		return
	}
	j.anim = &Shaking{Origin: j.Pos}
}

func (j *Jewel) Select() {
	j.Selected = true
	j.Scale = SelectedScale
}

func (j *Jewel) Deselect() {
	j.Selected = false
	j.Scale = 1
}

func (j *Jewel) Destroy() {
	if _, ok := j.anim.(*Destroying); ok {
		return
	}
	j.Selected = false
	j.anim = &Destroying{Duration: DestroyDuration, StartAlpha: j.Alpha}
}

// Destroyed reports whether a destroy animation has run to completion.
func (j *Jewel) Destroyed() bool {
	d, ok := j.anim.(*Destroying)
	return ok && d.Elapsed >= d.Duration
}

// Update advances the current animation by dt seconds.
func (j *Jewel) Update(dt float64) {
	switch a := j.anim.(type) {
	case *Moving:
		pos, done := a.advance(dt)
		j.Pos = pos
		if done {
			j.anim = Idle{}
		}
	case *Shaking:
		a.Elapsed += dt
		if a.Elapsed < ShakeDuration {
			j.Pos = Point{X: a.Origin.X + ShakeAmplitude*math.Sin(a.Elapsed*ShakeFrequency), Y: a.Origin.Y}
			return
		}
		j.Pos = a.Origin
		if a.Resume != nil {
			j.anim = a.Resume
			return
		}
		j.anim = Idle{}
	case *Destroying:
		if a.Elapsed >= a.Duration {
			return
		}
		a.Elapsed += dt
		p := progress(a.Elapsed, a.Duration)
		prof := j.typ.Profile
		j.Alpha = a.StartAlpha * (1 - p)
		j.Scale = destroyBaseScale + p*prof.ScaleSpeed
		if prof.ScaleSpeed <= 0 && j.Scale < destroyMinScale {
			j.Scale = destroyMinScale
		}
		j.Rotation = math.Mod(j.Rotation+prof.RotationSpeed*dt*rotationFrameRate, 360)
	}
}

// Sprite is a value snapshot of everything a renderer needs.
type Sprite struct {
	TypeID   int
	Category Category
	Image    string
	Pos      Point
	Scale    float64
	Alpha    float64
	Rotation float64
	Selected bool
}

func (j *Jewel) Sprite() Sprite {
	return Sprite{
		TypeID:   j.typ.ID,
		Category: j.typ.Category,
		Image:    j.typ.Image,
		Pos:      j.Pos,
		Scale:    j.Scale,
		Alpha:    j.Alpha,
		Rotation: j.Rotation,
		Selected: j.Selected,
	}
}
