package jewel

const (
	MoveDuration    = 0.5
	ShakeDuration   = 0.5
	ShakeAmplitude  = 5.0
	ShakeFrequency  = 30.0
	DestroyDuration = 0.4

	destroyBaseScale = 1.5
	destroyMinScale  = 0.1
	// rotation speeds are tuned as degrees per 60 Hz frame
	rotationFrameRate = 60.0
)

// Animation is one of Idle, *Moving, *Shaking or *Destroying.
type Animation interface {
	animation()
}

type Idle struct{}

type Moving struct {
	From, To Point
	Elapsed  float64
	Duration float64
}

type Shaking struct {
	Origin  Point
	Elapsed float64
	// Resume is the move interrupted by the shake, if any.
	Resume *Moving
}

type Destroying struct {
	Elapsed    float64
	Duration   float64
	StartAlpha float64
}

func (Idle) animation()        {}
func (*Moving) animation()     {}
func (*Shaking) animation()    {}
func (*Destroying) animation() {}

// Ease is the smoothstep curve p²(3-2p).
func Ease(p float64) float64 {
	return p * p * (3 - 2*p)
}

func progress(elapsed, duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	p := elapsed / duration
	if p > 1 {
		return 1
	}
	return p
}

func (m *Moving) advance(dt float64) (Point, bool) {
	m.Elapsed += dt
	p := progress(m.Elapsed, m.Duration)
	if p >= 1 {
		return m.To, true
	}
	e := Ease(p)
	return Point{
		X: m.From.X + (m.To.X-m.From.X)*e,
		Y: m.From.Y + (m.To.Y-m.From.Y)*e,
	}, false
}
