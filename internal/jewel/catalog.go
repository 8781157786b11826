// Package jewel holds the jewel catalog, the factory that stamps out jewel
// instances, and the per-jewel animation state machine.
package jewel

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidType    = errors.New("invalid jewel type")
	ErrInvalidCatalog = errors.New("invalid jewel catalog")
)

type Category string

const (
	Red    Category = "red"
	Blue   Category = "blue"
	Green  Category = "green"
	Yellow Category = "yellow"
	Purple Category = "purple"
)

// Profile holds the destroy/entry timing of a category.
type Profile struct {
	FadeSpeed     float64
	ScaleSpeed    float64
	RotationSpeed float64
	Duration      float64
}

var profiles = map[Category]Profile{
	Red:    {FadeSpeed: 0.5, ScaleSpeed: 2.0, RotationSpeed: 0, Duration: 0.5},
	Blue:   {FadeSpeed: 0.7, ScaleSpeed: -1.5, RotationSpeed: 0, Duration: 0.5},
	Green:  {FadeSpeed: 0.6, ScaleSpeed: -1, RotationSpeed: 5, Duration: 0.6},
	Yellow: {FadeSpeed: 0.4, ScaleSpeed: 1.2, RotationSpeed: 15, Duration: 0.4},
	Purple: {FadeSpeed: 0.3, ScaleSpeed: 2.5, RotationSpeed: 0, Duration: 0.7},
}

var defaultProfile = Profile{FadeSpeed: 0.5, ScaleSpeed: 1.0, RotationSpeed: 0, Duration: 0.5}

func ProfileFor(c Category) Profile {
	if p, ok := profiles[Category(strings.ToLower(string(c)))]; ok {
		return p
	}
	return defaultProfile
}

type Type struct {
	ID       int
	Category Category
	Points   int
	Effect   string
	Image    string
	Profile  Profile
}

type Catalog struct {
	types []Type
}

// NewCatalog indexes defs by id. Ids must cover 0..len(defs)-1 exactly;
// the profile of every entry is derived from its category.
func NewCatalog(defs []Type) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: no jewel types", ErrInvalidCatalog)
	}
	types := make([]Type, len(defs))
	copy(types, defs)
	sort.Slice(types, func(i, j int) bool { return types[i].ID < types[j].ID })
	for i := range types {
		if types[i].ID != i {
			return nil, fmt.Errorf("%w: expected id %d, got %d", ErrInvalidCatalog, i, types[i].ID)
		}
		types[i].Profile = ProfileFor(types[i].Category)
	}
	return &Catalog{types: types}, nil
}

func (c *Catalog) Len() int { return len(c.types) }

func (c *Catalog) Type(id int) (Type, error) {
	if id < 0 || id >= len(c.types) {
		return Type{}, fmt.Errorf("%w: %d", ErrInvalidType, id)
	}
	return c.types[id], nil
}

// Types returns a copy of all entries ordered by id.
func (c *Catalog) Types() []Type {
	out := make([]Type, len(c.types))
	copy(out, c.types)
	return out
}
