package jewel

import "math/rand"

type Factory struct {
	catalog *Catalog
	rng     *rand.Rand
}

func NewFactory(c *Catalog, rng *rand.Rand) *Factory {
	return &Factory{catalog: c, rng: rng}
}

func (f *Factory) Catalog() *Catalog { return f.catalog }

func (f *Factory) TypeCount() int { return f.catalog.Len() }

// Create builds a jewel of the given type for cell (x, y). The screen
// position is left at the origin; the board places it.
func (f *Factory) Create(typeID, x, y int) (*Jewel, error) {
	t, err := f.catalog.Type(typeID)
	if err != nil {
		return nil, err
	}
	return newJewel(t, x, y), nil
}

func (f *Factory) CreateRandom(x, y int) *Jewel {
	t := f.catalog.types[f.rng.Intn(f.catalog.Len())]
	return newJewel(t, x, y)
}
