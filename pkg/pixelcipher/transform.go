package pixelcipher

// Transform is a reversible, key-driven step over a Grid.
// Inverse(Forward(g, key), key) must equal g for every valid g and non-empty key.
type Transform interface {
	Forward(g Grid, key string) (Grid, error)
	Inverse(g Grid, key string) (Grid, error)
}

// openStream validates the inputs of a transform call and seeds a fresh stream for it.
func openStream(g Grid, key string, format Format) (*Stream, error) {
	if err := checkInput(g, key); err != nil {
		return nil, err
	}

	return NewStream(DeriveSeed(key), format)
}

// checkInput rejects malformed grids and the empty key before any stream is drawn.
func checkInput(g Grid, key string) error {
	if err := g.Validate(); err != nil {
		return err
	}

	if key == "" {
		return ErrEmptyKey
	}

	return nil
}
