package pixelcipher

import "fmt"

// Cipher composes the color and permutation transforms.
// Encrypt runs the steps in order; Decrypt runs their inverses in reverse order.
type Cipher struct {
	format Format
	steps  []Transform
}

// Option configures a Cipher.
type Option func(*Cipher)

// WithFormat selects the stream format. The default is DefaultFormat.
func WithFormat(format Format) Option {
	return func(c *Cipher) {
		c.format = format
	}
}

// New builds a Cipher.
func New(opts ...Option) (*Cipher, error) {
	c := &Cipher{format: DefaultFormat}

	for _, opt := range opts {
		opt(c)
	}

	if !c.format.valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, c.format)
	}

	c.steps = []Transform{
		ColorTransformer{Format: c.format},
		PixelPermuter{Format: c.format},
	}

	return c, nil
}

// Format returns the stream format of c.
func (c *Cipher) Format() Format {
	return c.format
}

// Encrypt obfuscates g under key. The input grid is not modified.
func (c *Cipher) Encrypt(g Grid, key string) (Grid, error) {
	if err := checkInput(g, key); err != nil {
		return Grid{}, err
	}

	var err error

	for _, step := range c.steps {
		if g, err = step.Forward(g, key); err != nil {
			return Grid{}, fmt.Errorf("encrypting: %w", err)
		}
	}

	return g, nil
}

// Decrypt reverses Encrypt for the same key and format. The input grid is not modified.
func (c *Cipher) Decrypt(g Grid, key string) (Grid, error) {
	if err := checkInput(g, key); err != nil {
		return Grid{}, err
	}

	var err error

	for i := len(c.steps) - 1; i >= 0; i-- {
		if g, err = c.steps[i].Inverse(g, key); err != nil {
			return Grid{}, fmt.Errorf("decrypting: %w", err)
		}
	}

	return g, nil
}

// Encrypt obfuscates g under key with the default format.
func Encrypt(g Grid, key string) (Grid, error) {
	c, err := New()
	if err != nil {
		return Grid{}, err
	}

	return c.Encrypt(g, key)
}

// Decrypt reverses Encrypt with the default format.
func Decrypt(g Grid, key string) (Grid, error) {
	c, err := New()
	if err != nil {
		return Grid{}, err
	}

	return c.Decrypt(g, key)
}
