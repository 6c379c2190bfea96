package pixelcipher

import "golang.org/x/sync/errgroup"

// ColorTransformer adds a per-pixel, per-channel mask modulo 256.
type ColorTransformer struct {
	Format Format
}

// Forward returns g with mask_c added to every sample of channel c.
func (t ColorTransformer) Forward(g Grid, key string) (Grid, error) {
	return t.apply(g, key, func(sample, mask uint8) uint8 {
		return sample + mask
	})
}

// Inverse returns g with mask_c subtracted from every sample of channel c.
func (t ColorTransformer) Inverse(g Grid, key string) (Grid, error) {
	return t.apply(g, key, func(sample, mask uint8) uint8 {
		return sample - mask
	})
}

// Masks draws the R, G and B masks for key, in that order.
func (t ColorTransformer) Masks(g Grid, key string) ([][]uint8, error) {
	stream, err := openStream(g, key, t.Format)
	if err != nil {
		return nil, err
	}

	masks := make([][]uint8, Channels)
	for c := range masks {
		masks[c] = stream.UniformBytes(g.Height, g.Width)
	}

	return masks, nil
}

// apply combines each sample with its mask byte; uint8 arithmetic wraps modulo 256.
func (t ColorTransformer) apply(g Grid, key string, combine func(sample, mask uint8) uint8) (Grid, error) {
	masks, err := t.Masks(g, key)
	if err != nil {
		return Grid{}, err
	}

	out := g.like()

	var group errgroup.Group

	for c, mask := range masks {
		group.Go(func() error {
			for i, m := range mask {
				idx := i*Channels + c
				out.Pix[idx] = combine(g.Pix[idx], m)
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return Grid{}, err
	}

	return out, nil
}
