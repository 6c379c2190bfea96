package pixelcipher

import "golang.org/x/sync/errgroup"

// PixelPermuter moves samples to new positions, with one permutation per channel.
type PixelPermuter struct {
	Format Format
}

// Forward gathers each channel through its permutation: out[i] = in[sigma[i]].
func (p PixelPermuter) Forward(g Grid, key string) (Grid, error) {
	return p.apply(g, key, false)
}

// Inverse gathers each channel through the inverted permutation, undoing Forward.
func (p PixelPermuter) Inverse(g Grid, key string) (Grid, error) {
	return p.apply(g, key, true)
}

// Permutations draws the R, G and B permutations for key, in that order.
func (p PixelPermuter) Permutations(g Grid, key string) ([][]int, error) {
	stream, err := openStream(g, key, p.Format)
	if err != nil {
		return nil, err
	}

	perms := make([][]int, Channels)
	for c := range perms {
		perms[c] = stream.Permutation(g.Pixels())
	}

	return perms, nil
}

func (p PixelPermuter) apply(g Grid, key string, invert bool) (Grid, error) {
	perms, err := p.Permutations(g, key)
	if err != nil {
		return Grid{}, err
	}

	out := g.like()

	var group errgroup.Group

	for c, sigma := range perms {
		group.Go(func() error {
			index := sigma
			if invert {
				index = Invert(sigma)
			}

			for i, src := range index {
				out.Pix[i*Channels+c] = g.Pix[src*Channels+c]
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return Grid{}, err
	}

	return out, nil
}
