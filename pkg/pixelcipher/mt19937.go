package pixelcipher

// MT19937 parameters from Matsumoto and Nishimura (1998).
const (
	mtN         = 624
	mtM         = 397
	mtMatrixA   = 0x9908b0df
	mtUpperMask = 0x80000000
	mtLowerMask = 0x7fffffff
)

// mt19937 is the 32-bit Mersenne Twister.
type mt19937 struct {
	state [mtN]uint32
	index int
}

// newMT19937 seeds the generator with init_genrand.
func newMT19937(seed uint32) *mt19937 {
	mt := &mt19937{index: mtN}

	mt.state[0] = seed
	for i := 1; i < mtN; i++ {
		prev := mt.state[i-1]
		mt.state[i] = 1812433253*(prev^(prev>>30)) + uint32(i) //nolint:gosec // i < 624
	}

	return mt
}

func (mt *mt19937) twist() {
	for i := range mtN {
		y := mt.state[i]&mtUpperMask | mt.state[(i+1)%mtN]&mtLowerMask

		next := mt.state[(i+mtM)%mtN] ^ y>>1
		if y&1 != 0 {
			next ^= mtMatrixA
		}

		mt.state[i] = next
	}

	mt.index = 0
}

// Uint32 returns the next tempered word.
func (mt *mt19937) Uint32() uint32 {
	if mt.index >= mtN {
		mt.twist()
	}

	y := mt.state[mt.index]
	mt.index++

	y ^= y >> 11
	y ^= y << 7 & 0x9d2c5680
	y ^= y << 15 & 0xefc60000
	y ^= y >> 18

	return y
}
