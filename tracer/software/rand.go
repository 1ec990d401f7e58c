package software

import "github.com/spectra-render/spectra/types"

// Max candidate draws for the rejection samplers before giving up and
// returning the deterministic fallback.
const maxRejectionTries = 32

// RandomState implements a deterministic counter-based random stream. The
// state is threaded explicitly through every draw so that per-pixel work is
// reproducible and independently testable; there is no hidden global
// entropy source.
type RandomState uint32

// Derive a well-distributed random state by mixing two values through 16
// rounds of the Tiny Encryption Algorithm schedule. Used once per pixel to
// decorrelate pixels and once more to decorrelate the jitter stream from
// the scatter stream.
func TeaSeed(a, b uint32) RandomState {
	v0, v1 := a, b
	var sum uint32

	for i := 0; i < 16; i++ {
		sum += 0x9e3779b9
		v0 += ((v1 << 4) + 0xa341316c) ^ (v1 + sum) ^ ((v1 >> 5) + 0xc8013ea4)
		v1 += ((v0 << 4) + 0xad90777d) ^ (v0 + sum) ^ ((v0 >> 5) + 0x7e95761e)
	}

	return RandomState(v0)
}

// Advance the stream by one linear-congruential step and return the new
// state value.
func (st *RandomState) NextInt() uint32 {
	*st = RandomState(1664525*uint32(*st) + 1013904223)
	return uint32(*st)
}

// Draw a uniform float in [0, 1) from the low 24 bits of the next state.
func (st *RandomState) NextFloat() float32 {
	return float32(st.NextInt()&0x00ffffff) / float32(0x01000000)
}

// Draw a point inside the unit disk via bounded rejection sampling. Returns
// the disk center if no candidate is accepted within the retry cap.
func (st *RandomState) UnitDisk() types.Vec2 {
	for i := 0; i < maxRejectionTries; i++ {
		p := types.Vec2{
			2*st.NextFloat() - 1,
			2*st.NextFloat() - 1,
		}
		if p.Dot(p) < 1 {
			return p
		}
	}
	return types.Vec2{}
}

// Draw a point inside the unit sphere via bounded rejection sampling.
// Returns a fixed unit vector if no candidate is accepted within the retry
// cap.
func (st *RandomState) UnitSphere() types.Vec3 {
	for i := 0; i < maxRejectionTries; i++ {
		p := types.Vec3{
			2*st.NextFloat() - 1,
			2*st.NextFloat() - 1,
			2*st.NextFloat() - 1,
		}
		if p.Dot(p) < 1 {
			return p
		}
	}
	return types.Vec3{0, 1, 0}
}
