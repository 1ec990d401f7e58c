package software

import (
	"github.com/spectra-render/spectra/tracer"
	"github.com/spectra-render/spectra/types"
)

const (
	// Max distance the discriminator may drift between adjacent accepted
	// samples before the walk stops treating them as the same surface.
	bilateralThreshold = 0.1

	// The walk along each axis covers 1/8th of the frame extent.
	bilateralReachDivisor = 8

	// Walks that accept fewer samples than this fall back to a fixed
	// 5-tap blur so isolated fireflies still get averaged out.
	bilateralMinAccepted = 5
)

// Binomial 5-tap blur used as the fallback kernel.
var bilateralFallbackKernel = [5]float32{1.0 / 16.0, 4.0 / 16.0, 6.0 / 16.0, 4.0 / 16.0, 1.0 / 16.0}

// Separable cross-bilateral filter. Instead of comparing full g-buffer
// vectors per tap it walks outward from each pixel along one axis,
// accepting neighbors whose alpha-channel surface discriminator stays
// within a threshold of a running reference, and stopping the walk at the
// first rejection. Accepted samples are blended with a weight that decays
// linearly with distance. A vertical pass feeds a horizontal pass.
type bilateralDenoiser struct{}

func newBilateralDenoiser() *bilateralDenoiser {
	return &bilateralDenoiser{}
}

func (d *bilateralDenoiser) Denoise(req *tracer.BlockRequest, buffers *bufferSet, input *Image, runRows rowRunner) *Image {
	vertical := buffers.secondary[0]
	horizontal := buffers.secondary[1]

	// The vertical walk may not leave the block; rows outside it belong
	// to other tracers and are never written.
	minY := int(req.BlockY)
	maxY := int(req.BlockY+req.BlockH) - 1

	reach := int(req.FrameH) / bilateralReachDivisor
	runRows(func(y uint32) {
		filterAxisRow(int(y), int(req.FrameW), input, vertical, 0, 1, reach, minY, maxY)
	})

	reach = int(req.FrameW) / bilateralReachDivisor
	runRows(func(y uint32) {
		filterAxisRow(int(y), int(req.FrameW), vertical, horizontal, 1, 0, reach, minY, maxY)
	})

	return horizontal
}

// Filter one row of src into dst, walking along the (stepX, stepY) axis.
// Taps along the y axis clamp to the [minY, maxY] row range.
func filterAxisRow(y, frameW int, src, dst *Image, stepX, stepY, reach, minY, maxY int) {
	if reach < 1 {
		reach = 1
	}

	for x := 0; x < frameW; x++ {
		center := src.At4(x, y)
		sum := types.Vec3{center[0], center[1], center[2]}
		weightSum := float32(1.0)
		accepted := 1

		// Walk both directions independently so an edge on one side
		// does not stop the walk on the other.
		for _, dir := range [2]int{-1, 1} {
			ref := center[3]
			for step := 1; step <= reach; step++ {
				tap := src.At4(x+dir*step*stepX, clampTap(y+dir*step*stepY, minY, maxY))
				if absf(tap[3]-ref) >= bilateralThreshold {
					break
				}
				ref = tap[3]

				w := 1 - float32(step)/float32(reach+1)
				sum = sum.Add(types.Vec3{tap[0], tap[1], tap[2]}.Mul(w))
				weightSum += w
				accepted++
			}
		}

		var out types.Vec3
		if accepted < bilateralMinAccepted {
			// Too few same-surface neighbors for a meaningful
			// average; blur unconditionally instead.
			for i := -2; i <= 2; i++ {
				tap := src.At(x+i*stepX, clampTap(y+i*stepY, minY, maxY))
				out = out.Add(tap.Mul(bilateralFallbackKernel[i+2]))
			}
		} else {
			out = sum.Mul(1.0 / weightSum)
		}
		dst.Set4(x, y, types.Vec4{out[0], out[1], out[2], center[3]})
	}
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
