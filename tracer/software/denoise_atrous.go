package software

import (
	"math"

	"github.com/spectra-render/spectra/tracer"
	"github.com/spectra-render/spectra/types"
)

// B3-spline interpolation coefficients for the 5x5 a-trous kernel. The
// outer product of this row with itself sums to one.
var atrousKernel = [3]float32{3.0 / 8.0, 1.0 / 4.0, 1.0 / 16.0}

const atrousWeightEpsilon = 1e-4

// Edge-avoiding a-trous wavelet filter. Each pass convolves the image with
// a sparse 5x5 kernel whose taps are spread stepWidth texels apart, with
// per-tap similarity weights derived from the color, albedo, normal and
// world position buffers. Doubling the step width between passes grows the
// effective filter footprint geometrically while keeping the tap count
// constant.
type atrousDenoiser struct {
	filterSize uint32

	colorSigma    float32
	albedoSigma   float32
	normalSigma   float32
	positionSigma float32
}

func newATrousDenoiser(filterSize uint32) *atrousDenoiser {
	return &atrousDenoiser{
		filterSize:    filterSize,
		colorSigma:    1.0,
		albedoSigma:   0.5,
		normalSigma:   0.5,
		positionSigma: 0.5,
	}
}

func (d *atrousDenoiser) Denoise(req *tracer.BlockRequest, buffers *bufferSet, input *Image, runRows rowRunner) *Image {
	src := input
	pass := 0
	for step := uint32(1); step <= d.filterSize; step <<= 1 {
		dst := buffers.secondary[pass&1]
		stepWidth := step
		runRows(func(y uint32) {
			d.filterRow(int(y), req, buffers, src, dst, int(stepWidth))
		})
		src = dst
		pass++
	}
	return src
}

func (d *atrousDenoiser) filterRow(y int, req *tracer.BlockRequest, buffers *bufferSet, src, dst *Image, stepWidth int) {
	stepSq := float32(stepWidth * stepWidth)

	// Rows outside the block belong to other tracers and are never
	// written; fold the taps back onto the block like the frame edges.
	minY := int(req.BlockY)
	maxY := int(req.BlockY+req.BlockH) - 1

	for x := 0; x < int(req.FrameW); x++ {
		centerColor := src.At(x, y)
		centerAlbedo := buffers.albedo.At(x, y)
		centerNormal := buffers.normal.At(x, y)
		centerPos := buffers.position.At(x, y)

		var sum types.Vec3
		var weightSum float32
		for dy := -2; dy <= 2; dy++ {
			for dx := -2; dx <= 2; dx++ {
				tapX := x + dx*stepWidth
				tapY := clampTap(y+dy*stepWidth, minY, maxY)

				h := atrousKernel[abs(dx)] * atrousKernel[abs(dy)]

				tapColor := src.At(tapX, tapY)
				w := similarity(centerColor, tapColor, d.colorSigma)
				w *= similarity(centerAlbedo, buffers.albedo.At(tapX, tapY), d.albedoSigma)

				// Normals diverge faster as taps spread out;
				// scale the distance back by the step width.
				nd := centerNormal.Sub(buffers.normal.At(tapX, tapY)).LenSq() / stepSq
				w *= expWeight(nd, d.normalSigma)

				w *= similarity(centerPos, buffers.position.At(tapX, tapY), d.positionSigma)

				sum = sum.Add(tapColor.Mul(w * h))
				weightSum += w * h
			}
		}

		if weightSum < atrousWeightEpsilon {
			weightSum = atrousWeightEpsilon
		}
		out := sum.Mul(1.0 / weightSum)
		alpha := src.At4(x, y)[3]
		dst.Set4(x, y, types.Vec4{out[0], out[1], out[2], alpha})
	}
}

func similarity(a, b types.Vec3, sigma float32) float32 {
	return expWeight(a.Sub(b).LenSq(), sigma)
}

func expWeight(distSq, sigma float32) float32 {
	w := float32(math.Exp(float64(-distSq / sigma)))
	if w > 1 {
		return 1
	}
	return w
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
