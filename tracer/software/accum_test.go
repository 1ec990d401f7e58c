package software

import (
	"testing"

	"github.com/spectra-render/spectra/tracer"
	"github.com/spectra-render/spectra/types"
)

func TestAccumulateRow(t *testing.T) {
	type spec struct {
		temporal   bool
		frameCount uint32
		history    float32
		estimate   float32
		expected   float32
	}
	specs := []spec{
		// Without temporal blending the estimate always overwrites
		spec{false, 5, 1.0, 4.0, 4.0},
		// Before the warm-up threshold the estimate overwrites
		spec{true, 0, 1.0, 4.0, 4.0},
		spec{true, 1, 1.0, 4.0, 4.0},
		// Past the threshold the estimate joins the running mean
		spec{true, 2, 1.0, 4.0, 2.0},
		spec{true, 9, 1.0, 10.0, 1.9},
	}

	for index, s := range specs {
		radiance := NewImage(2, 1)
		accum := NewImage(2, 1)
		for x := 0; x < 2; x++ {
			radiance.Set(x, 0, types.Vec3{s.estimate, s.estimate, s.estimate})
			accum.Set(x, 0, types.Vec3{s.history, s.history, s.history})
		}

		acc := &accumulator{temporal: s.temporal}
		req := &tracer.BlockRequest{FrameW: 2, FrameH: 1, BlockH: 1, FrameCount: s.frameCount}
		acc.accumulateRow(0, req, radiance, accum)

		got := accum.At(0, 0)
		if !types.ApproxEqual(got, types.Vec3{s.expected, s.expected, s.expected}, 1e-5) {
			t.Fatalf("[spec %d] expected accumulated value %f; got %v", index, s.expected, got)
		}
	}
}

func TestTagRow(t *testing.T) {
	albedo := NewImage(1, 1)
	normal := NewImage(1, 1)
	accum := NewImage(1, 1)

	albedo.Set(0, 0, types.Vec3{0.2, 0.3, 0.5})
	normal.Set(0, 0, types.Vec3{0, 1, 0})
	accum.Set(0, 0, types.Vec3{0.7, 0.7, 0.7})

	acc := &accumulator{}
	req := &tracer.BlockRequest{FrameW: 1, FrameH: 1, BlockH: 1}
	acc.tagRow(0, req, albedo, normal, accum)

	texel := accum.At4(0, 0)
	expected := float32(0.2+0.3+0.5) + 0.5*1
	if delta := texel[3] - expected; delta < -1e-5 || delta > 1e-5 {
		t.Fatalf("expected discriminator %f in the alpha channel; got %f", expected, texel[3])
	}

	// The color channels must survive the tagging pass
	if !types.ApproxEqual(accum.At(0, 0), types.Vec3{0.7, 0.7, 0.7}, 1e-6) {
		t.Fatalf("expected color channels to be preserved; got %v", accum.At(0, 0))
	}
}
