package software

import (
	"github.com/spectra-render/spectra/scene"
	"github.com/spectra-render/spectra/tracer"
	"github.com/spectra-render/spectra/types"
)

// The integrator drives the per-sample bounce loop and owns the frame's
// radiance estimate plus the auxiliary g-buffer produced by primary hits.
type integrator struct {
	sc      *scene.Scene
	cam     *rayCamera
	light   *scene.Light
	buffers *bufferSet
}

// Auxiliary surface data captured at the first hit of a path. Consumed by
// the edge-aware denoiser.
type surfaceInfo struct {
	albedo   types.Vec3
	normal   types.Vec3
	position types.Vec3
}

// Estimate radiance for every pixel of the request's block and write the
// per-pixel estimates into the radiance image and the first-sample primary
// hit data into the g-buffer. Pixels are independent; the caller may fan
// rows out to multiple workers.
func (in *integrator) renderRow(y uint32, req *tracer.BlockRequest) {
	samples := req.SamplesPerPixel
	if samples == 0 {
		samples = in.cam.samples
	}

	var x uint32
	for x = 0; x < req.FrameW; x++ {
		pixelIndex := y*req.FrameW + x

		var estimate types.Vec3
		var surface surfaceInfo

		var sample uint32
		for sample = 0; sample < samples; sample++ {
			jitterSt := TeaSeed(pixelIndex, req.Seed+req.FrameCount*samples+sample)
			scatterSt := TeaSeed(jitterSt.NextInt(), pixelIndex)

			ray := in.cam.primaryRay(x, y, sample, req.FrameW, req.FrameH, &jitterSt)

			capture := (*surfaceInfo)(nil)
			if sample == 0 {
				capture = &surface
			}
			estimate = estimate.Add(in.integrateSample(ray, &scatterSt, capture))
		}

		in.buffers.radiance.Set(int(x), int(y), estimate.Mul(1.0/float32(samples)))
		in.buffers.albedo.Set(int(x), int(y), surface.albedo)
		in.buffers.normal.Set(int(x), int(y), surface.normal)
		in.buffers.position.Set(int(x), int(y), surface.position)
	}
}

// Estimate the radiance carried by a single path. The loop intersects,
// shades, estimates direct light for lambertian hits, attenuates the path
// throughput and applies Russian roulette until the path is terminated by a
// miss, an absorptive material, the roulette draw or the bounce budget.
func (in *integrator) integrateSample(ray scene.Ray, st *RandomState, surface *surfaceInfo) types.Vec3 {
	var radiance types.Vec3
	throughput := types.Vec3{1, 1, 1}

	for bounce := uint32(0); ; bounce++ {
		isect, hit := in.sc.Intersect(&ray)
		if !hit {
			radiance = radiance.Add(in.light.SkyColor.MulVec(throughput))
			if surface != nil && bounce == 0 {
				surface.albedo = in.light.SkyColor
				surface.position = ray.Origin.Add(ray.Dir.Mul(rayTMax))
			}
			return radiance
		}

		normal := in.sc.HitNormal(&isect)
		mat, known := in.sc.HitMaterial(&isect)
		point := ray.Origin.Add(ray.Dir.Mul(isect.T))

		res := scatterMaterial(mat, known, ray.Dir, normal, st)
		radiance = radiance.Add(res.emission.MulVec(throughput))

		if surface != nil && bounce == 0 {
			surface.albedo = res.attenuation.Add(res.emission)
			surface.normal = normal
			surface.position = point
		}

		if known && mat.Kind == scene.Lambertian && res.scattered {
			radiance = radiance.Add(estimateDirectLight(in.sc, in.light, point, normal, res.attenuation, throughput))
		}

		throughput = throughput.MulVec(res.attenuation)

		if !res.scattered {
			return radiance
		}
		if bounce == in.cam.bounces {
			// Budget exhausted; the path contributes only what has
			// been accumulated so far.
			return radiance
		}

		// Russian roulette keeps the estimate unbiased while bounding
		// the expected path length: survivors are boosted by the
		// inverse survival probability.
		if p := throughput.MaxComponent(); p < 1 {
			if p <= 0 || st.NextFloat() > p {
				return radiance
			}
			throughput = throughput.Mul(1.0 / p)
		}

		ray = scene.Ray{
			Origin: point,
			Dir:    res.direction,
			TMin:   rayTMin,
			TMax:   rayTMax,
			Flags:  scene.CullNone,
		}
	}
}
