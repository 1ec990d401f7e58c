package software

import (
	"testing"

	"github.com/spectra-render/spectra/scene"
	"github.com/spectra-render/spectra/tracer"
	"github.com/spectra-render/spectra/types"
)

func makeTestScene(t *testing.T, build func(b *scene.Builder), camera *scene.Camera, light scene.Light) *scene.Scene {
	b := scene.NewBuilder()
	if build != nil {
		build(b)
	}

	sc, err := b.Build(camera, light)
	if err != nil {
		t.Fatalf("error building scene: %v", err)
	}
	return sc
}

func TestIntegrateSampleMiss(t *testing.T) {
	light := scene.DefaultLight()
	sc := makeTestScene(t, nil, scene.NewCamera(45), light)

	in := &integrator{
		sc:      sc,
		cam:     &rayCamera{bounces: 3},
		light:   &sc.Light,
		buffers: newBufferSet(1, 1),
	}

	st := TeaSeed(1, 1)
	ray := scene.Ray{Origin: types.Vec3{}, Dir: types.Vec3{0, 0, -1}, TMin: rayTMin, TMax: rayTMax}

	var surface surfaceInfo
	radiance := in.integrateSample(ray, &st, &surface)

	if !types.ApproxEqual(radiance, light.SkyColor, 1e-6) {
		t.Fatalf("expected sky radiance %v; got %v", light.SkyColor, radiance)
	}
	if !types.ApproxEqual(surface.albedo, light.SkyColor, 1e-6) {
		t.Fatalf("expected sky albedo in the g-buffer; got %v", surface.albedo)
	}
}

func TestIntegrateSampleEmitter(t *testing.T) {
	emitterColor := types.Vec3{1, 0.5, 0.25}
	camera := scene.NewCamera(45)
	camera.Bounces = 0

	sc := makeTestScene(t, func(b *scene.Builder) {
		lamp := b.AddMaterial(scene.NewDiffuseLight(emitterColor, 1))
		panel := b.AddObject([]scene.Voxel{
			{Min: types.Vec3{-5, -5, 1}, Max: types.Vec3{5, 5, 2}, Material: lamp},
		})
		b.AddInstance(panel, types.Ident4())
	}, camera, scene.DefaultLight())

	in := &integrator{
		sc:      sc,
		cam:     &rayCamera{bounces: camera.Bounces},
		light:   &sc.Light,
		buffers: newBufferSet(1, 1),
	}

	// With a zero bounce budget a path that hits the emitter must report
	// the emitter color exactly.
	st := TeaSeed(1, 1)
	ray := scene.Ray{Origin: types.Vec3{}, Dir: types.Vec3{0, 0, 1}, TMin: rayTMin, TMax: rayTMax}
	radiance := in.integrateSample(ray, &st, nil)

	if radiance != emitterColor {
		t.Fatalf("expected emitter radiance %v; got %v", emitterColor, radiance)
	}
}

func TestIntegrateSampleBounceBudget(t *testing.T) {
	// Two facing mirror slabs would ping-pong the ray forever without a
	// budget.
	camera := scene.NewCamera(45)
	camera.Bounces = 4

	sc := makeTestScene(t, func(b *scene.Builder) {
		mirror := b.AddMaterial(scene.NewMetallic(types.Vec3{1, 1, 1}, 0))
		slab := b.AddObject([]scene.Voxel{
			{Min: types.Vec3{-5, -5, 0}, Max: types.Vec3{5, 5, 0.5}, Material: mirror},
		})
		b.AddInstance(slab, types.Translate4(types.Vec3{0, 0, 2}))
		b.AddInstance(slab, types.Translate4(types.Vec3{0, 0, -2.5}))
	}, camera, scene.DefaultLight())

	in := &integrator{
		sc:      sc,
		cam:     &rayCamera{bounces: camera.Bounces},
		light:   &sc.Light,
		buffers: newBufferSet(1, 1),
	}

	st := TeaSeed(1, 1)
	ray := scene.Ray{Origin: types.Vec3{}, Dir: types.Vec3{0, 0, 1}, TMin: rayTMin, TMax: rayTMax}

	// Mirror attenuation is 1 so roulette never triggers; termination
	// must come from the bounce budget. The enclosed path never sees the
	// sky or an emitter, so it carries no radiance.
	radiance := in.integrateSample(ray, &st, nil)
	if !types.ApproxEqual(radiance, types.Vec3{}, 1e-6) {
		t.Fatalf("expected enclosed mirror path to carry no radiance; got %v", radiance)
	}
}

func TestIntegrateSampleRouletteUnbiased(t *testing.T) {
	// A half-reflective mirror drops the path throughput to 0.5 after the
	// first bounce, so the roulette draw alone decides whether the
	// reflected ray goes on to reach the sky.
	camera := scene.NewCamera(45)
	camera.Bounces = 4

	light := scene.DefaultLight()
	sc := makeTestScene(t, func(b *scene.Builder) {
		gray := b.AddMaterial(scene.NewMetallic(types.Vec3{0.5, 0.5, 0.5}, 0))
		slab := b.AddObject([]scene.Voxel{
			{Min: types.Vec3{-5, -5, 0}, Max: types.Vec3{5, 5, 0.5}, Material: gray},
		})
		b.AddInstance(slab, types.Translate4(types.Vec3{0, 0, 2}))
	}, camera, light)

	in := &integrator{
		sc:      sc,
		cam:     &rayCamera{bounces: camera.Bounces},
		light:   &sc.Light,
		buffers: newBufferSet(1, 1),
	}

	const numSamples = 20000
	var mean types.Vec3
	for i := uint32(0); i < numSamples; i++ {
		st := TeaSeed(i, 7)
		ray := scene.Ray{Origin: types.Vec3{}, Dir: types.Vec3{0, 0, 1}, TMin: rayTMin, TMax: rayTMax}
		mean = mean.Add(in.integrateSample(ray, &st, nil))
	}
	mean = mean.Mul(1.0 / float32(numSamples))

	// Survivors of the p=0.5 draw are boosted back to full throughput;
	// averaged over many paths the estimator must converge to the same
	// attenuated sky color a roulette-free path would carry.
	expected := light.SkyColor.Mul(0.5)
	if !types.ApproxEqual(mean, expected, 0.03) {
		t.Fatalf("expected roulette-survivor mean %v; got %v", expected, mean)
	}
}

func TestRenderRow(t *testing.T) {
	const frameW, frameH = 4, 4

	camera := scene.NewCamera(45)
	camera.Samples = 2
	camera.Bounces = 1
	camera.SetupProjection(1)

	light := scene.DefaultLight()
	sc := makeTestScene(t, nil, camera, light)

	in := &integrator{
		sc:      sc,
		cam:     newRayCamera(camera),
		light:   &sc.Light,
		buffers: newBufferSet(frameW, frameH),
	}

	req := &tracer.BlockRequest{
		FrameW: frameW,
		FrameH: frameH,
		BlockY: 0,
		BlockH: frameH,
		Seed:   42,
	}

	var y uint32
	for y = 0; y < frameH; y++ {
		in.renderRow(y, req)
	}

	// Every pixel of an empty scene estimates the sky color.
	for y = 0; y < frameH; y++ {
		var x uint32
		for x = 0; x < frameW; x++ {
			estimate := in.buffers.radiance.At(int(x), int(y))
			if !types.ApproxEqual(estimate, light.SkyColor, 1e-4) {
				t.Fatalf("[pixel %d,%d] expected sky estimate %v; got %v", x, y, light.SkyColor, estimate)
			}
		}
	}
}

func TestEstimateDirectLight(t *testing.T) {
	light := scene.DefaultLight()

	// A slab above the origin occludes the straight-down light.
	sc := makeTestScene(t, func(b *scene.Builder) {
		white := b.AddMaterial(scene.NewLambertian(types.Vec3{1, 1, 1}))
		slab := b.AddObject([]scene.Voxel{
			{Min: types.Vec3{-1, 2, -1}, Max: types.Vec3{1, 2.5, 1}, Material: white},
		})
		b.AddInstance(slab, types.Ident4())
	}, scene.NewCamera(45), light)

	albedo := types.Vec3{0.8, 0.8, 0.8}
	throughput := types.Vec3{1, 1, 1}
	up := types.Vec3{0, 1, 0}

	// Occluded point directly below the slab
	contribution := estimateDirectLight(sc, &light, types.Vec3{0, 0, 0}, up, albedo, throughput)
	if !types.ApproxEqual(contribution, types.Vec3{}, 1e-6) {
		t.Fatalf("expected occluded point to receive no direct light; got %v", contribution)
	}

	// Unoccluded point to the side; full cosine term
	contribution = estimateDirectLight(sc, &light, types.Vec3{5, 0, 0}, up, albedo, throughput)
	expected := albedo.Mul(light.AmbientScale)
	if !types.ApproxEqual(contribution, expected, 1e-5) {
		t.Fatalf("expected direct light %v; got %v", expected, contribution)
	}

	// Surface facing away from the light falls back to the ambient floor
	down := types.Vec3{0, -1, 0}
	contribution = estimateDirectLight(sc, &light, types.Vec3{5, 0, 0}, down, albedo, throughput)
	expected = albedo.Mul(light.AmbientFloor)
	if !types.ApproxEqual(contribution, expected, 1e-5) {
		t.Fatalf("expected ambient floor contribution %v; got %v", expected, contribution)
	}
}
