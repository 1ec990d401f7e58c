package software

import (
	"testing"

	"github.com/spectra-render/spectra/scene"
	"github.com/spectra-render/spectra/types"
)

func TestScatterLambertian(t *testing.T) {
	mat := scene.NewLambertian(types.Vec3{0.5, 0.5, 0.5})
	normal := types.Vec3{0, 1, 0}
	st := TeaSeed(1, 1)

	for i := 0; i < 100; i++ {
		res := scatterMaterial(mat, true, types.Vec3{0, -1, 0}, normal, &st)
		if !res.scattered {
			t.Fatalf("[draw %d] expected lambertian hit to scatter", i)
		}
		if !types.ApproxEqual(res.attenuation, mat.Color, 1e-6) {
			t.Fatalf("[draw %d] expected attenuation %v; got %v", i, mat.Color, res.attenuation)
		}
		if res.direction.Dot(normal) <= 0 {
			t.Fatalf("[draw %d] expected scatter direction in the normal hemisphere; got %v", i, res.direction)
		}
		if length := res.direction.Len(); length < 0.999 || length > 1.001 {
			t.Fatalf("[draw %d] expected unit scatter direction; got length %f", i, length)
		}
	}

	// Rays approaching from behind the surface are absorbed
	res := scatterMaterial(mat, true, types.Vec3{0, 1, 0}, normal, &st)
	if res.scattered {
		t.Fatal("expected hit from behind the surface not to scatter")
	}
}

func TestScatterMetallicMirror(t *testing.T) {
	mat := scene.NewMetallic(types.Vec3{0.9, 0.9, 0.9}, 0)
	normal := types.Vec3{0, 1, 0}
	inDir := types.Vec3{1, -1, 0}.Normalize()
	st := TeaSeed(1, 1)

	res := scatterMaterial(mat, true, inDir, normal, &st)
	if !res.scattered {
		t.Fatal("expected mirror reflection to scatter")
	}

	expDir := types.Vec3{1, 1, 0}.Normalize()
	if !types.ApproxEqual(res.direction, expDir, 1e-5) {
		t.Fatalf("expected mirror direction %v; got %v", expDir, res.direction)
	}
}

func TestScatterMetallicFuzzAbsorption(t *testing.T) {
	// With a large fuzziness some reflections are pushed below the
	// surface and must be absorbed.
	mat := scene.NewMetallic(types.Vec3{0.9, 0.9, 0.9}, 1)
	normal := types.Vec3{0, 1, 0}
	inDir := types.Vec3{1, -0.01, 0}.Normalize()
	st := TeaSeed(5, 9)

	absorbed := 0
	for i := 0; i < 1000; i++ {
		res := scatterMaterial(mat, true, inDir, normal, &st)
		if res.scattered && res.direction.Dot(normal) <= 0 {
			t.Fatalf("[draw %d] scattered ray points below the surface", i)
		}
		if !res.scattered {
			absorbed++
		}
	}

	if absorbed == 0 {
		t.Fatal("expected grazing fuzzy reflections to be absorbed at least once")
	}
}

func TestScatterDielectric(t *testing.T) {
	normal := types.Vec3{0, 1, 0}
	st := TeaSeed(1, 1)

	// A refraction index of 1 passes rays straight through.
	mat := scene.NewDielectric(types.Vec3{1, 1, 1}, 1.0)
	inDir := types.Vec3{0, -1, 0}
	res := scatterMaterial(mat, true, inDir, normal, &st)
	if !res.scattered {
		t.Fatal("expected dielectric hit to scatter")
	}
	if !types.ApproxEqual(res.direction, inDir, 1e-5) {
		t.Fatalf("expected unchanged direction %v; got %v", inDir, res.direction)
	}

	// A grazing exit ray beyond the critical angle reflects back into
	// the medium.
	mat = scene.NewDielectric(types.Vec3{1, 1, 1}, 1.5)
	inDir = types.Vec3{1, 0.1, 0}.Normalize()
	res = scatterMaterial(mat, true, inDir, normal, &st)
	if !res.scattered {
		t.Fatal("expected total internal reflection to scatter")
	}
	if res.direction[1] >= 0 {
		t.Fatalf("expected reflected ray to point back into the medium; got %v", res.direction)
	}
}

func TestScatterEmissive(t *testing.T) {
	mat := scene.NewDiffuseLight(types.Vec3{1, 0.5, 0.25}, 2)
	st := TeaSeed(1, 1)

	res := scatterMaterial(mat, true, types.Vec3{0, -1, 0}, types.Vec3{0, 1, 0}, &st)
	if res.scattered {
		t.Fatal("expected emissive hit to terminate the path")
	}
	if !types.ApproxEqual(res.emission, types.Vec3{2, 1, 0.5}, 1e-6) {
		t.Fatalf("expected emission (2, 1, 0.5); got %v", res.emission)
	}
}

func TestScatterSentinel(t *testing.T) {
	type spec struct {
		mat   scene.Material
		known bool
	}
	specs := []spec{
		// Material lookup failed
		spec{scene.Material{}, false},
		// Unmapped material kind
		spec{scene.Material{Kind: scene.MaterialKind(99)}, true},
	}

	st := TeaSeed(1, 1)
	for index, s := range specs {
		res := scatterMaterial(s.mat, s.known, types.Vec3{0, -1, 0}, types.Vec3{0, 1, 0}, &st)
		if res.scattered {
			t.Fatalf("[spec %d] expected sentinel hit to terminate the path", index)
		}
		if !types.ApproxEqual(res.emission, sentinelColor, 1e-6) {
			t.Fatalf("[spec %d] expected sentinel emission %v; got %v", index, sentinelColor, res.emission)
		}
	}
}
