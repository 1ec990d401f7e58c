package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spectra-render/spectra/scene"
	"github.com/spectra-render/spectra/types"
	"github.com/urfave/cli"
)

// The built-in scenes selectable by name from the render commands.
var sceneCatalog = map[string]func() (*scene.Scene, error){
	"cornell": buildCornellScene,
	"sunlit":  buildSunlitScene,
}

func buildScene(name string) (*scene.Scene, error) {
	builderFn, exists := sceneCatalog[name]
	if !exists {
		names := make([]string, 0, len(sceneCatalog))
		for known := range sceneCatalog {
			names = append(names, known)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown scene %q; available scenes: %s", name, strings.Join(names, ", "))
	}
	return builderFn()
}

// Display scene info.
func ShowSceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return fmt.Errorf("missing scene name argument")
	}

	sc, err := buildScene(ctx.Args().First())
	if err != nil {
		return err
	}

	logger.Noticef("scene information:\n%s", sc.Stats())
	return nil
}

// A cornell-style closed room with an emissive ceiling panel, a metallic
// block and a glass block. The front face is left open for the camera.
func buildCornellScene() (*scene.Scene, error) {
	b := scene.NewBuilder()

	white := b.AddMaterial(scene.NewLambertian(types.Vec3{0.73, 0.73, 0.73}))
	red := b.AddMaterial(scene.NewLambertian(types.Vec3{0.65, 0.05, 0.05}))
	green := b.AddMaterial(scene.NewLambertian(types.Vec3{0.12, 0.45, 0.15}))
	metal := b.AddMaterial(scene.NewMetallic(types.Vec3{0.8, 0.85, 0.88}, 0.1))
	glass := b.AddMaterial(scene.NewDielectric(types.Vec3{1, 1, 1}, 1.5))
	lamp := b.AddMaterial(scene.NewDiffuseLight(types.Vec3{1, 1, 1}, 5))

	room := b.AddObject([]scene.Voxel{
		{Min: types.Vec3{-1, -1.05, -1}, Max: types.Vec3{1, -1, 1}, Material: white},
		{Min: types.Vec3{-1, 1, -1}, Max: types.Vec3{1, 1.05, 1}, Material: white},
		{Min: types.Vec3{-1, -1, -1.05}, Max: types.Vec3{1, 1, -1}, Material: white},
		{Min: types.Vec3{-1.05, -1, -1}, Max: types.Vec3{-1, 1, 1}, Material: red},
		{Min: types.Vec3{1, -1, -1}, Max: types.Vec3{1.05, 1, 1}, Material: green},
		{Min: types.Vec3{-0.3, 0.95, -0.3}, Max: types.Vec3{0.3, 1, 0.3}, Material: lamp},
	})
	tallBlock := b.AddObject([]scene.Voxel{
		{Min: types.Vec3{-0.25, 0, -0.25}, Max: types.Vec3{0.25, 1.2, 0.25}, Material: metal},
	})
	glassBlock := b.AddObject([]scene.Voxel{
		{Min: types.Vec3{-0.25, 0, -0.25}, Max: types.Vec3{0.25, 0.5, 0.25}, Material: glass},
	})

	b.AddInstance(room, types.Ident4())
	b.AddInstance(tallBlock, types.Translate4(types.Vec3{-0.4, -1, -0.35}))
	b.AddInstance(glassBlock, types.Translate4(types.Vec3{0.45, -1, 0.3}))

	camera := scene.NewCamera(45)
	camera.Position = types.Vec3{0, 0, 3.4}
	camera.LookAt = types.Vec3{0, 0, 0}

	light := scene.DefaultLight()
	return b.Build(camera, light)
}

// An open scene lit by the directional light and the sky gradient. Good for
// eyeballing hard shadows and the lens depth of field.
func buildSunlitScene() (*scene.Scene, error) {
	b := scene.NewBuilder()

	ground := b.AddMaterial(scene.NewLambertian(types.Vec3{0.5, 0.5, 0.5}))
	red := b.AddMaterial(scene.NewLambertian(types.Vec3{0.7, 0.2, 0.2}))
	metal := b.AddMaterial(scene.NewMetallic(types.Vec3{0.9, 0.9, 0.9}, 0.05))
	glass := b.AddMaterial(scene.NewDielectric(types.Vec3{1, 1, 1}, 1.5))

	floor := b.AddObject([]scene.Voxel{
		{Min: types.Vec3{-20, -0.5, -20}, Max: types.Vec3{20, 0, 20}, Material: ground},
	})
	cube := b.AddObject([]scene.Voxel{
		{Min: types.Vec3{-0.5, 0, -0.5}, Max: types.Vec3{0.5, 1, 0.5}, Material: red},
	})
	mirrorCube := b.AddObject([]scene.Voxel{
		{Min: types.Vec3{-0.5, 0, -0.5}, Max: types.Vec3{0.5, 1, 0.5}, Material: metal},
	})
	glassCube := b.AddObject([]scene.Voxel{
		{Min: types.Vec3{-0.4, 0, -0.4}, Max: types.Vec3{0.4, 0.8, 0.4}, Material: glass},
	})

	b.AddInstance(floor, types.Ident4())
	b.AddInstance(cube, types.Translate4(types.Vec3{-1.6, 0, 0}))
	b.AddInstance(mirrorCube, types.Translate4(types.Vec3{0, 0, -1}))
	b.AddInstance(glassCube, types.Translate4(types.Vec3{1.5, 0, 0.5}))

	camera := scene.NewCamera(60)
	camera.Position = types.Vec3{0, 1.2, 3.4}
	camera.LookAt = types.Vec3{0, 0.5, 0}
	camera.Aperture = 0.04

	light := scene.DefaultLight()
	light.Direction = types.Vec3{-0.4, -1, -0.3}
	return b.Build(camera, light)
}
