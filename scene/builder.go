package scene

import (
	"fmt"

	"github.com/spectra-render/spectra/types"
)

// An axis-aligned box authored relative to its object origin.
type Voxel struct {
	Min, Max types.Vec3

	// Index into the builder's material list.
	Material uint32
}

// Builder compiles authored materials, voxel objects and instances into the
// packed tables a Scene exposes to tracers. Construction of a smarter
// acceleration structure is an external concern; the builder emits flat
// per-instance triangle ranges.
type Builder struct {
	scene *Scene
	err   error
}

// Create a new scene builder.
func NewBuilder() *Builder {
	return &Builder{
		scene: &Scene{},
	}
}

// Register a material and return its index in the material table.
func (b *Builder) AddMaterial(mat Material) uint32 {
	b.scene.Materials = append(b.scene.Materials, mat)
	return uint32(len(b.scene.Materials) - 1)
}

// Register an object built from a list of voxels and return its index in the
// object table. Each voxel is tessellated into 12 triangles with outward
// facing per-face normals.
func (b *Builder) AddObject(voxels []Voxel) uint32 {
	object := Object{
		IndexOffset:    uint32(len(b.scene.Indices)),
		MaterialOffset: uint32(len(b.scene.MaterialMap)),
	}

	// Local material slots, in first-use order.
	slots := make(map[uint32]uint32)

	for _, voxel := range voxels {
		slot, ok := slots[voxel.Material]
		if !ok {
			slot = uint32(len(slots))
			slots[voxel.Material] = slot
			b.scene.MaterialMap = append(b.scene.MaterialMap, voxel.Material)

			if voxel.Material >= uint32(len(b.scene.Materials)) && b.err == nil {
				b.err = fmt.Errorf("scene: voxel references unknown material %d", voxel.Material)
			}
		}
		b.addBox(voxel.Min, voxel.Max, slot)
	}

	object.TriangleCount = uint32(len(b.scene.Indices)) - object.IndexOffset
	b.scene.Objects = append(b.scene.Objects, object)
	return uint32(len(b.scene.Objects) - 1)
}

// Place an instance of an object in the world.
func (b *Builder) AddInstance(objectIndex uint32, transform types.Mat4) {
	if objectIndex >= uint32(len(b.scene.Objects)) {
		if b.err == nil {
			b.err = fmt.Errorf("scene: instance references unknown object %d", objectIndex)
		}
		return
	}

	b.scene.Instances = append(b.scene.Instances, Instance{
		ObjectIndex:  objectIndex,
		Transform:    transform,
		invTransform: transform.Inv(),
	})
}

// Finalize the scene with the supplied camera and light data.
func (b *Builder) Build(camera *Camera, light Light) (*Scene, error) {
	if b.err != nil {
		return nil, b.err
	}
	if camera == nil {
		return nil, fmt.Errorf("scene: no camera defined")
	}

	b.scene.Camera = camera
	b.scene.Light = light
	return b.scene, nil
}

// Box face layout: 4 vertices and 2 triangles per face, normals pointing
// outwards.
var boxFaces = [6]struct {
	normal  types.Vec3
	corners [4][3]int // selects min(0)/max(1) per axis
}{
	{types.Vec3{0, 0, 1}, [4][3]int{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},   // +z
	{types.Vec3{0, 0, -1}, [4][3]int{{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}}},  // -z
	{types.Vec3{1, 0, 0}, [4][3]int{{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}}},   // +x
	{types.Vec3{-1, 0, 0}, [4][3]int{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}},  // -x
	{types.Vec3{0, 1, 0}, [4][3]int{{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}}},   // +y
	{types.Vec3{0, -1, 0}, [4][3]int{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},  // -y
}

func (b *Builder) addBox(min, max types.Vec3, materialSlot uint32) {
	bounds := [2]types.Vec3{min, max}

	for _, face := range boxFaces {
		base := uint32(len(b.scene.Vertices))
		for _, corner := range face.corners {
			v := types.Vec3{
				bounds[corner[0]][0],
				bounds[corner[1]][1],
				bounds[corner[2]][2],
			}
			b.scene.Vertices = append(b.scene.Vertices, v)
			b.scene.Normals = append(b.scene.Normals, face.normal)
		}

		b.scene.Indices = append(b.scene.Indices,
			[4]uint32{base, base + 1, base + 2, materialSlot},
			[4]uint32{base, base + 2, base + 3, materialSlot},
		)
	}
}
