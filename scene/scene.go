package scene

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spectra-render/spectra/types"
)

// A compiled scene. All tables are read-only for the duration of a pass.
type Scene struct {
	Camera *Camera
	Light  Light

	// Flat material table and the per-object material map that remaps
	// per-triangle material slots into it.
	Materials   []Material
	MaterialMap []uint32

	// Geometry tables. Indices hold the three vertex indices of each
	// triangle plus its local material slot.
	Vertices []types.Vec3
	Normals  []types.Vec3
	Indices  [][4]uint32

	// Instancing tables.
	Objects   []Object
	Instances []Instance
}

// Attach a camera to the scene.
func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}

// Get scene statistics encoded as a table.
func (s *Scene) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Asset", "Count"})
	table.Append([]string{"Materials", fmt.Sprintf("%d", len(s.Materials))})
	table.Append([]string{"Vertices", fmt.Sprintf("%d", len(s.Vertices))})
	table.Append([]string{"Triangles", fmt.Sprintf("%d", len(s.Indices))})
	table.Append([]string{"Objects", fmt.Sprintf("%d", len(s.Objects))})
	table.Append([]string{"Instances", fmt.Sprintf("%d", len(s.Instances))})
	table.Render()
	return buf.String()
}
