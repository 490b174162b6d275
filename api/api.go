package api

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/voxelsplace/vxl/vxl"
)

// VXLToGLB decodes a raw VXL stream at the given dimensions and returns a
// binary glTF of its surface mesh.
func VXLToGLB(data []byte, w, h, d int) ([]byte, error) {
	m, err := vxl.Create(w, h, d, data)
	if err != nil {
		return nil, err
	}
	return MapToGLB(m)
}

// MapToGLB builds the greedy surface mesh of a map and encodes it as a .glb
// blob with flat normals and a single vertex-colored material.
func MapToGLB(m *vxl.Map) ([]byte, error) {
	mesh := vxl.GenerateMesh(m)
	if len(mesh.Vertices) == 0 {
		return nil, fmt.Errorf("map has no exposed surface")
	}

	positions := make([][3]float32, len(mesh.Vertices))
	colors := make([][4]float32, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		positions[i] = v.Position
		colors[i] = [4]float32{
			float32((v.Color>>16)&0xFF) / 255,
			float32((v.Color>>8)&0xFF) / 255,
			float32(v.Color&0xFF) / 255,
			1,
		}
	}
	indices := make([]uint32, len(mesh.Indices))
	copy(indices, mesh.Indices)
	normals := mesh.FlatNormals()

	doc := gltf.NewDocument()
	doc.Asset.Generator = "VXL -> GLB"
	posAccessor := modeler.WritePosition(doc, positions)
	normalAccessor := modeler.WriteNormal(doc, normals)
	colorAccessor := modeler.WriteColor(doc, colors)
	indicesAccessor := modeler.WriteIndices(doc, indices)
	prim := &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION: posAccessor,
			gltf.NORMAL:   normalAccessor,
			gltf.COLOR_0:  colorAccessor,
		},
		Indices: gltf.Index(indicesAccessor),
	}
	pbr := &gltf.PBRMetallicRoughness{
		BaseColorFactor: &[4]float64{1, 1, 1, 1},
		MetallicFactor:  gltf.Float(0),
		RoughnessFactor: gltf.Float(1),
	}
	material := &gltf.Material{PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaOpaque}
	doc.Materials = []*gltf.Material{material}
	prim.Material = gltf.Index(0)
	meshGltf := &gltf.Mesh{Name: "MapMesh", Primitives: []*gltf.Primitive{prim}}
	doc.Meshes = []*gltf.Mesh{meshGltf}
	node := &gltf.Node{Mesh: gltf.Index(0)}
	doc.Nodes = []*gltf.Node{node}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	var out bytes.Buffer
	enc := gltf.NewEncoder(&out)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// PackMaps builds a VXLPACK from raw VXL blobs keyed by name. Every blob
// must decode at the given dimensions; the blob itself is stored as
// provided.
func PackMaps(files map[string][]byte, w, h, d int, comp vxl.Compression) ([]byte, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files")
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	pack := &vxl.Pack{W: w, H: h, D: d}
	for _, name := range names {
		data := files[name]
		if _, err := vxl.Create(w, h, d, data); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		pack.Entries = append(pack.Entries, vxl.PackEntry{Name: name, Data: data})
	}
	return pack.Marshal(comp)
}

// UnpackToMemory returns the raw VXL blobs of a pack keyed by name, plus the
// shared dimensions.
func UnpackToMemory(packBytes []byte) (files map[string][]byte, w, h, d int, err error) {
	pack, err := vxl.UnmarshalPack(packBytes)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	files = make(map[string][]byte, len(pack.Entries))
	for _, e := range pack.Entries {
		files[e.Name] = e.Data
	}
	return files, pack.W, pack.H, pack.D, nil
}
