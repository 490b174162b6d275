package vxl

import "math"

// Vertex is a mesh corner with a 24-bit RGB color.
type Vertex struct {
	Position [3]float32
	Color    uint32
}

// Mesh is an indexed triangle mesh of the map's exposed surface.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// faceDir is one of the six face orientations: the axis the face is
// perpendicular to (0=x, 1=y, 2=z) and which way it looks along it.
type faceDir struct {
	axis int
	sign int
}

var faceDirs = [6]faceDir{{0, 1}, {0, -1}, {1, 1}, {1, -1}, {2, 1}, {2, -1}}

// planeAxes[axis] lists the two axes spanning a face slice perpendicular to
// axis.
var planeAxes = [3][2]int{{1, 2}, {0, 2}, {0, 1}}

// GenerateMesh builds a greedy mesh of the map's exposed surface: for each
// of the six face directions it masks the faces whose neighbor is air under
// the surface boundary rules, then merges same-color runs into single
// quads. Face colors come from Get, so interior faces freshly exposed by
// mutation render with DefaultColor.
func GenerateMesh(m *Map) *Mesh {
	mesh := &Mesh{}
	dims := [3]int{m.width, m.height, m.depth}

	for _, dir := range faceDirs {
		ua, va := planeAxes[dir.axis][0], planeAxes[dir.axis][1]
		nu, nv := dims[ua], dims[va]
		colors := make([]uint32, nu*nv)
		open := make([]bool, nu*nv)

		for p := 0; p < dims[dir.axis]; p++ {
			for i := range open {
				open[i] = false
			}
			for u := 0; u < nu; u++ {
				for v := 0; v < nv; v++ {
					var pos [3]int
					pos[dir.axis] = p
					pos[ua] = u
					pos[va] = v
					if !m.geom.get(pos[0], pos[1], pos[2]) {
						continue
					}
					nb := pos
					nb[dir.axis] = p + dir.sign
					if m.geom.solidForExposure(nb[0], nb[1], nb[2]) {
						continue
					}
					colors[u*nv+v] = m.Get(pos[0], pos[1], pos[2])
					open[u*nv+v] = true
				}
			}
			mergeSlice(mesh, dir, ua, va, p, nu, nv, colors, open)
		}
	}
	return mesh
}

// mergeSlice grows each unconsumed face of the slice into the largest
// same-color rectangle, first along v, then row by row along u, and emits it
// as one quad.
func mergeSlice(mesh *Mesh, dir faceDir, ua, va, p, nu, nv int, colors []uint32, open []bool) {
	for u := 0; u < nu; u++ {
		for v := 0; v < nv; {
			if !open[u*nv+v] {
				v++
				continue
			}
			color := colors[u*nv+v]
			runV := 1
			for v+runV < nv && open[u*nv+v+runV] && colors[u*nv+v+runV] == color {
				runV++
			}
			runU := 1
		grow:
			for u+runU < nu {
				for k := v; k < v+runV; k++ {
					if !open[(u+runU)*nv+k] || colors[(u+runU)*nv+k] != color {
						break grow
					}
				}
				runU++
			}
			for uu := u; uu < u+runU; uu++ {
				for vv := v; vv < v+runV; vv++ {
					open[uu*nv+vv] = false
				}
			}
			emitFace(mesh, dir, ua, va, p, u, v, runU, runV, color)
			v += runV
		}
	}
}

// emitFace appends one rectangle as two triangles. The winding is not
// precomputed per direction: the quad's own cross product is checked against
// dir and the diagonal corners swapped if it faces into the solid.
func emitFace(mesh *Mesh, dir faceDir, ua, va, p, u, v, runU, runV int, color uint32) {
	plane := p
	if dir.sign > 0 {
		plane++
	}
	corner := func(du, dv int) [3]float32 {
		var pt [3]float32
		pt[dir.axis] = float32(plane)
		pt[ua] = float32(u + du)
		pt[va] = float32(v + dv)
		return pt
	}
	quad := [4][3]float32{corner(0, 0), corner(runU, 0), corner(runU, runV), corner(0, runV)}
	if n := vcross(vsub(quad[1], quad[0]), vsub(quad[3], quad[0])); n[dir.axis]*float32(dir.sign) < 0 {
		quad[1], quad[3] = quad[3], quad[1]
	}

	start := uint32(len(mesh.Vertices))
	for _, pt := range quad {
		mesh.Vertices = append(mesh.Vertices, Vertex{Position: pt, Color: color})
	}
	mesh.Indices = append(mesh.Indices, start, start+1, start+2, start, start+2, start+3)
}

// FlatNormals returns a per-vertex normal array with one constant normal per
// face, the form renderers want for faceted voxel shading. Vertices are not
// shared across faces, so the last triangle of a face wins harmlessly.
func (msh *Mesh) FlatNormals() [][3]float32 {
	normals := make([][3]float32, len(msh.Vertices))
	for i := 0; i+2 < len(msh.Indices); i += 3 {
		a, b, c := msh.Indices[i], msh.Indices[i+1], msh.Indices[i+2]
		n := triangleNormal(msh.Vertices[a].Position, msh.Vertices[b].Position, msh.Vertices[c].Position)
		normals[a], normals[b], normals[c] = n, n, n
	}
	return normals
}

func triangleNormal(a, b, c [3]float32) [3]float32 {
	return vnormalize(vcross(vsub(b, a), vsub(c, a)))
}

func vsub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func vcross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func vnormalize(a [3]float32) [3]float32 {
	l := float32(math.Sqrt(float64(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])))
	if l == 0 {
		return a
	}
	return [3]float32{a[0] / l, a[1] / l, a[2] / l}
}
