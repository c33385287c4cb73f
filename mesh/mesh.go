package mesh

import "math"

// Vector2 is a point or direction in 2D space.
type Vector2 struct {
	X, Y float32
}

// Vector3 is a point or direction in 3D space.
type Vector3 struct {
	X, Y, Z float32
}

// Sub returns the component-wise difference v - w.
func (v Vector3) Sub(w Vector3) Vector3 {
	return Vector3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// Add returns the component-wise sum v + w.
func (v Vector3) Add(w Vector3) Vector3 {
	return Vector3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Cross returns the cross product v x w.
func (v Vector3) Cross(w Vector3) Vector3 {
	return Vector3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Dot returns the dot product of v and w.
func (v Vector3) Dot(w Vector3) float32 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Normalize returns v scaled to unit length, or the zero vector when v has
// no length.
func (v Vector3) Normalize() Vector3 {
	l := math.Sqrt(float64(v.Dot(v)))
	if l == 0 {
		return Vector3{}
	}
	inv := float32(1 / l)

	return Vector3{X: v.X * inv, Y: v.Y * inv, Z: v.Z * inv}
}

// Triangle indexes three vertices of a TriangleMesh in counter-clockwise
// order when viewed from outside the alive region.
type Triangle [3]uint32

// Segment indexes two vertices of a LineMesh. The alive region lies to the
// left when walking from the first vertex to the second.
type Segment [2]uint32

// TriangleMesh is an indexed triangle mesh produced by FromGrid3. Vertices
// shared between neighboring cells appear exactly once.
type TriangleMesh struct {
	positions []Vector3
	normals   []Vector3
	triangles []Triangle
}

// Positions returns the vertex positions. The returned slice is owned by the
// mesh and must not be modified.
func (m *TriangleMesh) Positions() []Vector3 {
	return m.positions
}

// Normals returns the per-vertex unit normals, index-aligned with Positions.
// Normals point away from the alive region.
func (m *TriangleMesh) Normals() []Vector3 {
	return m.normals
}

// Triangles returns the triangle index list.
func (m *TriangleMesh) Triangles() []Triangle {
	return m.triangles
}

// NumVertices returns the number of vertices in the mesh.
func (m *TriangleMesh) NumVertices() int {
	return len(m.positions)
}

// NumTriangles returns the number of triangles in the mesh.
func (m *TriangleMesh) NumTriangles() int {
	return len(m.triangles)
}

// IsEmpty reports whether the mesh contains no triangles.
func (m *TriangleMesh) IsEmpty() bool {
	return len(m.triangles) == 0
}

// LineMesh is an indexed polyline set produced by FromGrid2.
type LineMesh struct {
	positions []Vector2
	segments  []Segment
}

// Positions returns the vertex positions. The returned slice is owned by the
// mesh and must not be modified.
func (m *LineMesh) Positions() []Vector2 {
	return m.positions
}

// Segments returns the segment index list.
func (m *LineMesh) Segments() []Segment {
	return m.segments
}

// NumVertices returns the number of vertices in the mesh.
func (m *LineMesh) NumVertices() int {
	return len(m.positions)
}

// NumSegments returns the number of segments in the mesh.
func (m *LineMesh) NumSegments() int {
	return len(m.segments)
}

// IsEmpty reports whether the mesh contains no segments.
func (m *LineMesh) IsEmpty() bool {
	return len(m.segments) == 0
}
