package landmark

const maxIrises = 2

// Iris is the ellipse drawn around one eye's iris.
type Iris struct {
	Center    Point   `json:"center"`
	DiameterX float64 `json:"diameter_x"`
	DiameterY float64 `json:"diameter_y"`
}

// Irises returns the iris ellipses appended after the base mesh. Each eye
// contributes NumIrisKeypoints points: the center followed by four contour
// points, where 1 and 3 span the horizontal diameter and 2 and 4 the vertical.
// A partial trailing group is ignored.
func Irises(mesh *Mesh) []Iris {
	if mesh.Len() <= MaxMeshPoint {
		return nil
	}

	var irises []Iris
	for start := MaxMeshPoint; start+NumIrisKeypoints <= len(mesh.Points) && len(irises) < maxIrises; start += NumIrisKeypoints {
		group := mesh.Points[start : start+NumIrisKeypoints]
		irises = append(irises, Iris{
			Center:    group[0],
			DiameterX: distance(group[3], group[1]),
			DiameterY: distance(group[4], group[2]),
		})
	}

	return irises
}
