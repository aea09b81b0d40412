package landmark

import "math"

// PolygonArea returns the unsigned area of the closed polygon through points
// using the shoelace formula. The last point always connects back to the
// first, so repeating the first point at the end changes nothing.
// Fewer than three points give 0.
func PolygonArea(points []Point) float64 {
	var sum float64
	for i, curr := range points {
		next := points[(i+1)%len(points)]
		sum += curr.Vec().Cross(next.Vec())
	}
	return math.Abs(sum) / 2
}
