package landmark

import (
	"slices"

	"github.com/samber/lo"
)

const (
	// MaxMeshPoint is the number of points in the base face mesh. Anything at
	// or past this index is an auxiliary point (iris) and never part of a region.
	MaxMeshPoint = 468

	// NumIrisKeypoints is the number of points appended per eye when the
	// detector runs with iris refinement.
	NumIrisKeypoints = 5
)

var rightNose = [...]int{
	6, 197, 195, 5, 4, 1, 274, 457, 438, 344, 360, 420, 437, 343, 412, 351,
}

var leftNose = [...]int{
	6, 197, 195, 5, 4, 1, 44, 237, 218, 115, 131, 198, 217, 114, 188, 122,
}

var silhouette = [...]int{
	10, 338, 297, 332, 284, 251, 389, 356, 454, 323, 361, 288, 397, 365, 379, 378,
	400, 377, 152, 148, 176, 140, 150, 136, 172, 58, 132, 93, 234, 127, 162, 21,
	54, 103, 67, 109,
}

// Region names one of the fixed index tables.
type Region string

const (
	RegionLeftNose   Region = "left_nose"
	RegionRightNose  Region = "right_nose"
	RegionSilhouette Region = "silhouette"
)

// Regions lists every known region in a stable order.
func Regions() []Region {
	return []Region{RegionLeftNose, RegionRightNose, RegionSilhouette}
}

// Indices returns a copy of the region's index table, or nil for an unknown
// region.
func (r Region) Indices() []int {
	switch r {
	case RegionLeftNose:
		return LeftNose()
	case RegionRightNose:
		return RightNose()
	case RegionSilhouette:
		return Silhouette()
	default:
		return nil
	}
}

// LeftNose returns the 16 indices of the polygon on the left side of the nose.
func LeftNose() []int {
	return slices.Clone(leftNose[:])
}

// RightNose returns the 16 indices of the polygon on the right side of the nose.
func RightNose() []int {
	return slices.Clone(rightNose[:])
}

// Silhouette returns the 36 indices of the face outline.
func Silhouette() []int {
	return slices.Clone(silhouette[:])
}

// InNoseRegion reports whether idx belongs to either nose polygon.
func InNoseRegion(idx int) bool {
	return lo.Contains(leftNose[:], idx) || lo.Contains(rightNose[:], idx)
}
