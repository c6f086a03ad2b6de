package game

const (
	ErrorEmptyHull         = "hull has no faces"
	ErrorDegenerateFace    = "face %d has fewer than three vertices or no area"
	ErrorFaceVertexIndex   = "face %d references vertex %d out of %d"
	ErrorHeightMapSize     = "height map expects %d heights, got %d"
	ErrorHeightMapCellSize = "height map cell size must be positive, got %v"
	ErrorUnknownFlag       = "unknown brush flag %q"
	ErrorBrushShape        = "brush %d needs either min and max or vertices and faces"
	ErrorDuplicateActor    = "actor %d is defined twice"
	ErrorCapsuleShape      = "%s %d has a non-positive radius or negative half length"
)
