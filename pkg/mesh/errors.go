package mesh

import "errors"

// Sentinel errors returned by mesh construction and editing.
var (
	ErrDuplicateHalfEdge  = errors.New("half-edge already exists")
	ErrNonManifoldEdge    = errors.New("opposite half-edge already bound")
	ErrDegenerateTriangle = errors.New("degenerate triangle")
	ErrPolygon            = errors.New("cannot triangulate polygon")
	ErrNoHalfEdge         = errors.New("no half-edge between vertices")
	ErrNotInTriangle      = errors.New("vertex does not belong to triangle")
	ErrEmptyMesh          = errors.New("mesh has no vertices")
)
