package component

// Position is a 2D world-space location.
// Pure data, zero methods. Systems do all the mutation.
type Position struct {
	X float64
	Y float64
}

// Velocity is displacement per second.
type Velocity struct {
	DX float64
	DY float64
}
