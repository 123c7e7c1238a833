package component

type Health struct {
	HP    int32
	MaxHP int32
}

// Lifetime counts down to the frame where the entity is destroyed.
type Lifetime struct {
	Remaining float64 // seconds
}
