package ecs

// Each2 iterates over entities that have both component A and B.
// It walks the smaller pool densely and looks up each id in the larger one.
func Each2[A, B any](pa *Pool[A], pb *Pool[B], fn func(EntityID, *A, *B)) {
	if pa.Len() <= pb.Len() {
		for i, id := range pa.ids {
			if b, ok := pb.Lookup(id); ok {
				fn(id, &pa.dense[i], b)
			}
		}
		return
	}
	for i, id := range pb.ids {
		if a, ok := pa.Lookup(id); ok {
			fn(id, a, &pb.dense[i])
		}
	}
}

// Each3 iterates over entities that have components A, B, and C.
func Each3[A, B, C any](pa *Pool[A], pb *Pool[B], pc *Pool[C], fn func(EntityID, *A, *B, *C)) {
	// Iterate the smallest pool
	smallest := pa.Len()
	which := 0
	if pb.Len() < smallest {
		smallest = pb.Len()
		which = 1
	}
	if pc.Len() < smallest {
		which = 2
	}

	switch which {
	case 0:
		for i, id := range pa.ids {
			if b, ok := pb.Lookup(id); ok {
				if c, ok := pc.Lookup(id); ok {
					fn(id, &pa.dense[i], b, c)
				}
			}
		}
	case 1:
		for i, id := range pb.ids {
			if a, ok := pa.Lookup(id); ok {
				if c, ok := pc.Lookup(id); ok {
					fn(id, a, &pb.dense[i], c)
				}
			}
		}
	case 2:
		for i, id := range pc.ids {
			if a, ok := pa.Lookup(id); ok {
				if b, ok := pb.Lookup(id); ok {
					fn(id, a, b, &pc.dense[i])
				}
			}
		}
	}
}
