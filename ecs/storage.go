package ecs

// entityStore hands out monotonically increasing ids and tracks liveness.
type entityStore struct {
	nextID Entity
	alive  []bool
	count  int
}

func (s *entityStore) create() Entity {
	s.nextID++
	s.alive = append(s.alive, true)
	s.count++
	return s.nextID
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	s.alive[e-1] = false
	s.count--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	if s == nil || e == 0 || int(e) > len(s.alive) {
		return false
	}
	return s.alive[e-1]
}

func (s *entityStore) all() []Entity {
	out := make([]Entity, 0, s.count)
	for i, alive := range s.alive {
		if alive {
			out = append(out, Entity(i+1))
		}
	}
	return out
}
