package courier

// CompletedCounts holds the per-type number of settled rounds with at least one delivery.
// Counters only grow.
type CompletedCounts struct {
	Foot int
	Bike int
	Car  int
}

// Of returns the counter for the given type.
func (c CompletedCounts) Of(t Type) int {
	switch t {
	case Foot:
		return c.Foot
	case Bike:
		return c.Bike
	case Car:
		return c.Car
	default:
		return 0
	}
}

// Total returns the sum of all counters.
func (c CompletedCounts) Total() int {
	return c.Foot + c.Bike + c.Car
}

func (c *CompletedCounts) increment(t Type) {
	switch t {
	case Foot:
		c.Foot++
	case Bike:
		c.Bike++
	case Car:
		c.Car++
	}
}
