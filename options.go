package mathcha2tikz

// Options holds configuration for a conversion run.
type Options struct {
	// placeNodes attaches text nodes to the nearest converted shape instead
	// of passing them through unchanged.
	placeNodes bool

	// nodeSnapDistance is the maximum anchor distance for node placement.
	nodeSnapDistance float64
}

// defaultOptions returns the default conversion options.
func defaultOptions() Options {
	return Options{
		placeNodes:       false,
		nodeSnapDistance: 30.0,
	}
}

// clone creates a copy of Options.
func (o Options) clone() Options {
	return Options{
		placeNodes:       o.placeNodes,
		nodeSnapDistance: o.nodeSnapDistance,
	}
}
