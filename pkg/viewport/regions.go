package viewport

import (
	"fmt"
	"sort"
)

// Full is the default root view: the square of half-width 2 centred on the origin,
// which holds the entire set.
var Full = Bounds{StartX: -2, EndX: 2, StartY: -2, EndY: 2}

// Classic regions / landmarks in the Mandelbrot set.
var regions = map[string]Bounds{
	"full": Full,

	// Seahorse Valley – dense filaments and repeating "seahorse" curls
	"seahorse": {StartX: -0.8, EndX: -0.7, StartY: 0.05, EndY: 0.15},

	// Elephant Valley – large bulb with trunk-like tendrils
	"elephant": {StartX: -1.85, EndX: -1.75, StartY: -0.10, EndY: -0.02},

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	"spiral": {StartX: -0.7435, EndX: -0.7420, StartY: 0.1310, EndY: 0.1325},

	// Triple Spiral – threefold symmetric spiral structure
	"triple-spiral": {StartX: -0.7480, EndX: -0.7450, StartY: 0.0950, EndY: 0.0980},

	// Valley of the Dragon – deep, highly detailed spiral filaments
	"dragon": {StartX: -0.7400, EndX: -0.7350, StartY: 0.1800, EndY: 0.1850},

	// Minibrot in a Mini-Spiral – self-similar copy inside a spiral arm
	"mini-spiral": {StartX: -1.7390, EndX: -1.7375, StartY: -0.0235, EndY: -0.0220},
}

// Region looks up a named landmark.
func Region(name string) (Bounds, error) {
	b, ok := regions[name]
	if !ok {
		return Bounds{}, fmt.Errorf("unknown region %q, want one of %v", name, RegionNames())
	}
	return b, nil
}

// RegionNames lists the known landmarks in sorted order.
func RegionNames() []string {
	names := make([]string, 0, len(regions))
	for name := range regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
