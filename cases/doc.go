// Package cases models the combinatorial case space of an experiment.
//
// A Case is one named categorical dimension (for example "scenario" with the
// values "RCP4.5" and "RCP8.5"). A Space is an ordered list of cases; its
// Cartesian product, walked case-major, is the canonical enumeration of
// case-tuples:
//
//	scenario, _ := cases.NewCase("scenario", "Climate Scenario", "low", "high")
//	year, _ := cases.NewCase("year", "Year", "2000", "2050")
//	space, _ := cases.NewSpace(scenario, year)
//
//	for t := range space.Products() {
//	    fmt.Println(t) // (low, 2000) (low, 2050) (high, 2000) (high, 2050)
//	}
//
// The first case varies slowest and the last case varies fastest. This order
// fixes the stacking order of every assembled master and the labeling of its
// case coordinates, so all code that walks a Space goes through the Odometer
// defined here.
//
// Case and Space values are immutable after construction and safe for
// concurrent use.
package cases
