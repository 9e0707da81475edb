package reciprocal

const (
	// DefaultRecursiveCutoff is the range length at or below which the
	// recursive strategy stops forking and sums sequentially. 32K float64s
	// are 256 KiB, roughly an L2 cache worth of input per leaf.
	DefaultRecursiveCutoff = 1 << 15

	// DefaultTolerance is the absolute difference accepted between a
	// parallel sum and the sequential baseline. Reordering additions
	// changes rounding, so bit equality is not expected.
	DefaultTolerance = 1e-2
)

// Strategy names as registered in the default factory.
const (
	NameSequential = "sequential"
	NameTwoWay     = "twoway"
	NameManyTask   = "manytask"
	NameRecursive  = "recursive"
)
