package gridcanvas

// CompositeOption configures a Composite call.
//
// Example:
//
//	// Sequential, the default
//	canvas, err := gridcanvas.Composite(s, origin, 1920, 1080, 0, 0, gridcanvas.DefaultBackground)
//
//	// Fill rows on four goroutines; output is byte-identical
//	canvas, err := gridcanvas.Composite(s, origin, 1920, 1080, 0, 0, gridcanvas.DefaultBackground,
//	    gridcanvas.WithWorkers(4))
type CompositeOption func(*compositeOptions)

// compositeOptions holds optional configuration for Composite.
type compositeOptions struct {
	workers int
}

// defaultCompositeOptions returns the default composite options.
func defaultCompositeOptions() compositeOptions {
	return compositeOptions{workers: 1}
}

// WithWorkers sets how many goroutines fill canvas rows. Values below 2 keep
// the single sequential pass.
func WithWorkers(n int) CompositeOption {
	return func(o *compositeOptions) {
		o.workers = n
	}
}
