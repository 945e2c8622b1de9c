package quill

// ContextOption configures a Context during creation.
//
// Example:
//
//	dc := quill.NewContext(sink)
//	dc := quill.NewContext(sink, quill.WithFont(quill.Font{Face: "Courier", Size: 10}))
type ContextOption func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
// The set flags record which options were supplied so NewContext can
// forward them to the sink; defaults are not forwarded.
type contextOptions struct {
	font      Font
	stroke    Stroke
	fontSet   bool
	strokeSet bool
}

// defaultOptions returns the default context options.
func defaultOptions() contextOptions {
	s := defaultState()
	return contextOptions{
		font:   s.Font,
		stroke: s.Stroke,
	}
}

// WithFont sets the initial font of the Context.
// An empty face name selects DefaultFace.
func WithFont(f Font) ContextOption {
	return func(o *contextOptions) {
		o.font = f
		o.fontSet = true
	}
}

// WithStroke sets the initial stroke style of the Context.
func WithStroke(s Stroke) ContextOption {
	return func(o *contextOptions) {
		o.stroke = s
		o.strokeSet = true
	}
}
