package parser

// Options configures the parser behavior.
type Options struct {
	// ValidateReferences reports edges whose source or target names no node
	// and keeps them out of the diagram.
	ValidateReferences bool
}

// DefaultOptions returns default parser options.
func DefaultOptions() Options {
	return Options{
		ValidateReferences: true,
	}
}
