package agent

// Option configures safety layers created by Add and Inc.
type Option func(*layerOptions)

type layerOptions struct {
	mutationLimit int
}

// WithMutationLimit overrides the number of probe attempts a layer may
// spend per decision. Values below one fall back to
// DefaultMutationLimit.
func WithMutationLimit(n int) Option {
	return func(o *layerOptions) {
		o.mutationLimit = n
	}
}

func applyOptions(opts []Option) layerOptions {
	o := layerOptions{mutationLimit: DefaultMutationLimit}
	for _, opt := range opts {
		opt(&o)
	}
	if o.mutationLimit < 1 {
		o.mutationLimit = DefaultMutationLimit
	}
	return o
}
