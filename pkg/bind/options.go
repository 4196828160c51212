package bind

// SourceOption is a functional option for configuring sources.
type SourceOption func(*sourceOptions)

// sourceOptions holds configuration for source behavior.
type sourceOptions struct {
	// transient sources are skipped by snapshot capture.
	transient bool

	// persistKey is the explicit key used when the source's value is
	// captured into a snapshot.
	persistKey string
}

// Transient marks a source as non-persistent. Snapshot capture skips it.
// Use this for ephemeral state like cursor positions or hover flags.
func Transient() SourceOption {
	return func(o *sourceOptions) {
		o.transient = true
	}
}

// PersistKey sets the stable key under which the source's value is captured
// into and restored from snapshots. Sources without a key are invisible to
// the snapshot registry.
//
// Example:
//
//	quantity := bind.NewSource(1, bind.PersistKey("order.quantity"))
func PersistKey(key string) SourceOption {
	return func(o *sourceOptions) {
		o.persistKey = key
	}
}

// applySourceOptions applies the given options and returns the resulting config.
func applySourceOptions(opts []SourceOption) sourceOptions {
	var options sourceOptions
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
