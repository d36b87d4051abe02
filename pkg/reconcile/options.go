package reconcile

// Option is a functional option for configuring the Reconciler.
type Option func(*reconciler)

// WithIgnoredColumns adds columns to exclude from comparison, on top of the
// structural defaults.
func WithIgnoredColumns(columns ...string) Option {
	return func(r *reconciler) {
		for _, c := range columns {
			r.ignored[c] = true
		}
	}
}

// WithLevelColumn overrides the level column name excluded from comparison.
func WithLevelColumn(name string) Option {
	return func(r *reconciler) {
		r.ignored[name] = true
	}
}

// WithTagColumn overrides the tag column name excluded from comparison.
func WithTagColumn(name string) Option {
	return func(r *reconciler) {
		r.ignored[name] = true
	}
}
