package cache

// ScopedKeyer wraps a Keyer with a prefix so several tenants or versions
// can share one backend without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ChartKey generates a prefixed chart key.
func (k *ScopedKeyer) ChartKey(rosterHash string, opts ChartKeyOpts) string {
	return k.prefix + k.inner.ChartKey(rosterHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(docHash, opts)
}
