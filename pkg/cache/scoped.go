package cache

// ScopedKeyer prefixes every key produced by an inner Keyer. When
// several instances share one cache backend, giving each its own
// prefix keeps their entries disjoint without separate databases:
//
//	keyer := cache.NewScopedKeyer(nil, "staging:")
//	runner := pipeline.NewRunner(redisCache, keyer, logger)
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner so every generated key starts with
// prefix. A nil inner wraps the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HTTPKey returns the inner HTTP response key under this prefix.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// DatasetKey returns the inner dataset key under this prefix.
func (k *ScopedKeyer) DatasetKey(source string, opts DatasetKeyOpts) string {
	return k.prefix + k.inner.DatasetKey(source, opts)
}

// GeometryKey returns the inner geometry key under this prefix.
func (k *ScopedKeyer) GeometryKey(datasetHash string, opts GeometryKeyOpts) string {
	return k.prefix + k.inner.GeometryKey(datasetHash, opts)
}

// ArtifactKey returns the inner artifact key under this prefix.
func (k *ScopedKeyer) ArtifactKey(geometryHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(geometryHash, opts)
}
