package schema

// ImageRef is an image resolved by an ImageResolver. Validation treats it as
// opaque and only passes it through.
type ImageRef interface {
	Src() string
}

// ImageResolver turns an image reference from a content file into an ImageRef.
type ImageResolver interface {
	ResolveImage(ref string) (ImageRef, error)
}

// ImageResolverFunc adapts a function to ImageResolver.
type ImageResolverFunc func(ref string) (ImageRef, error)

// ResolveImage calls f(ref).
func (f ImageResolverFunc) ResolveImage(ref string) (ImageRef, error) {
	return f(ref)
}
