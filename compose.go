package flux

// Compose composes unary functions right to left: Compose(a, b, c)(x) is
// a(b(c(x))). With no functions it returns the identity; with one it returns
// that function.
func Compose[T any](fns ...func(T) T) func(T) T {
	switch len(fns) {
	case 0:
		return func(x T) T { return x }
	case 1:
		return fns[0]
	}
	return func(x T) T {
		for i := len(fns) - 1; i >= 0; i-- {
			x = fns[i](x)
		}
		return x
	}
}

// ComposeEnhancers combines enhancers into one. The first enhancer listed is
// the outermost wrapper around store construction.
func ComposeEnhancers[S any](enhancers ...Enhancer[S]) Enhancer[S] {
	fns := make([]func(Constructor[S]) Constructor[S], 0, len(enhancers))
	for _, e := range enhancers {
		if e != nil {
			fns = append(fns, e)
		}
	}
	return Enhancer[S](Compose(fns...))
}
