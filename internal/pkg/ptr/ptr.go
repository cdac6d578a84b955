package ptr

func To[T any](v T) *T {
	return &v
}

func Clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
