package clipboard

// NewWithWriter creates a Copier that writes through fn.
func NewWithWriter(fn func(string) error) *Copier {
	return SetWriter(New(nil), fn)
}

// SetWriter replaces the clipboard writer of c.
func SetWriter(c *Copier, fn func(string) error) *Copier {
	c.write = fn
	return c
}
