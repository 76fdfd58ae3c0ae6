package collision

// Mask is a set of collision layers. Two volumes interact only when their
// masks share at least one layer.
type Mask uint32

const (
	// MaskNone collides with nothing
	MaskNone Mask = 0
	// MaskDefault is the layer every entity and terrain starts on
	MaskDefault Mask = 1 << 0
	MaskAll     Mask = ^Mask(0)
)

// Layer returns the mask holding only layer n (0-31)
func Layer(n uint) Mask {
	return 1 << n
}

// Test reports whether the masks share a layer
func (m Mask) Test(other Mask) bool {
	return m&other != 0
}

// With returns m with the layers of other added
func (m Mask) With(other Mask) Mask {
	return m | other
}

// Without returns m with the layers of other removed
func (m Mask) Without(other Mask) Mask {
	return m &^ other
}
