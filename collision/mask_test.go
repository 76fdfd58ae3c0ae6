package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMask_Test(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Mask
		expected bool
	}{
		{"same layer", MaskDefault, MaskDefault, true},
		{"different layers", Layer(1), Layer(2), false},
		{"shared layer", Layer(1).With(Layer(3)), Layer(3), true},
		{"none", MaskNone, MaskAll, false},
		{"all", MaskAll, Layer(31), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Test(tt.b))
			assert.Equal(t, tt.expected, tt.b.Test(tt.a), "symmetric")
		})
	}
}

func TestMask_WithWithout(t *testing.T) {
	m := MaskDefault.With(Layer(4))
	assert.Equal(t, Mask(0b10001), m)
	assert.Equal(t, Layer(4), m.Without(MaskDefault))
	assert.Equal(t, m, m.Without(Layer(7)))
}
