package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr error
	}{
		{name: "peripheral", input: "TIM2", want: []string{"TIM2"}},
		{name: "register", input: "TIM2/CR1", want: []string{"TIM2", "CR1"}},
		{name: "field", input: "TIM2/CR1/CEN", want: []string{"TIM2", "CR1", "CEN"}},
		{name: "cluster register", input: "DMA1/CH1/CCR", want: []string{"DMA1", "CH1", "CCR"}},
		{name: "leading slash", input: "/TIM2/CR1", want: []string{"TIM2", "CR1"}},
		{name: "trailing slash", input: "TIM2/", want: []string{"TIM2"}},
		{name: "empty", input: "", wantErr: ErrEmptyPath},
		{name: "only slashes", input: "//", wantErr: ErrEmptyPath},
		{name: "empty segment", input: "TIM2//CR1", wantErr: ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePath(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Segments)
			assert.Equal(t, tt.input, p.Raw)
		})
	}
}

func TestPathNavigation(t *testing.T) {
	p, err := ParsePath("TIM2/CR1")
	require.NoError(t, err)

	assert.Equal(t, "TIM2", p.Peripheral())
	assert.Equal(t, "TIM2/CR1", p.String())

	child := p.Child("CEN")
	assert.Equal(t, "TIM2/CR1/CEN", child.String())
	// The original is unchanged.
	assert.Equal(t, "TIM2/CR1", p.String())

	parent, ok := child.Parent()
	require.True(t, ok)
	assert.Equal(t, "TIM2/CR1", parent.String())

	root, ok := Path{Segments: []string{"TIM2"}}.Parent()
	assert.False(t, ok)
	assert.Empty(t, root.Segments)
}
