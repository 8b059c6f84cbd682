package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendixLetter(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "A"},
		{2, "B"},
		{26, "Z"},
		{27, "AA"},
		{28, "AB"},
		{52, "AZ"},
		{53, "BA"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, appendixLetter(tt.n), "n=%d", tt.n)
	}
}

func TestEquationCounterSkipsNoLabel(t *testing.T) {
	src := `$$a$$

$$b$$ {#eq:b}
`
	resolved := mustResolve(t, src, Config{})
	// The unlabeled equation still draws the counter.
	require.Contains(t, resolved.EnvNumbers, "eq:b")
	assert.Equal(t, 2, resolved.EnvNumbers["eq:b"])
}

func TestUnnumberedKindsDrawNoCounter(t *testing.T) {
	src := `::: proof {#pf:a}
Trivial.
:::

::: theorem {#thm:a}
Follows.
:::
`
	resolved := mustResolve(t, src, Config{})
	assert.NotContains(t, resolved.EnvNumbers, "pf:a")
	assert.Equal(t, 1, resolved.EnvNumbers["thm:a"])
	// The proof label still resolves, to the bare display name.
	assert.Equal(t, "Proof", resolved.Labels["pf:a"].Display)
}
