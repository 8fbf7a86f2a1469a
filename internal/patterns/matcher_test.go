package patterns

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", "r"},
		{"r", "r"},
		{"Rob", "rRob"},
		{"rRob", "rRob"},
		{"pp", "rpp"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), tt.in)
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("rRob"))
	assert.NoError(t, Validate("r"))

	err := Validate("rR0b")
	require.Error(t, err)
	var ice *InvalidCharError
	require.True(t, errors.As(err, &ice))
	assert.Equal(t, byte('0'), ice.Char)
	assert.Equal(t, 2, ice.Index)
	assert.Contains(t, err.Error(), "'0'")

	for _, bad := range []string{"rl", "rI", "rO", "r-", "r "} {
		assert.Error(t, Validate(bad), bad)
	}
}

func TestMatch(t *testing.T) {
	addr := "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"
	tests := []struct {
		prefix string
		want   bool
	}{
		{"r", true},
		{"rHb9", true},
		{addr, true},
		{"rhb9", false},
		{"rHb8", false},
		{addr + "r", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Match(addr, tt.prefix), tt.prefix)
	}
	assert.False(t, Match("rH", "rHb"))
	assert.True(t, Match("rH", ""))
}
