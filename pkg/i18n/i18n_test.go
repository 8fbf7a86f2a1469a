package i18n

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, Get("en"), Get("de"))
	assert.Equal(t, Get("en"), Get(""))
}

func TestUsageNamesProgramTwice(t *testing.T) {
	for _, lang := range []string{"en", "ru"} {
		got := fmt.Sprintf(Get(lang).Usage, "xrpvanity")
		assert.Contains(t, got, "'xrpvanity <Threads> <Prefix>'", lang)
		assert.Contains(t, got, "xrpvanity 4 rRob", lang)
	}
}

func TestImpossiblePattern(t *testing.T) {
	assert.Equal(t, "Impossible pattern; Character: '0'\n", fmt.Sprintf(Get("en").ImpossiblePattern, '0'))
}
