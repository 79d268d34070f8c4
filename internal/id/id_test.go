package id_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yclin/travel-planner/internal/id"
)

func TestNew_Format(t *testing.T) {
	for _, prefix := range []string{"trip", "day", "ev", "tk", "mem", "cl", "it"} {
		got := id.New(prefix)

		assert.True(t, strings.HasPrefix(got, prefix+"_"), "id %q should start with %q", got, prefix+"_")
		// prefix + "_" + 32 hex chars
		assert.Len(t, got, len(prefix)+1+32)
	}
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		got := id.New("trip")
		assert.False(t, seen[got], "duplicate id %q", got)
		seen[got] = true
	}
}
