package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTechStack_Scan(t *testing.T) {
	// MySQL drivers hand text columns back as []byte or string depending on
	// configuration; both must decode.
	t.Run("bytes", func(t *testing.T) {
		var ts TechStack
		assert.NoError(t, ts.Scan([]byte(`["go","redis"]`)))
		assert.Equal(t, TechStack{"go", "redis"}, ts)
	})

	t.Run("string", func(t *testing.T) {
		var ts TechStack
		assert.NoError(t, ts.Scan(`["react"]`))
		assert.Equal(t, TechStack{"react"}, ts)
	})

	t.Run("null", func(t *testing.T) {
		var ts TechStack
		assert.NoError(t, ts.Scan(nil))
		assert.Nil(t, ts)
	})

	t.Run("unsupported type", func(t *testing.T) {
		var ts TechStack
		assert.Error(t, ts.Scan(42))
	})
}

func TestTechStack_Value_NilIsEmptyArray(t *testing.T) {
	var ts TechStack
	v, err := ts.Value()
	assert.NoError(t, err)
	assert.Equal(t, "[]", v)
}
