package control

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPositiveID(t *testing.T) {
	assert.True(t, IsPositiveID(1))
	assert.True(t, IsPositiveID(42))
	assert.False(t, IsPositiveID(0))
	assert.False(t, IsPositiveID(-1))
}

func TestIsNonEmptyString(t *testing.T) {
	assert.True(t, IsNonEmptyString("abc"))
	assert.True(t, IsNonEmptyString(" abc "))
	assert.False(t, IsNonEmptyString(""))
	assert.False(t, IsNonEmptyString("   "))
	assert.False(t, IsNonEmptyString("\t\n"))
}

func TestIsOptionalEndpointID(t *testing.T) {
	assert.True(t, IsOptionalEndpointID(0), "absent is fine")
	assert.True(t, IsOptionalEndpointID(7))
	assert.False(t, IsOptionalEndpointID(-1))
}

func TestIsValidTimeoutMS(t *testing.T) {
	assert.True(t, IsValidTimeoutMS(0))
	assert.True(t, IsValidTimeoutMS(1500))
	assert.False(t, IsValidTimeoutMS(-1))
	assert.False(t, IsValidTimeoutMS(math.NaN()))
	assert.False(t, IsValidTimeoutMS(math.Inf(1)))
	assert.False(t, IsValidTimeoutMS(math.Inf(-1)))
}
