// Copyright (c) 2026 NexusHost. All rights reserved.
// Author: platform@nexushost.io

package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexushost/api/pkg/convert"
)

func TestToInt(t *testing.T) {
	assert.Equal(t, 42, convert.ToInt("42"))
	assert.Equal(t, 0, convert.ToInt(""))
	assert.Equal(t, 0, convert.ToInt("abc"))
}

func TestToIntD(t *testing.T) {
	assert.Equal(t, 42, convert.ToIntD("42", 7))
	assert.Equal(t, 7, convert.ToIntD("", 7))
	assert.Equal(t, 7, convert.ToIntD("abc", 7))
}

/*
TestToBoolPtr verifies the tri-state parsing used by list filters.
*/
func TestToBoolPtr(t *testing.T) {
	// Absent parameter means no filter
	assert.Nil(t, convert.ToBoolPtr(""))

	// Malformed input is treated the same as absent
	assert.Nil(t, convert.ToBoolPtr("maybe"))

	truthy := convert.ToBoolPtr("true")
	require.NotNil(t, truthy)
	assert.True(t, *truthy)

	falsy := convert.ToBoolPtr("0")
	require.NotNil(t, falsy)
	assert.False(t, *falsy)
}
