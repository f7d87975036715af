package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeMode(t *testing.T) {
	t.Parallel()

	assert.True(t, ThemeMode("dark"))
	assert.True(t, ThemeMode("light"))
	assert.False(t, ThemeMode("Dark"))
	assert.False(t, ThemeMode(""))
	assert.False(t, ThemeMode("solarized"))
}

func TestStruct_Bounds(t *testing.T) {
	t.Parallel()

	type span struct {
		Hours int `validate:"min=0,max=23"`
	}

	require.NoError(t, Struct(span{Hours: 23}))
	require.Error(t, Struct(span{Hours: 24}))
	require.Error(t, Struct(span{Hours: -1}))
}

func TestStruct_CustomTag(t *testing.T) {
	t.Parallel()

	type pref struct {
		Theme string `validate:"omitempty,theme_mode"`
	}

	require.NoError(t, Struct(pref{}))
	require.NoError(t, Struct(pref{Theme: "light"}))
	require.Error(t, Struct(pref{Theme: "blue"}))
}
