package utils

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG
const tinyPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func TestIsDataURI(t *testing.T) {
	assert.True(t, IsDataURI("data:image/png;base64,iVBORw0KGgo="))
	assert.False(t, IsDataURI("/uploads/recipes/a.png"))
	assert.False(t, IsDataURI(""))
}

func TestSaveBase64ImageServablePath(t *testing.T) {
	t.Chdir(t.TempDir())

	path, err := SaveBase64Image(tinyPNG, "recipes")
	require.NoError(t, err)

	// the returned URL must resolve against the /static/uploads mount
	require.True(t, strings.HasPrefix(path, "/static/uploads/recipes/"), "got %s", path)
	assert.True(t, strings.HasSuffix(path, ".png"))

	_, err = os.Stat("." + path)
	assert.NoError(t, err)
}

func TestSaveBase64ImageRejectsPlainPaths(t *testing.T) {
	_, err := SaveBase64Image("/uploads/recipes/a.png", "recipes")
	assert.ErrorIs(t, err, ErrNotDataURI)

	_, err = SaveBase64Image("data:image/png;notbase64", "recipes")
	assert.ErrorIs(t, err, ErrNotDataURI)
}
