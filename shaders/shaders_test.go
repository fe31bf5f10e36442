package shaders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	for _, name := range append(Names(), Overlay) {
		src, err := Load(name)
		require.NoError(t, err, name)
		for _, s := range []string{src.Vertex, src.Fragment} {
			assert.True(t, strings.HasPrefix(s, "#version 410 core"), name)
			assert.True(t, strings.HasSuffix(s, "\x00"), name)
			assert.Equal(t, 1, strings.Count(s, "\x00"), name)
		}
		assert.Contains(t, src.Vertex, "in vec3 vs_Pos;", name)
	}
}

func TestShapeShadersShareLayout(t *testing.T) {
	for _, name := range Names() {
		src, err := Load(name)
		require.NoError(t, err)
		for _, decl := range []string{"in vec3 vs_Nor;", "uniform mat4 u_ViewProj;", "uniform mat4 u_Model;"} {
			assert.Contains(t, src.Vertex, decl, name)
		}
		assert.Contains(t, src.Fragment, "uniform vec4 u_Color;", name)
	}
}

func TestLoadUnknown(t *testing.T) {
	_, err := Load("phong")
	assert.Error(t, err)
}
