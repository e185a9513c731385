package file

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	cases := map[string]string{
		"part.stl":        "part.stl",
		"  part.stl ":     "part.stl",
		"dir/part.stl":    "dirpart.stl",
		`C:\models\a.obj`: "C:modelsa.obj",
		"":                "file_5",
		"/":               "file_5",
		"..":              "file_5",
	}
	for in, want := range cases {
		assert.Equal(t, want, displayName(5, in), in)
	}
}

func TestASCIIName(t *testing.T) {
	assert.Equal(t, "bracket.stl", asciiName(1, "bracket.stl"))
	assert.Regexp(t, `^[a-z0-9-]+\.stl$`, asciiName(1, "Деталь крепления.stl"))
	assert.Equal(t, "file_3.stl", asciiName(3, ".stl"))
	assert.Equal(t, "readme", asciiName(1, "README"))
}
