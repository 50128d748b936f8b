package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCliParams(t *testing.T) {
	got := NewCliParams()
	assert.Equal(t, &Run{}, got)
}

func TestVersionInformationDefaults(t *testing.T) {
	assert.Equal(t, "unknown", VersionInformation.Commit)
	assert.NotEmpty(t, VersionInformation.BuildVersion)
	assert.Equal(t, "dt", CliBinaryName)
}
