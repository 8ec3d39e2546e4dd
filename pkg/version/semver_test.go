package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// withVersion temporarily sets the build version for one test.
func withVersion(t *testing.T, v string) {
	t.Helper()
	original := Version
	Version = v
	resetParsedVersion()
	t.Cleanup(func() {
		Version = original
		resetParsedVersion()
	})
}

func TestParsed_DevBuild(t *testing.T) {
	withVersion(t, "dev")
	assert.Nil(t, Parsed())
	assert.True(t, IsDevBuild())
	assert.False(t, IsPrerelease())
}

func TestParsed_Release(t *testing.T) {
	withVersion(t, "1.4.2")
	assert.NotNil(t, Parsed())
	assert.False(t, IsDevBuild())
	assert.False(t, IsPrerelease())
}

func TestIsPrerelease(t *testing.T) {
	withVersion(t, "1.5.0-beta.1")
	assert.True(t, IsPrerelease())
}

func TestCompare(t *testing.T) {
	withVersion(t, "1.4.2")
	assert.Equal(t, 1, Compare("1.4.1"))
	assert.Equal(t, 0, Compare("1.4.2"))
	assert.Equal(t, -1, Compare("2.0.0"))
	assert.Equal(t, 0, Compare("not-a-version"))
	assert.True(t, IsNewerThan("1.0.0"))
	assert.False(t, IsNewerThan("9.9.9"))
}

func TestInfo_ContainsVersion(t *testing.T) {
	assert.Contains(t, Info(), "skillpath")
	assert.Equal(t, Version, Short())
	assert.Contains(t, Full(), "Commit")
}
