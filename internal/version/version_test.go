package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	v := Version{MajorNumber: 2, MinorNumber: 10, PatchNumber: 3}
	assert.Equal(t, "2.10.3", v.String())
	assert.Equal(t, "vekimeteo/2.10.3", v.UserAgent())
}
