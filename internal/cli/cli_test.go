package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLIStatusErrorsAndWarnings(t *testing.T) {
	require.Equal(t, 0, ExitStatus())

	SetExitStatus(1)
	assert.Equal(t, 1, ExitStatus())

	SetExitStatus(0) // must never lower an already-worse status
	assert.Equal(t, 1, ExitStatus())

	Errorf("boom: %s", "oops")
	assert.Equal(t, 2, ExitStatus())

	err := Errors()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom: oops")

	Warnf("just a warning")
	assert.Equal(t, 2, ExitStatus(), "Warnf must not change exit status")
}
