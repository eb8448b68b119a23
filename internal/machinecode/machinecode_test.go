package machinecode

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackupRestore_NotImplemented(t *testing.T) {
	err := Backup("")
	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.Contains(t, err.Error(), runtime.GOOS)

	err = Restore("windows")
	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.Contains(t, err.Error(), "windows")
}
