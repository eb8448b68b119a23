// Package machinecode backs up and restores the managed tool's machine
// identifiers. The on-disk location is not known yet, so both operations
// return ErrNotImplemented.
package machinecode

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrNotImplemented is returned by Backup and Restore.
var ErrNotImplemented = errors.New("machine code backup is not implemented")

// Backup saves the machine code for osName; "" means the running OS.
func Backup(osName string) error {
	return fmt.Errorf("backup on %s: %w: config path is not determined", target(osName), ErrNotImplemented)
}

// Restore writes back a saved machine code for osName; "" means the running OS.
func Restore(osName string) error {
	return fmt.Errorf("restore on %s: %w: config path is not determined", target(osName), ErrNotImplemented)
}

func target(osName string) string {
	if osName == "" {
		return runtime.GOOS
	}
	return osName
}
