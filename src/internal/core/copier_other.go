//go:build !linux && !darwin

package core

// DefaultFastTransfer returns nil: there is no zero-copy backend for this
// target and every transfer goes through the slow copier.
func DefaultFastTransfer() FastTransfer {
	return nil
}
