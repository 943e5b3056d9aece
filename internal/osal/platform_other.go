//go:build !linux

package osal

// New returns ErrUnsupported outside Linux.
func New() (Platform, error) {
	return nil, ErrUnsupported
}

// NewChild returns ErrUnsupported outside Linux.
func NewChild() (Platform, error) {
	return nil, ErrUnsupported
}

// VerifyParent returns ErrUnsupported outside Linux.
func VerifyParent() error {
	return ErrUnsupported
}
