//go:build !linux

package hal

// NewVattu is only available on Linux.
func NewVattu() (Backend, error) {
	return nil, ErrNotSupported
}

// NewGPIOCdev is only available on Linux.
func NewGPIOCdev(chip, consumer string) (Backend, error) {
	return nil, ErrNotSupported
}

// NewGPIOMem is only available on Linux.
func NewGPIOMem() (Backend, error) {
	return nil, ErrNotSupported
}

// NewRPIO is only available on Linux.
func NewRPIO() (Backend, error) {
	return nil, ErrNotSupported
}
