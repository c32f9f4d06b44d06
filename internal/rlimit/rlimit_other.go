//go:build !linux && !darwin

package rlimit

func ApplyAddressSpace(limitBytes uint64) error {
	if limitBytes == 0 {
		return nil
	}
	return ErrUnsupported
}

func AddressSpace() (uint64, error) {
	return 0, ErrUnsupported
}
