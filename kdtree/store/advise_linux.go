//go:build linux

package store

import "golang.org/x/sys/unix"

// advise hints the kernel that the mapping will be scanned sequentially.
func advise(b []byte) {
	if len(b) == 0 {
		return
	}
	_ = unix.Madvise(b, unix.MADV_SEQUENTIAL)
}
