//go:build unix

package dirty

import "golang.org/x/sys/unix"

// syncFD is fsync everywhere except Linux, where flush_linux.go swaps in
// fdatasync.
var syncFD = unix.Fsync

func pageSize() int64 { return int64(unix.Getpagesize()) }

// msync flushes a mapped region to its file.
func msync(data []byte) error {
	return unix.Msync(data, unix.MS_SYNC)
}

func fdatasync(fd int) error {
	if fd < 0 {
		return nil
	}
	return syncFD(fd)
}
