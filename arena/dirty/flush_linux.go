//go:build linux

package dirty

import "golang.org/x/sys/unix"

func init() {
	syncFD = unix.Fdatasync
}
