//go:build !unix

package dirty

func pageSize() int64 { return standardPageSize }

func msync([]byte) error { return nil }

func fdatasync(int) error { return nil }
