package main

import "os"

// corruptMagic overwrites the first byte of the arena file.
func corruptMagic(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteAt([]byte{'X'}, 0)
	return err
}
