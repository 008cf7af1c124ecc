// Command arenactl inspects and edits file-backed allocator arenas.
package main

func main() {
	execute()
}
