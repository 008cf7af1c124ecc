package alloc

import "github.com/joshuapare/arenakit/internal/format"

// classOf returns the directory index for a block size.
func (a *Allocator) classOf(size int) int {
	return a.sizeTable.classOf(size)
}

// insertFree links the free block at off into its class list, keeping the
// list sorted by ascending address.
func (a *Allocator) insertFree(off int) {
	size := a.size(off)
	c := a.classOf(size)

	prev, cur := format.NoLink, a.heads[c]
	for cur != format.NoLink && cur < off {
		prev, cur = cur, a.succ(cur)
	}

	a.setPred(off, prev)
	a.setSucc(off, cur)
	if prev == format.NoLink {
		a.heads[c] = off
	} else {
		a.setSucc(prev, off)
	}
	if cur != format.NoLink {
		a.setPred(cur, off)
	}

	a.freeBytes += size
	a.freeBlocks++
}

// removeFree unlinks the free block at off. Its tags must still carry the
// size it was inserted with.
func (a *Allocator) removeFree(off int) {
	size := a.size(off)
	c := a.classOf(size)
	p, s := a.pred(off), a.succ(off)

	if p == format.NoLink {
		a.heads[c] = s
	} else {
		a.setSucc(p, s)
	}
	if s != format.NoLink {
		a.setPred(s, p)
	}

	a.freeBytes -= size
	a.freeBlocks--
}

// findFit returns the first block of at least asize bytes, scanning the
// class of asize and then every larger class in ascending order. Returns
// NoLink when nothing fits.
func (a *Allocator) findFit(asize int) int {
	for c := a.classOf(asize); c < len(a.heads); c++ {
		for off := a.heads[c]; off != format.NoLink; off = a.succ(off) {
			if a.size(off) >= asize {
				return off
			}
		}
	}
	return format.NoLink
}

// place marks asize bytes of the free block at off as allocated. When the
// remainder can hold a minimum block it is split off and returned to the
// directory. The remainder's right neighbour is always allocated because
// off was free, so no merge is needed.
func (a *Allocator) place(off, asize int) {
	total := a.size(off)
	a.removeFree(off)

	if total-asize >= format.MinBlockSize {
		a.setTags(off, asize, true)
		rem := off + asize
		a.setTags(rem, total-asize, false)
		a.insertFree(rem)
		a.stats.Splits++
	} else {
		a.setTags(off, total, true)
	}
	a.allocBlocks++
}
