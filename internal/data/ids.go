package data

import "time"

// idAllocator hands out time based identifiers that never repeat and always
// exceed every identifier observed so far.
type idAllocator struct {
	last int64
	now  func() time.Time
}

func newIDAllocator() *idAllocator {
	return &idAllocator{now: time.Now}
}

func (a *idAllocator) next() int64 {
	id := a.now().UnixMilli()
	if id <= a.last {
		id = a.last + 1
	}
	a.last = id
	return id
}

func (a *idAllocator) observe(id int64) {
	if id > a.last {
		a.last = id
	}
}
