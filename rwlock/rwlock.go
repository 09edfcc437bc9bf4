package rwlock

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// RWLock is a readers-writer lock that tracks holds per goroutine. Any
// number of goroutines may read concurrently; writing is exclusive. Unlike
// sync.RWMutex, holds are reentrant: a goroutine may nest read holds inside
// read holds and write holds inside write holds without deadlocking itself.
//
// Writers are preferred: once a writer is waiting, goroutines without an
// existing hold queue behind it instead of starting new reads. Goroutines
// that already hold a read are exempt, so established readers can always
// finish.
//
// The zero value is not ready to use; call New.
type RWLock struct {
	mu   sync.Mutex
	cond *sync.Cond

	readers        map[uint64]int // goroutine id -> read depth
	writer         uint64         // goroutine id of the active writer, 0 when none
	writerDepth    int
	writerReads    int // read holds taken by the writer during its write
	writersWaiting int
}

// New returns a ready-to-use lock.
func New() *RWLock {
	l := &RWLock{readers: make(map[uint64]int)}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// Read runs fn while holding a read lock. Nesting Read inside Read on the
// same goroutine is fine. Calling Read while holding the write lock returns
// ErrReadWhileWrite; the write-to-read transition exists only through the
// raw primitives. The hold is released even if fn panics.
func (l *RWLock) Read(fn func()) error {
	g := gid()
	l.mu.Lock()
	if l.writer == g {
		l.mu.Unlock()
		return ErrReadWhileWrite
	}
	l.acquireReadLocked(g)
	l.mu.Unlock()

	defer func() { _ = l.ReleaseRead() }()
	fn()
	return nil
}

// Write runs fn while holding the write lock. Nesting Write inside Write on
// the same goroutine is fine. Calling Write while holding only a read lock
// returns ErrWriteWhileRead. The hold is released even if fn panics.
func (l *RWLock) Write(fn func()) error {
	if err := l.AcquireWrite(); err != nil {
		return err
	}
	defer func() { _ = l.ReleaseWrite() }()
	fn()
	return nil
}

// AcquireRead takes one read hold, blocking while a writer is active or
// queued. A goroutine that already holds a read acquires immediately, and
// the active writer may acquire reads under its write lock to set up a
// downgrade; see ReleaseWrite.
func (l *RWLock) AcquireRead() {
	g := gid()
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.writer == g {
		l.writerReads++
		return
	}
	l.acquireReadLocked(g)
}

func (l *RWLock) acquireReadLocked(g uint64) {
	if l.readers[g] > 0 {
		l.readers[g]++
		return
	}
	for l.writerDepth > 0 || l.writersWaiting > 0 {
		l.cond.Wait()
	}
	l.readers[g] = 1
}

// ReleaseRead drops one read hold taken by the calling goroutine.
func (l *RWLock) ReleaseRead() error {
	g := gid()
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.writer == g {
		if l.writerReads == 0 {
			return ErrNotHeld
		}
		l.writerReads--
		return nil
	}

	depth := l.readers[g]
	if depth == 0 {
		return ErrNotHeld
	}
	if depth > 1 {
		l.readers[g] = depth - 1
		return nil
	}
	delete(l.readers, g)
	if len(l.readers) == 0 {
		l.cond.Broadcast()
	}
	return nil
}

// AcquireWrite takes the write lock, waiting for active readers to drain
// and keeping new readers out while it waits. Reentrant for the goroutine
// already writing. A goroutine holding only a read lock gets
// ErrWriteWhileRead, since waiting for its own read to drain would never
// return.
func (l *RWLock) AcquireWrite() error {
	g := gid()
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.writer == g {
		l.writerDepth++
		return nil
	}
	if l.readers[g] > 0 {
		return ErrWriteWhileRead
	}

	l.writersWaiting++
	for l.writerDepth > 0 || len(l.readers) > 0 {
		l.cond.Wait()
	}
	l.writersWaiting--
	l.writer = g
	l.writerDepth = 1
	return nil
}

// ReleaseWrite drops one write hold. When the outermost hold is released
// and the writer took read holds during the write, those convert into an
// ordinary read registration in the same step: the goroutine continues as a
// reader, other readers may join immediately, and the lock is never free in
// between. That conversion is the downgrade path.
func (l *RWLock) ReleaseWrite() error {
	g := gid()
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.writer != g {
		return ErrNotHeld
	}
	if l.writerDepth > 1 {
		l.writerDepth--
		return nil
	}

	l.writer = 0
	l.writerDepth = 0
	if l.writerReads > 0 {
		l.readers[g] = l.writerReads
		l.writerReads = 0
	}
	l.cond.Broadcast()
	return nil
}

// ReaderCount returns the number of distinct goroutines currently holding
// read locks. Reads taken by an active writer count only after they convert
// on release of the write lock.
func (l *RWLock) ReaderCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.readers)
}

// WriterActive reports whether any goroutine holds the write lock.
func (l *RWLock) WriterActive() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writerDepth > 0
}

// WritersWaiting returns the number of goroutines queued for the write
// lock.
func (l *RWLock) WritersWaiting() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writersWaiting
}

var goroutinePrefix = []byte("goroutine ")

// gid extracts the current goroutine's id from the runtime stack header,
// which reads "goroutine 123 [running]:". The runtime offers no direct
// accessor; parsing the header is the stable, widely used fallback.
func gid() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	s := bytes.TrimPrefix(buf[:n], goroutinePrefix)
	if i := bytes.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	id, _ := strconv.ParseUint(string(s), 10, 64)
	return id
}
