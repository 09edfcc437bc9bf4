// Package rwlock provides a goroutine-reentrant readers-writer lock with
// writer preference and a write-to-read downgrade path.
//
// sync.RWMutex self-deadlocks when a goroutine that already holds the lock
// acquires it again. Code that resolves shared state recursively, where a
// read section can reenter another read section on the same goroutine,
// needs holds tracked per goroutine instead. RWLock does that: reads nest
// inside reads, writes nest inside writes, and mismatched nesting is
// reported as an error rather than deadlocking.
//
// # Scoped API
//
// Read and Write run a function under the lock and guarantee release on
// every exit path, including panics:
//
//	var l = rwlock.New()
//
//	err := l.Read(func() {
//		// shared state may be read here, and nested l.Read calls
//		// on this goroutine are fine
//	})
//
//	err = l.Write(func() {
//		// exclusive access
//	})
//
// The scoped API enforces discipline: Write inside Read fails with
// ErrWriteWhileRead (an upgrade could only deadlock against the caller's
// own read), and Read inside Write fails with ErrReadWhileWrite.
//
// # Writer preference
//
// A waiting writer blocks new readers, so a steady stream of readers cannot
// starve writers. Goroutines that already hold a read are exempt and may
// keep nesting reads; otherwise a reader that reentered during a writer's
// wait would deadlock the system.
//
// # Downgrading
//
// The raw primitives allow the active writer to take read holds under its
// write lock. When the outermost write is released, those holds convert
// atomically into an ordinary read registration: the goroutine keeps
// reading, other readers join immediately, and no writer can slip in
// between. This is how a mutation can publish its result and then continue
// with follow-up reads without re-competing for the lock:
//
//	if err := l.AcquireWrite(); err != nil {
//		return err
//	}
//	mutate()
//	l.AcquireRead()             // held under the write lock
//	_ = l.ReleaseWrite()        // converts the read hold, readers may join
//	defer func() { _ = l.ReleaseRead() }()
//	inspect()
//
// # Goroutine identity
//
// Holds belong to the goroutine that acquired them, identified by parsing
// the runtime stack header. A goroutine spawned inside a locked section
// does not inherit the parent's hold and must not touch the protected
// state unless the parent's hold provably outlives it.
package rwlock
