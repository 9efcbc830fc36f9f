//go:build !unix

package persist

// lockFile is a no-op where flock is unavailable; writers in one process
// are still serialised by FileBackend's mutex.
func lockFile(string) (func(), error) {
	return func() {}, nil
}
