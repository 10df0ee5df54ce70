package sweph

import (
	"sync"

	"github.com/dhanmoti/sweph/sefile"
)

// Cache deduplicates ephemeris file opens. Every Get for the same resolved
// path returns the one handle. Handles expose the image's xxHash64 via
// Checksum, so callers that care about a file swapped on disk can compare
// identities after a Reset.
//
// The cache serialises its own bookkeeping only. The handles it returns
// still carry mutable per-body segment caches; callers that share a handle
// across goroutines must arrange their own exclusion, typically one Cache
// plus one mutex per request worker.
type Cache struct {
	dir string

	mu    sync.Mutex
	files map[string]*sefile.File
}

// NewCache creates a Cache over an ephemeris directory. An empty dir means
// DefaultPath.
func NewCache(dir string) *Cache {
	return &Cache{
		dir:   dir,
		files: make(map[string]*sefile.File),
	}
}

// Get returns the open handle for an ephemeris file name, opening and
// caching it on first use.
func (c *Cache) Get(name string, opts ...sefile.Option) (*sefile.File, error) {
	path, err := Locate(c.dir, name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok := c.files[path]; ok {
		return f, nil
	}

	f, err := sefile.Open(path, opts...)
	if err != nil {
		return nil, err
	}
	c.files[path] = f

	return f, nil
}

// GetForJD returns the handle of the given file family covering jd.
func (c *Cache) GetForJD(prefix string, jd float64) (*sefile.File, error) {
	return c.Get(FileNameForJD(prefix, jd))
}

// Len returns the number of cached handles.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.files)
}

// Reset drops every cached handle. Handles already handed out stay valid;
// subsequent Gets re-open from disk.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.files = make(map[string]*sefile.File)
}
