package assets

import (
	"sync"

	"github.com/google/uuid"
)

// Handle identifies an image inside a Store. Handles are cheap value types
// that stay valid across inserts and removals of other images.
type Handle struct {
	id uuid.UUID
}

// NewHandle returns a fresh unique handle.
func NewHandle() Handle {
	return Handle{id: uuid.New()}
}

// IsZero returns true for the zero handle, which never resolves.
func (h Handle) IsZero() bool {
	return h.id == uuid.Nil
}

// String returns a short printable form of the handle.
func (h Handle) String() string {
	return "asset:" + h.id.String()
}

// storeEntry pairs an image with its checkout state.
type storeEntry struct {
	img        *Image
	checkedOut bool
}

// Store maps handles to images.
//
// Mutating an image in place requires checking it out first. A checkout
// grants exclusive access until its release function runs; a second
// checkout of the same handle before release is a programming error and
// panics. Lookups that do not mutate can use Get directly.
type Store struct {
	mu      sync.RWMutex
	entries map[Handle]*storeEntry
}

// NewStore creates an empty image store.
func NewStore() *Store {
	return &Store{entries: make(map[Handle]*storeEntry)}
}

// Add stores an image under a fresh handle and returns the handle.
func (s *Store) Add(img *Image) Handle {
	h := NewHandle()
	s.mu.Lock()
	s.entries[h] = &storeEntry{img: img}
	s.mu.Unlock()
	return h
}

// Insert stores an image under the given handle, replacing any previous
// image. Replacing an image that is currently checked out panics: the
// holder of the checkout would keep mutating a buffer the store no longer
// knows about.
func (s *Store) Insert(h Handle, img *Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[h]; ok {
		if e.checkedOut {
			panic("assets: cannot replace image " + h.String() + " while checked out")
		}
		e.img = img
		return
	}
	s.entries[h] = &storeEntry{img: img}
}

// Get returns the image for a handle without checking it out.
// Callers must not mutate the pixel data through this reference.
func (s *Store) Get(h Handle) (*Image, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[h]
	if !ok {
		return nil, false
	}
	return e.img, true
}

// Checkout hands out exclusive mutating access to an image.
//
// It returns the image, a release function and true on success, or
// (nil, nil, false) if the handle does not resolve. The caller must run
// the release function when done, typically via defer. Release is
// idempotent; calling it twice is harmless.
//
// Checking out a handle that is already checked out panics.
func (s *Store) Checkout(h Handle) (*Image, func(), bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[h]
	if !ok {
		return nil, nil, false
	}
	if e.checkedOut {
		panic("assets: image " + h.String() + " is already checked out")
	}
	e.checkedOut = true

	var once sync.Once
	release := func() {
		once.Do(func() {
			s.mu.Lock()
			e.checkedOut = false
			s.mu.Unlock()
		})
	}
	return e.img, release, true
}

// Remove deletes the image for a handle. It reports false if the handle
// does not resolve or the image is currently checked out.
func (s *Store) Remove(h Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[h]
	if !ok || e.checkedOut {
		return false
	}
	delete(s.entries, h)
	return true
}

// Len returns the number of stored images.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
