package storage

import (
	"context"
	"fmt"
	"path"
	"sync"
)

// MemoryBlobStore keeps objects in process. It backs local development
// (storage.type=memory) and records every call for tests.
type MemoryBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	uploads []UploadInput
	deletes []string

	// UploadErr and DeleteErr, when set, are returned instead of performing the call.
	UploadErr error
	DeleteErr error
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{objects: make(map[string][]byte)}
}

func (m *MemoryBlobStore) Upload(_ context.Context, in UploadInput) (UploadResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads = append(m.uploads, in)
	if m.UploadErr != nil {
		return UploadResult{}, m.UploadErr
	}
	handle := path.Join(in.Folder, in.PublicID)
	m.objects[handle] = append([]byte(nil), in.Data...)
	return UploadResult{URL: fmt.Sprintf("memory://%s", handle), PublicID: handle}, nil
}

func (m *MemoryBlobStore) Delete(_ context.Context, handle string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, handle)
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.objects, handle)
	return nil
}

// Has reports whether an object is stored under handle.
func (m *MemoryBlobStore) Has(handle string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[handle]
	return ok
}

// Len returns the number of stored objects.
func (m *MemoryBlobStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// Uploads returns a copy of every Upload input received.
func (m *MemoryBlobStore) Uploads() []UploadInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]UploadInput(nil), m.uploads...)
}

// Deletes returns every handle passed to Delete, in call order.
func (m *MemoryBlobStore) Deletes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deletes...)
}
