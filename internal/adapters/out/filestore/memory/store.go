// Package memory is a process-local file store for development and tests.
package memory

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"marketplace/internal/adapters/out/filestore"
	"marketplace/internal/pkg/errs"
)

type object struct {
	contentType string
	data        []byte
}

// Store keeps uploads in memory. Download URLs point at baseURL, which the
// process is expected to serve.
type Store struct {
	mu      sync.RWMutex
	objects map[string]object
	baseURL string
	now     func() time.Time
}

func New(baseURL string) *Store {
	return &Store{objects: make(map[string]object), baseURL: baseURL, now: time.Now}
}

func (s *Store) Upload(_ context.Context, name, contentType string, body io.Reader) (string, error) {
	data, err := filestore.ReadLimited(body)
	if err != nil {
		return "", err
	}
	key := filestore.ContentKey(name, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		s.objects[key] = object{contentType: contentType, data: data}
	}
	return key, nil
}

func (s *Store) DownloadURL(_ context.Context, ref string, ttl time.Duration) (string, error) {
	if err := filestore.ValidateRef(ref); err != nil {
		return "", err
	}
	s.mu.RLock()
	_, ok := s.objects[ref]
	s.mu.RUnlock()
	if !ok {
		return "", errs.NewObjectNotFoundError("file", ref)
	}
	expires := s.now().Add(ttl).Unix()
	return fmt.Sprintf("%s/%s?expires=%d", s.baseURL, ref, expires), nil
}

// Open returns a stored document and its content type.
func (s *Store) Open(ref string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[ref]
	if !ok {
		return nil, "", false
	}
	return obj.data, obj.contentType, true
}
