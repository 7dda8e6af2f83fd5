// Package sink provides rewindable byte sinks for pattern output.
//
// A pattern is regenerated from scratch on every convergence iteration, so
// a sink must be able to discard everything written so far and start again
// at offset zero. Appends are otherwise strictly sequential.
package sink

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrClosed indicates a write to a closed sink.
var ErrClosed = errors.New("sink: closed")

// Sink is an append-only byte sink that can be rewound to its start.
type Sink interface {
	io.Writer

	// Rewind discards all content and positions the sink at offset zero.
	Rewind() error
}

// Preallocator is implemented by sinks that can reserve space up front.
type Preallocator interface {
	Preallocate(size int64) error
}

// File is a Sink backed by an *os.File.
type File struct {
	f    *os.File
	path string
	size int64
}

// Create creates or truncates the file at path.
func Create(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("sink: create %s: %w", path, err)
	}
	return &File{f: f, path: path}, nil
}

// Write appends p.
func (s *File) Write(p []byte) (int, error) {
	if s.f == nil {
		return 0, ErrClosed
	}
	n, err := s.f.Write(p)
	s.size += int64(n)
	if err != nil {
		return n, fmt.Errorf("sink: write %s: %w", s.path, err)
	}
	return n, nil
}

// Rewind truncates the file and seeks to the start.
func (s *File) Rewind() error {
	if s.f == nil {
		return ErrClosed
	}
	if err := s.f.Truncate(0); err != nil {
		return fmt.Errorf("sink: truncate %s: %w", s.path, err)
	}
	if _, err := s.f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("sink: seek %s: %w", s.path, err)
	}
	s.size = 0
	return nil
}

// Preallocate reserves size bytes of storage without changing the visible
// file length. Filesystems that cannot reserve space are silently skipped.
func (s *File) Preallocate(size int64) error {
	if s.f == nil {
		return ErrClosed
	}
	return preallocate(s.f, size)
}

// Size returns the number of bytes written since the last rewind.
func (s *File) Size() int64 { return s.size }

// Path returns the file path.
func (s *File) Path() string { return s.path }

// Close syncs and closes the file.
func (s *File) Close() error {
	if s.f == nil {
		return nil
	}
	f := s.f
	s.f = nil
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sink: sync %s: %w", s.path, err)
	}
	return f.Close()
}

// Memory is an in-memory Sink.
type Memory struct {
	buf []byte
}

// Write appends p.
func (m *Memory) Write(p []byte) (int, error) {
	m.buf = append(m.buf, p...)
	return len(p), nil
}

// Rewind drops the content but keeps the allocation.
func (m *Memory) Rewind() error {
	m.buf = m.buf[:0]
	return nil
}

// Preallocate grows the backing array to hold size bytes.
func (m *Memory) Preallocate(size int64) error {
	if int64(cap(m.buf)) < size {
		grown := make([]byte, len(m.buf), size)
		copy(grown, m.buf)
		m.buf = grown
	}
	return nil
}

// Bytes returns the current content.
func (m *Memory) Bytes() []byte { return m.buf }
