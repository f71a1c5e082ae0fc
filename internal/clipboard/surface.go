package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// TempFileSurface is a Surface backed by a private temporary file.
type TempFileSurface struct {
	file *os.File
}

// NewTempFileSurface creates an empty temporary file to stage copy text in.
func NewTempFileSurface() (Surface, error) {
	file, err := os.CreateTemp("", "chousei-copy-*.txt")
	if err != nil {
		return nil, err
	}
	return &TempFileSurface{file: file}, nil
}

// Populate truncates the file and writes text.
func (s *TempFileSurface) Populate(text string) error {
	if s.file == nil {
		return os.ErrClosed
	}
	if err := s.file.Truncate(0); err != nil {
		return err
	}
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	_, err := io.WriteString(s.file, text)
	return err
}

// SelectAll rewinds the file and returns it as the selection.
func (s *TempFileSurface) SelectAll() (io.Reader, error) {
	if s.file == nil {
		return nil, os.ErrClosed
	}
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return s.file, nil
}

// Destroy closes and removes the file. Calling it again is a no-op.
func (s *TempFileSurface) Destroy() error {
	if s.file == nil {
		return nil
	}
	name := s.file.Name()
	closeErr := s.file.Close()
	s.file = nil
	if err := os.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %q: %w", name, errors.Join(closeErr, err))
	}
	return closeErr
}

// path returns the backing file path, or "" once destroyed.
func (s *TempFileSurface) path() string {
	if s.file == nil {
		return ""
	}
	return s.file.Name()
}
