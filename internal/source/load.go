package source

import (
	"fmt"
	"os"

	"fortio.org/safecast"
)

// ReadError reports a file that could not be opened, stat'ed or read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Load opens path and returns its bytes.
//
// Zero-length files are returned with FileEmpty and no content; they are never
// mapped. Otherwise the file is memory-mapped read-only where the platform
// supports it and read into memory when it does not (or when mapping fails).
// The caller must Close the returned File.
func Load(path string) (*File, error) {
	// #nosec G304 -- path is provided by the caller
	fd, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	defer func() {
		_ = fd.Close() // маппинг живёт независимо от дескриптора
	}()

	info, err := fd.Stat()
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &ReadError{Path: path, Err: fmt.Errorf("is a directory")}
	}
	if info.Size() == 0 {
		return &File{Path: path, Flags: FileEmpty}, nil
	}

	size, err := safecast.Conv[int](info.Size())
	if err != nil {
		return nil, &ReadError{Path: path, Err: fmt.Errorf("file size overflow: %w", err)}
	}

	if content, release, mapErr := mapFile(fd, size); mapErr == nil {
		return &File{Path: path, Content: content, Flags: FileMapped, release: release}, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	if len(content) == 0 {
		// файл опустел между stat и чтением
		return &File{Path: path, Flags: FileEmpty}, nil
	}
	return &File{Path: path, Content: content}, nil
}

// AddVirtual wraps in-memory content as a File (tests, stdin).
func AddVirtual(name string, content []byte) *File {
	flags := FileVirtual
	if len(content) == 0 {
		flags |= FileEmpty
	}
	return &File{Path: name, Content: content, Flags: flags}
}
