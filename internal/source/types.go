package source

type (
	// FileFlags encodes how a file's content was obtained.
	FileFlags uint8 // метаданные загрузки
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileMapped indicates Content is a read-only memory mapping.
	FileMapped
	// FileEmpty marks a zero-length file; Content is nil and nothing was mapped.
	FileEmpty
)

// File holds the raw bytes of one scanned file.
// Content must not be retained after Close when the file is mapped.
type File struct {
	Path    string
	Content []byte
	Flags   FileFlags

	release func() error
}

// Empty reports whether the file has no content at all.
func (f *File) Empty() bool {
	return f == nil || len(f.Content) == 0
}

// Mapped reports whether Content is backed by a memory mapping.
func (f *File) Mapped() bool {
	return f != nil && f.Flags&FileMapped != 0
}

// Close releases the mapping (if any). It is safe to call more than once.
func (f *File) Close() error {
	if f == nil || f.release == nil {
		return nil
	}
	release := f.release
	f.release = nil
	f.Content = nil
	return release()
}
