package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM is set when the file started with a byte order mark.
	FileHadBOM
	// FileHadCRLF is set when at least one \r\n line ending was seen.
	// Content keeps the original line endings; the flag is informational.
	FileHadCRLF
)

// File captures metadata and content for a single source file.
// Content is always UTF-8 text; Encoding records how to write it back.
type File struct {
	ID       FileID
	Path     string
	Content  []byte
	LineIdx  []uint32
	Hash     [32]byte
	Flags    FileFlags
	Encoding Encoding
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
