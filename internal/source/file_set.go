package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
)

// FileSet manages a collection of source files and resolves byte offsets.
// It is safe for concurrent use by format workers.
type FileSet struct {
	mu    sync.RWMutex
	files []*File
	index map[string]FileID // path -> id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]*File, 0),
		index: make(map[string]FileID),
	}
}

// Add stores decoded UTF-8 content, computes LineIdx and Hash, and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags, enc Encoding) FileID {
	hash := sha256.Sum256(content)
	lineIdx := buildLineIndex(content)
	normalizedPath := normalizePath(path)
	if hasCRLF(content) {
		flags |= FileHadCRLF
	}

	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()
	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, &File{
		ID:       id,
		Path:     normalizedPath,
		Content:  content,
		LineIdx:  lineIdx,
		Hash:     hash,
		Flags:    flags,
		Encoding: enc,
	})
	// Всегда обновляем индекс на последнюю версию файла
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a file from disk, decodes its encoding and calls Add.
// Line endings are left untouched so formatting round-trips them.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, enc, err := Decode(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	flags := FileFlags(0)
	if enc != UTF8 {
		flags |= FileHadBOM
	}
	return fileSet.Add(path, content, flags, enc), nil
}

// AddVirtual adds a virtual file (stdin, test, or generated) with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual, UTF8)
}

// Get returns the file metadata for the given ID, or nil when unknown.
func (fileSet *FileSet) Get(id FileID) *File {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return fileSet.files[id]
}

// GetByPath возвращает *File по пути, если был загружен в этот FileSet.
func (fileSet *FileSet) GetByPath(path string) (*File, bool) {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	if id, ok := fileSet.index[normalizePath(path)]; ok {
		return fileSet.files[id], true
	}
	return nil, false
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.File)
	if f == nil {
		return LineCol{Line: 1, Col: 1}, LineCol{Line: 1, Col: 1}
	}
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// LineStart returns the byte offset where the 1-based line begins.
func (f *File) LineStart(lineNum uint32) uint32 {
	switch {
	case lineNum <= 1:
		return 0
	case int(lineNum-2) < len(f.LineIdx):
		return f.LineIdx[lineNum-2] + 1
	default:
		return contentLen(f)
	}
}

// GetLine возвращает строку с заданным номером (1-based) из файла без
// завершающего \r\n. Если строка не существует, возвращает пустую строку.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	size := contentLen(f)
	start := f.LineStart(lineNum)
	if start >= size {
		return ""
	}
	end := size
	if int(lineNum-1) < len(f.LineIdx) {
		end = f.LineIdx[lineNum-1]
	}
	if end > start && f.Content[end-1] == '\r' {
		end--
	}
	return string(f.Content[start:end])
}

// DisplayPath returns the path relative to baseDir when it lies inside it.
func (f *File) DisplayPath(baseDir string) string {
	if baseDir == "" || f.Flags&FileVirtual != 0 {
		return f.Path
	}
	rel, err := RelativePath(f.Path, baseDir)
	if err != nil {
		return f.Path
	}
	return rel
}

// WriteFile encodes content with enc and atomically replaces path.
func WriteFile(path string, content []byte, enc Encoding) error {
	data, err := Encode(content, enc)
	if err != nil {
		return err
	}
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".swiftfmt-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

func contentLen(f *File) uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return n
}
