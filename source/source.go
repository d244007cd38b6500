// Package source loads Berg source text into memory as a named Buffer:
// either a caller-supplied byte slice or a file resolved against an
// optional root directory. This is the external-collaborator boundary
// spec.md §6 describes: everything downstream (scanner onward) only ever
// sees a Buffer's Name and Bytes.
package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"

	"github.com/berg-lang/berg/diag"
)

// maxSourceSize is spec.md §6's 2^32-1 byte ceiling.
const maxSourceSize = 1<<32 - 1

// Buffer is an immutable, named source: a logical name (used in
// diagnostics and by the tokens/ast CLI commands) plus its raw bytes.
type Buffer struct {
	Name  string
	Bytes []byte
}

// Load wraps an in-memory byte slice under a logical name. Used for
// embedded/generated sources and by tests; does no I/O.
func Load(name string, bytes []byte) (*Buffer, *diag.Error) {
	if len(bytes) > maxSourceSize {
		return nil, diag.New(diag.SourceTooLarge, diag.Range{}, "source %q is %d bytes, exceeding the %d byte limit", name, len(bytes), maxSourceSize)
	}
	return &Buffer{Name: name, Bytes: bytes}, nil
}

// LoadFile resolves path against root (if root is non-empty and path is
// relative) and reads the file's full contents.
func LoadFile(root, path string) (*Buffer, *diag.Error) {
	full := path
	if root != "" && !filepath.IsAbs(path) {
		full = filepath.Join(root, path)
	}

	f, err := os.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, diag.New(diag.SourceNotFound, diag.Range{}, "source file %q not found", full)
		}
		return nil, diag.New(diag.IOOpenError, diag.Range{}, "opening %q: %v", full, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err == nil && info.Size() > maxSourceSize {
		return nil, diag.New(diag.SourceTooLarge, diag.Range{}, "source %q is %d bytes, exceeding the %d byte limit", full, info.Size(), maxSourceSize)
	}

	bytes, err := io.ReadAll(f)
	if err != nil {
		return nil, diag.New(diag.IOReadError, diag.Range{}, "reading %q: %v", full, err)
	}
	if len(bytes) > maxSourceSize {
		return nil, diag.New(diag.SourceTooLarge, diag.Range{}, "source %q is %d bytes, exceeding the %d byte limit", full, len(bytes), maxSourceSize)
	}

	return &Buffer{Name: path, Bytes: bytes}, nil
}

// Digest is a content hash of the buffer, stable across loads of
// identical bytes regardless of name or path — used as a cache key and
// for correlating diagnostics/log lines back to a specific source
// version, the same role blake2b plays for the teacher's plan/display IDs.
func (b *Buffer) Digest() string {
	sum := blake2b.Sum256(b.Bytes)
	return fmt.Sprintf("%x", sum[:16])
}

// String reports the buffer's logical name.
func (b *Buffer) String() string {
	return b.Name
}
