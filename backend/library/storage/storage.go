// Package storage builds collision-resistant, owner-scoped paths for
// uploaded CAD files.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// ErrUnsupportedFileType is returned for filenames whose extension is outside
// the CAD allow-set.
var ErrUnsupportedFileType = errors.New("unsupported_file_type")

var allowedExtensions = map[string]bool{
	".stl":  true,
	".obj":  true,
	".glb":  true,
	".gltf": true,
}

var unsafeCharRegexp = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// IsAllowedExtension checks the filename extension against the allow-set,
// case-insensitively.
func IsAllowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// SanitizeFilename reduces a client-supplied name to a safe basename: path
// separators (both kinds) are stripped via Base, remaining unsafe characters
// replaced, and leading/trailing dots and underscores trimmed so the result
// can never traverse out of its directory or hide as a dotfile.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = unsafeCharRegexp.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "file"
	}
	return name
}

// Store places uploads under a root directory, one subdirectory per owner.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

// OwnerDir returns the owner's upload directory, creating it on first use.
func (s *Store) OwnerDir(ownerID int64) (string, error) {
	dir := filepath.Join(s.root, fmt.Sprintf("user_%d", ownerID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// BuildPath validates the extension, sanitizes the client name and returns
// the storage path plus the sanitized name to persist. The second-granularity
// timestamp prefix keeps paths unique per owner; a same-second upload of the
// same name can still collide, an accepted narrow race.
func (s *Store) BuildPath(ownerID int64, clientName string) (storagePath string, sanitized string, err error) {
	if !IsAllowedExtension(clientName) {
		return "", "", ErrUnsupportedFileType
	}
	sanitized = SanitizeFilename(clientName)
	dir, err := s.OwnerDir(ownerID)
	if err != nil {
		return "", "", err
	}
	stamp := time.Now().UTC().Format("20060102150405")
	return filepath.Join(dir, stamp+"_"+sanitized), sanitized, nil
}
