// Package storage writes and reads analysis artifacts under a root directory.
package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Checksum returns the hex-encoded SHA-256 digest of data.
func Checksum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// File describes one stored artifact.
type File struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provider is the interface for artifact file operations. All paths are
// relative to the provider root.
type Provider interface {
	// List returns every file under dir whose extension is in exts (any file when exts is empty).
	List(dir string, exts ...string) ([]File, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path and returns its absolute location.
	Write(path string, content []byte) (string, error)
	// Delete removes the file at path.
	Delete(path string) error
}
