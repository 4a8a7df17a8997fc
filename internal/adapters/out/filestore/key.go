// Package filestore holds what the file store drivers share: uploads are
// keyed by the SHA-256 of their content, so storing the same document twice
// yields the same reference.
package filestore

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

const (
	Prefix = "files/"

	// MaxSize bounds a single document.
	MaxSize int64 = 20 << 20
)

var ErrTooLarge = fmt.Errorf("file exceeds %d bytes", MaxSize)

// ReadLimited reads body fully, failing when it exceeds MaxSize.
func ReadLimited(body io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, MaxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > MaxSize {
		return nil, ErrTooLarge
	}
	return data, nil
}

// ContentKey derives the reference of data. The extension of name is kept
// so downloads open with the right application.
func ContentKey(name string, data []byte) string {
	sum := sha256.Sum256(data)
	return Prefix + hex.EncodeToString(sum[:]) + extension(name)
}

var ErrInvalidRef = errors.New("file reference is invalid")

// ValidateRef accepts only references produced by ContentKey.
func ValidateRef(ref string) error {
	if !strings.HasPrefix(ref, Prefix) {
		return ErrInvalidRef
	}
	digest := strings.TrimPrefix(ref, Prefix)
	if ext := path.Ext(digest); ext != "" {
		digest = strings.TrimSuffix(digest, ext)
	}
	if len(digest) != sha256.Size*2 {
		return ErrInvalidRef
	}
	if _, err := hex.DecodeString(digest); err != nil {
		return ErrInvalidRef
	}
	return nil
}

func extension(name string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(name, "\\", "/"))))
	if len(ext) > 10 {
		return ""
	}
	for _, r := range ext[min(1, len(ext)):] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
