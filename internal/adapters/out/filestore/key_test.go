package filestore_test

import (
	"bytes"
	"strings"
	"testing"

	"marketplace/internal/adapters/out/filestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentKey(t *testing.T) {
	pdf := []byte("%PDF-1.7 purchase order")

	first := filestore.ContentKey("PO-1.pdf", pdf)
	assert.Equal(t, first, filestore.ContentKey("po-1.PDF", pdf), "same bytes, same reference")
	assert.NotEqual(t, first, filestore.ContentKey("PO-1.pdf", []byte("other")))
	assert.True(t, strings.HasPrefix(first, filestore.Prefix))
	assert.True(t, strings.HasSuffix(first, ".pdf"))

	tests := []struct {
		name string
		want string
	}{
		{"invoice", ""},
		{"..\\..\\evil.exe", ".exe"},
		{"scan.p d f", ""},
		{"archive.verylongextension", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := filestore.ContentKey(tt.name, pdf)
			assert.Equal(t, tt.want, strings.TrimPrefix(key, strings.TrimSuffix(first, ".pdf")))
		})
	}
}

func TestValidateRef(t *testing.T) {
	good := filestore.ContentKey("po.pdf", []byte("x"))
	require.NoError(t, filestore.ValidateRef(good))
	require.NoError(t, filestore.ValidateRef(filestore.ContentKey("po", []byte("x"))))

	for _, bad := range []string{"", "po.pdf", "files/abc.pdf", "files/../../etc/passwd", strings.Replace(good, "a", "z", 1)} {
		assert.ErrorIs(t, filestore.ValidateRef(bad), filestore.ErrInvalidRef, bad)
	}
}

func TestReadLimited(t *testing.T) {
	data, err := filestore.ReadLimited(bytes.NewReader([]byte("small")))
	require.NoError(t, err)
	assert.Equal(t, "small", string(data))

	_, err = filestore.ReadLimited(bytes.NewReader(make([]byte, filestore.MaxSize+1)))
	assert.ErrorIs(t, err, filestore.ErrTooLarge)
}
