package uploads

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func newMemFile(content string) multipart.File {
	return memFile{bytes.NewReader([]byte(content))}
}

func TestSave(t *testing.T) {
	storage, err := New(t.TempDir())
	require.NoError(t, err)

	header := &multipart.FileHeader{Filename: "evidence.JPG", Size: 4}
	name, err := storage.Save(newMemFile("data"), header)
	require.NoError(t, err)

	// Stored name is generated, lowercased extension kept, no path parts.
	assert.True(t, strings.HasSuffix(name, ".jpg"))
	assert.NotContains(t, name, string(os.PathSeparator))

	content, err := os.ReadFile(filepath.Join(storage.dir, name))
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))
}

func TestSaveRejectsOversizeFile(t *testing.T) {
	storage, err := New(t.TempDir())
	require.NoError(t, err)

	header := &multipart.FileHeader{Filename: "huge.png", Size: MaxFileSize + 1}
	_, err = storage.Save(newMemFile("data"), header)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}
