package util

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xD9}

func TestReadInput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.jpg")
	require.NoError(t, os.WriteFile(path, jpegBytes, 0644))

	data, err := ReadInput(context.Background(), path, false)
	require.NoError(t, err)
	assert.Equal(t, jpegBytes, data)

	data, err = ReadInput(context.Background(), "file://"+path, false)
	require.NoError(t, err)
	assert.Equal(t, jpegBytes, data)
}

func TestReadInput_Gzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(jpegBytes)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "a.jpg.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	data, err := ReadInput(context.Background(), path, false)
	require.NoError(t, err)
	assert.Equal(t, jpegBytes, data)
}

func TestReadInput_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/a.jpg" {
			http.NotFound(w, r)
			return
		}
		w.Write(jpegBytes)
	}))
	defer srv.Close()

	data, err := ReadInput(context.Background(), srv.URL+"/a.jpg", false)
	require.NoError(t, err)
	assert.Equal(t, jpegBytes, data)

	_, err = ReadInput(context.Background(), srv.URL+"/missing.jpg", false)
	assert.Error(t, err)
}

func TestReadInput_Errors(t *testing.T) {
	_, err := ReadInput(context.Background(), "", false)
	assert.Error(t, err)

	_, err = ReadInput(context.Background(), filepath.Join(t.TempDir(), "nope.jpg"), false)
	assert.Error(t, err)
}

func TestHashUUID(t *testing.T) {
	a := HashUUID(map[string]int{"offset": 2, "size": 0})
	b := HashUUID(map[string]int{"size": 0, "offset": 2})
	c := HashUUID(map[string]int{"offset": 4, "size": 0})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	id, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(3), id.Version())

	assert.Empty(t, HashUUID(func() {}))
}

func TestMd5ThenHex(t *testing.T) {
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", Md5ThenHex(nil))
}
