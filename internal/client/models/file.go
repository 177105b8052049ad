package models

import (
	"io"
	"os"
	"path/filepath"
)

// File is a binary payload returned by an export, certificate or template
// endpoint.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// WriteTo writes the payload to path. When path is a directory the
// server-provided file name is used inside it.
func (f *File) WriteTo(path string) (string, error) {
	if st, err := os.Stat(path); err == nil && st.IsDir() {
		name := f.Name
		if name == "" {
			name = "download.bin"
		}
		path = filepath.Join(path, filepath.Base(name))
	}
	if err := os.WriteFile(path, f.Data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// Upload is a file sent to an import endpoint as multipart form data.
// Fields are extra form values sent alongside the file.
type Upload struct {
	FileName string
	Content  io.Reader
	Fields   map[string]string
}

// OpenUpload opens path for upload. The caller closes the returned closer.
func OpenUpload(path string, fields map[string]string) (Upload, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return Upload{}, nil, err
	}
	return Upload{FileName: filepath.Base(path), Content: f, Fields: fields}, f, nil
}
