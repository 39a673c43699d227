// Package document models the input file handed to the pipeline: a path,
// its detected kind (image or PDF), and the raw bytes read once up front.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Kind string

const (
	Image Kind = "image"
	PDF   Kind = "pdf"
)

var ErrUnsupportedType = errors.New("unsupported file type")

var extKinds = map[string]Kind{
	".jpg":  Image,
	".jpeg": Image,
	".png":  Image,
	".pdf":  PDF,
}

var extMIMEs = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
}

type Document struct {
	Path string
	Kind Kind
	MIME string
	Data []byte
}

// KindFor maps a file path to its document kind and MIME type by extension.
func KindFor(path string) (Kind, string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	kind, ok := extKinds[ext]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
	return kind, extMIMEs[ext], nil
}

// Read validates the extension and loads the file bytes. The extension check
// runs first so an unsupported path is rejected before any file access.
func Read(path string) (*Document, error) {
	kind, mime, err := KindFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Document{Path: path, Kind: kind, MIME: mime, Data: data}, nil
}
