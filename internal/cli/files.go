package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type upload struct {
	Name        string
	ContentType string
	Data        []byte
}

// readUpload loads a local file and sniffs its MIME type from the content.
func readUpload(path string) (upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return upload{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	contentType := mimetype.Detect(data).String()
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}

	return upload{Name: filepath.Base(path), ContentType: contentType, Data: data}, nil
}

// splitAssignment parses "key=value" flag values.
func splitAssignment(s string) (string, string, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return "", "", fmt.Errorf("expected key=value, got %q", s)
	}
	return key, value, nil
}
