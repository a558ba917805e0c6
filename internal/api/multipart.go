package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strings"
)

type multipartFile struct {
	field       string
	name        string
	contentType string
	data        []byte
}

// Multipart collects form fields and files for a multipart/form-data body.
// Nested objects are sent the way the seller API expects them: "about.bio",
// or as a JSON string for list-valued fields.
type Multipart struct {
	fields map[string]string
	files  []multipartFile
}

func NewMultipart() *Multipart {
	return &Multipart{fields: make(map[string]string)}
}

// Field sets a text field. Empty values are skipped.
func (m *Multipart) Field(name, value string) *Multipart {
	if value != "" {
		m.fields[name] = value
	}
	return m
}

// JSONField sets a field to the JSON encoding of v.
func (m *Multipart) JSONField(name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode field %s: %w", name, err)
	}
	m.fields[name] = string(data)
	return nil
}

// File attaches a file part.
func (m *Multipart) File(field, filename, contentType string, data []byte) *Multipart {
	m.files = append(m.files, multipartFile{
		field:       field,
		name:        filename,
		contentType: contentType,
		data:        data,
	})
	return m
}

// Value returns a text field, for tests and logging.
func (m *Multipart) Value(name string) (string, bool) {
	v, ok := m.fields[name]
	return v, ok
}

// FileNames lists attached files as "field=filename".
func (m *Multipart) FileNames() []string {
	out := make([]string, 0, len(m.files))
	for _, f := range m.files {
		out = append(out, f.field+"="+f.name)
	}
	return out
}

// Encode renders the body and its Content-Type (with boundary). Field order is sorted.
func (m *Multipart) Encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	names := make([]string, 0, len(m.fields))
	for name := range m.fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := w.WriteField(name, m.fields[name]); err != nil {
			return nil, "", err
		}
	}

	for _, f := range m.files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(f.field), escapeQuotes(f.name)))
		contentType := f.contentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h.Set("Content-Type", contentType)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
