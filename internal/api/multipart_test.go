package api

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultipart_Encode(t *testing.T) {
	form := NewMultipart().
		Field("business_name", "Ama Crafts").
		Field("empty", "").
		File("license", "license.pdf", "application/pdf", []byte("%PDF"))
	require.NoError(t, form.JSONField("variants", []map[string]interface{}{{"name": "Red", "price": 10}}))

	body, contentType, err := form.Encode()
	require.NoError(t, err)

	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)

	reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	parts := map[string]string{}
	files := map[string]string{}
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(part)
		require.NoError(t, err)
		if part.FileName() != "" {
			files[part.FormName()] = part.FileName()
			continue
		}
		parts[part.FormName()] = string(data)
	}

	assert.Equal(t, "Ama Crafts", parts["business_name"])
	assert.JSONEq(t, `[{"name":"Red","price":10}]`, parts["variants"])
	assert.NotContains(t, parts, "empty")
	assert.Equal(t, map[string]string{"license": "license.pdf"}, files)
	assert.Equal(t, []string{"license=license.pdf"}, form.FileNames())
}
