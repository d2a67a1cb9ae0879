// Package netx builds request bodies the JSON client cannot express.
package netx

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"
)

const OctetStream = "application/octet-stream"

// Field is one plain form value.
type Field struct {
	Name  string
	Value string
}

// File is the file part of a form. ContentType is guessed from the name
// when empty.
type File struct {
	Field       string
	Name        string
	ContentType string
	Content     []byte
}

var ErrEmptyFile = errors.New("file is empty")

// Multipart encodes fields followed by file as multipart/form-data and
// returns the body together with its Content-Type (boundary included).
func Multipart(fields []Field, file File) ([]byte, string, error) {
	if len(file.Content) == 0 {
		return nil, "", ErrEmptyFile
	}
	name := filepath.Base(strings.TrimSpace(file.Name))
	if name == "." || name == string(filepath.Separator) {
		return nil, "", fmt.Errorf("invalid file name %q", file.Name)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.Name, err)
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
		"name":     file.Field,
		"filename": name,
	}))
	h.Set("Content-Type", contentType(name, file.ContentType))
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(file.Content); err != nil {
		return nil, "", fmt.Errorf("write file part: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func contentType(name, given string) string {
	if given != "" {
		return given
	}
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return OctetStream
}
