// Package attachment resolves the image reference carried by a resource:
// either an external URL or an uploaded file stored in the blob store.
package attachment

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxFormMemory bounds in-memory buffering of multipart bodies.
const maxFormMemory = 32 << 20

// ErrMissingAttachment is returned when neither a source URL nor a file is supplied.
var ErrMissingAttachment = errors.New("a photo URL or an uploaded file is required")

// Upload is a file received in a multipart request.
type Upload struct {
	Content     []byte
	ContentType string
	Filename    string
}

// Input is the raw attachment input of a create/update request: a source URL,
// an uploaded file, or nothing. When both are present the file wins — the
// precedence is fixed here so callers never branch on field order.
type Input struct {
	URL  string
	File *Upload
}

// Source classifies an Input.
type Source int

const (
	SourceNone Source = iota
	SourceURL
	SourceFile
)

// Source returns the effective source of the input, applying file-wins precedence.
func (in Input) Source() Source {
	switch {
	case in.File != nil:
		return SourceFile
	case in.URL != "":
		return SourceURL
	default:
		return SourceNone
	}
}

// FromRequest extracts the attachment input from a multipart form: the file
// field "image" and the kind-specific URL field (photoUrl or imageUrl).
func FromRequest(r *http.Request, urlField string) (Input, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return Input{}, fmt.Errorf("parse form: %w", err)
	}

	in := Input{URL: r.FormValue(urlField)}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return in, nil
	}
	if err != nil {
		return Input{}, fmt.Errorf("read form file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return Input{}, fmt.Errorf("read upload: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(content)
	}

	in.File = &Upload{
		Content:     content,
		ContentType: contentType,
		Filename:    header.Filename,
	}
	return in, nil
}

// State is the persisted attachment reference of an entity. Key is set if and
// only if the image originated as a file upload; a URL-sourced image never
// carries a blob-store key.
type State struct {
	URL string
	Key string
}

// KeyPtr returns the key as a nullable column value.
func (s State) KeyPtr() *string {
	if s.Key == "" {
		return nil
	}
	k := s.Key
	return &k
}

// StateOf rebuilds a State from stored column values.
func StateOf(url string, key *string) State {
	s := State{URL: url}
	if key != nil {
		s.Key = *key
	}
	return s
}
