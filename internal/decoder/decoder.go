// Package decoder turns uploaded payloads into clean text. SPED files
// are written in a single-byte Latin encoding (ISO 8859-1), frequently
// delivered zipped, so the decoder handles charset conversion, zip
// extraction and the run's resource limits in one place.
package decoder

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ErrResourceLimit aborts a run whose input exceeds the configured
// bounds. Unlike per-line problems this is fatal and surfaced to the
// caller.
var ErrResourceLimit = errors.New("resource limit exceeded")

// File is one decoded text file ready for parsing.
type File struct {
	Name    string
	Content string
}

// Payload is one raw uploaded file, before decoding.
type Payload struct {
	Name string
	Data []byte
}

// Decoder decodes upload payloads under resource limits. The zero value
// applies no limits.
type Decoder struct {
	// MaxFiles bounds the number of decoded text files per run
	// (zip members count individually). Zero means unlimited.
	MaxFiles int
	// MaxBytes bounds the total raw input size per run. Zero means
	// unlimited.
	MaxBytes int64
}

var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// DecodeAll decodes every payload in order, expanding zip archives into
// their .txt members. Output order follows upload order, then archive
// order within a zip, which the catalog's last-write-wins semantics
// depend on.
//
// MaxBytes is charged for raw payload bytes and for every byte a zip
// member decompresses to, so a small but highly compressed archive
// cannot blow past the budget.
func (d *Decoder) DecodeAll(payloads []Payload) ([]File, error) {
	var files []File
	var totalBytes int64

	for _, p := range payloads {
		if err := d.charge(&totalBytes, int64(len(p.Data))); err != nil {
			return nil, err
		}

		decoded, err := d.decodePayload(p, &totalBytes)
		if err != nil {
			return nil, err
		}
		files = append(files, decoded...)

		if d.MaxFiles > 0 && len(files) > d.MaxFiles {
			return nil, fmt.Errorf("%w: more than %d files", ErrResourceLimit, d.MaxFiles)
		}
	}

	return files, nil
}

// charge adds n to the running byte total and fails once the budget is
// exceeded.
func (d *Decoder) charge(total *int64, n int64) error {
	*total += n
	if d.MaxBytes > 0 && *total > d.MaxBytes {
		return fmt.Errorf("%w: input exceeds %d bytes", ErrResourceLimit, d.MaxBytes)
	}
	return nil
}

func (d *Decoder) decodePayload(p Payload, total *int64) ([]File, error) {
	if isZip(p) {
		return d.extractZip(p, total)
	}
	return []File{{Name: p.Name, Content: decodeText(p.Data)}}, nil
}

func isZip(p Payload) bool {
	if strings.EqualFold(filepath.Ext(p.Name), ".zip") {
		return true
	}
	return bytes.HasPrefix(p.Data, zipMagic)
}

func (d *Decoder) extractZip(p Payload, total *int64) ([]File, error) {
	reader, err := zip.NewReader(bytes.NewReader(p.Data), int64(len(p.Data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open zip %q: %w", p.Name, err)
	}

	var files []File
	for _, member := range reader.File {
		if !strings.EqualFold(filepath.Ext(member.Name), ".txt") {
			continue
		}
		rc, err := member.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open zip member %q: %w", member.Name, err)
		}

		// Read at most one byte past the remaining budget so an
		// oversized member trips the charge below; the member's
		// declared size is not trusted.
		var src io.Reader = rc
		if d.MaxBytes > 0 {
			src = io.LimitReader(rc, d.MaxBytes-*total+1)
		}
		data, err := io.ReadAll(src)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read zip member %q: %w", member.Name, err)
		}
		if err := d.charge(total, int64(len(data))); err != nil {
			return nil, err
		}

		files = append(files, File{Name: member.Name, Content: decodeText(data)})
	}

	return files, nil
}

// decodeText converts raw bytes to a string. Files that are already
// valid UTF-8 pass through unchanged; everything else is read as
// ISO 8859-1, in which every byte sequence is decodable.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// Unreachable for ISO 8859-1, but don't lose the payload.
		return string(data)
	}
	return string(decoded)
}
