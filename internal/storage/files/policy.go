package files

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrTooLarge           = errors.New("file exceeds the maximum upload size")
	ErrEmptyFile          = errors.New("file is empty")
	ErrExtensionForbidden = errors.New("file extension is not allowed")
	ErrContentMismatch    = errors.New("file content does not match an allowed type")
)

// sniffLen is how much of the upload is read for content detection.
const sniffLen = 3072

// mimeByExtension lists the detected types accepted for each extension.
// Office formats are containers, so their parent types are accepted too.
var mimeByExtension = map[string][]string{
	".pdf":  {"application/pdf"},
	".doc":  {"application/msword", "application/x-ole-storage"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/zip"},
	".png":  {"image/png"},
	".jpg":  {"image/jpeg"},
	".jpeg": {"image/jpeg"},
}

// Policy limits upload size, extension and sniffed content type.
type Policy struct {
	MaxBytes          int64
	AllowedExtensions []string
}

// Check validates an upload and returns its detected content type with a
// reader that still yields the complete content. The reader fails with
// ErrTooLarge past the declared size, or past MaxBytes when size is unknown.
func (p Policy) Check(filename string, size int64, r io.Reader) (string, io.Reader, error) {
	if size == 0 {
		return "", nil, ErrEmptyFile
	}
	if p.MaxBytes > 0 && size > p.MaxBytes {
		return "", nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, p.MaxBytes)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !p.extensionAllowed(ext) {
		return "", nil, fmt.Errorf("%w: %q", ErrExtensionForbidden, ext)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	detected := mimetype.Detect(head)
	if !matches(detected, mimeByExtension[ext]) {
		return "", nil, fmt.Errorf("%w: %s detected for %s", ErrContentMismatch, detected.String(), ext)
	}

	body := io.MultiReader(bytes.NewReader(head), r)
	limit := size
	if limit < 0 {
		limit = p.MaxBytes
	}
	if limit > 0 {
		body = &cappedReader{r: body, left: limit}
	}
	return contentTypeFor(ext), body, nil
}

// cappedReader yields at most left bytes and fails with ErrTooLarge when
// the underlying reader has more.
type cappedReader struct {
	r    io.Reader
	left int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	if c.left <= 0 {
		var one [1]byte
		n, err := c.r.Read(one[:])
		if n > 0 {
			return 0, ErrTooLarge
		}
		return 0, err
	}
	if int64(len(p)) > c.left {
		p = p[:c.left]
	}
	n, err := c.r.Read(p)
	c.left -= int64(n)
	return n, err
}

// drained reports ErrTooLarge when r still holds unread content.
func drained(r io.Reader) error {
	var one [1]byte
	n, err := r.Read(one[:])
	if n > 0 || errors.Is(err, ErrTooLarge) {
		return ErrTooLarge
	}
	return nil
}

func (p Policy) extensionAllowed(ext string) bool {
	if _, known := mimeByExtension[ext]; !known {
		return false
	}
	if len(p.AllowedExtensions) == 0 {
		return true
	}
	for _, allowed := range p.AllowedExtensions {
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}

func matches(detected *mimetype.MIME, accepted []string) bool {
	for m := detected; m != nil; m = m.Parent() {
		for _, a := range accepted {
			if m.Is(a) {
				return true
			}
		}
	}
	return false
}

func contentTypeFor(ext string) string {
	return mimeByExtension[ext][0]
}
