// Package datauri encodes and decodes RFC 2397 data URIs.
// Documents and invoice images are stored self-contained in this form.
package datauri

import (
	"encoding/base64"
	"errors"
	"net/url"
	"strings"
)

// ErrMalformed is returned for strings that are not data URIs.
var ErrMalformed = errors.New("malformed data URI")

// Encode returns data as a base64 data URI of the given MIME type.
func Encode(mimeType string, data []byte) string {
	var b strings.Builder
	b.Grow(len("data:;base64,") + len(mimeType) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString("data:")
	b.WriteString(mimeType)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}

// Decode returns the payload and MIME type of a data URI.
// Both base64 and percent-encoded payloads are accepted.
func Decode(uri string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, "", ErrMalformed
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", ErrMalformed
	}

	params := strings.Split(header, ";")
	mimeType := params[0]
	if mimeType == "" {
		mimeType = "text/plain"
	}
	isBase64 := false
	for _, p := range params[1:] {
		if p == "base64" {
			isBase64 = true
		}
	}

	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", errors.Join(ErrMalformed, err)
		}
		return data, mimeType, nil
	}

	text, err := url.PathUnescape(payload)
	if err != nil {
		return nil, "", errors.Join(ErrMalformed, err)
	}
	return []byte(text), mimeType, nil
}

// MimeType returns the MIME type declared by a data URI, or "".
func MimeType(uri string) string {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return ""
	}
	header, _, _ := strings.Cut(rest, ",")
	mimeType, _, _ := strings.Cut(header, ";")
	return mimeType
}
