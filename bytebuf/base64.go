package bytebuf

import (
	"encoding/base64"
	"fmt"

	"github.com/arloliu/datablock/errs"
)

// EncodeBase64 encodes data with the standard padded alphabet.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeBase64 decodes a standard padded base64 string.
func DecodeBase64(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %w", errs.ErrInvalidFormat, err)
	}

	return data, nil
}

// Base64 returns the buffer content encoded as base64.
func (bb *ByteBuffer) Base64() string {
	return EncodeBase64(bb.B)
}

// SetBase64 replaces the buffer content with the decoded value of s.
// The buffer is left unchanged on error.
func (bb *ByteBuffer) SetBase64(s string) error {
	data, err := DecodeBase64(s)
	if err != nil {
		return err
	}
	bb.SetData(data)

	return nil
}
