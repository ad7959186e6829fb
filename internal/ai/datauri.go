package ai

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/falynantenaina87-blip/Mandarin-connect/models"
)

// defaultImageMIME is assumed when an input image carries no usable
// self-description.
const defaultImageMIME = "image/jpeg"

// ParseImageInput accepts a user-supplied image either as a data URI
// (`data:<mime>;base64,<payload>`) or as a bare base64 payload, and
// recovers mime type and raw bytes. A malformed or missing mime falls
// back to image/jpeg; only an undecodable payload is an error.
func ParseImageInput(s string) (InlineImage, error) {
	mime := defaultImageMIME
	payload := s

	if strings.HasPrefix(s, "data:") {
		rest := strings.TrimPrefix(s, "data:")
		if idx := strings.Index(rest, ";base64,"); idx >= 0 {
			if m := rest[:idx]; m != "" {
				mime = m
			}
			payload = rest[idx+len(";base64,"):]
		} else if idx := strings.Index(rest, ","); idx >= 0 {
			payload = rest[idx+1:]
		}
	} else if idx := strings.Index(s, ","); idx >= 0 {
		// Bare "<header>,<payload>" forms degrade to the payload.
		payload = s[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		if data, err = base64.RawStdEncoding.DecodeString(payload); err != nil {
			return InlineImage{}, fmt.Errorf("%w: image payload is not base64", models.ErrValidation)
		}
	}
	return InlineImage{MIMEType: mime, Data: data}, nil
}

// EncodeDataURI renders image bytes in the self-describing wire form.
func EncodeDataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
