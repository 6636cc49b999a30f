package imgextract

import (
	"encoding/base64"
	"mime"
	"strings"
)

// DataURL is a decoded data: URL.
type DataURL struct {
	// Type and Subtype are the lowercased MIME type components.
	Type    string
	Subtype string
	Params  map[string]string

	// Base64 reports whether the body was base64-encoded.
	Base64 bool

	// Data is the decoded body.
	Data []byte
}

// Essence returns the MIME type without parameters, e.g. "image/png".
func (u *DataURL) Essence() string {
	return u.Type + "/" + u.Subtype
}

// MediaType returns the MIME type including parameters.
func (u *DataURL) MediaType() string {
	return mime.FormatMediaType(u.Essence(), u.Params)
}

// ParseDataURL decodes a data: URL the way browsers do. Surrounding
// whitespace, embedded tabs and newlines, a missing MIME type and unpadded
// or whitespace-wrapped base64 are all accepted. Returns EINVALID if s is
// not a data: URL or its base64 body cannot be decoded.
func ParseDataURL(s string) (*DataURL, error) {
	s = strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
	s = strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, s)

	const scheme = "data:"
	if len(s) < len(scheme) || !strings.EqualFold(s[:len(scheme)], scheme) {
		return nil, Errorf(EINVALID, "not a data URL")
	}
	s = s[len(scheme):]

	comma := strings.IndexByte(s, ',')
	if comma < 0 {
		return nil, Errorf(EINVALID, "data URL has no comma")
	}
	mediaType := trimASCIISpace(s[:comma])
	body := percentDecode(s[comma+1:])

	u := &DataURL{}
	if rest, ok := cutBase64Suffix(mediaType); ok {
		data, err := forgivingBase64Decode(string(body))
		if err != nil {
			return nil, err
		}
		u.Base64 = true
		body = data
		mediaType = rest
	}
	u.Data = body

	if strings.HasPrefix(mediaType, ";") {
		mediaType = "text/plain" + mediaType
	}
	u.Type, u.Subtype, u.Params = parseMIMEType(mediaType)
	return u, nil
}

// cutBase64Suffix removes a trailing ";base64" marker. Spaces are allowed
// between the semicolon and the token, which is matched case-insensitively.
func cutBase64Suffix(mediaType string) (string, bool) {
	const token = "base64"
	if len(mediaType) < len(token) || !strings.EqualFold(mediaType[len(mediaType)-len(token):], token) {
		return mediaType, false
	}
	rest := strings.TrimRight(mediaType[:len(mediaType)-len(token)], " ")
	if !strings.HasSuffix(rest, ";") {
		return mediaType, false
	}
	return strings.TrimSuffix(rest, ";"), true
}

// parseMIMEType falls back to text/plain;charset=US-ASCII for anything that
// does not parse as type/subtype.
func parseMIMEType(s string) (typ, subtype string, params map[string]string) {
	mediaType, params, err := mime.ParseMediaType(s)
	if err == mime.ErrInvalidMediaParameter {
		params, err = map[string]string{}, nil
	}
	if err == nil {
		if t, st, ok := strings.Cut(mediaType, "/"); ok && t != "" && st != "" {
			return t, st, params
		}
	}
	return "text", "plain", map[string]string{"charset": "US-ASCII"}
}

func forgivingBase64Decode(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\f', '\r', ' ':
			return -1
		}
		return r
	}, s)
	if len(s)%4 == 0 {
		switch {
		case strings.HasSuffix(s, "=="):
			s = s[:len(s)-2]
		case strings.HasSuffix(s, "="):
			s = s[:len(s)-1]
		}
	}
	if len(s)%4 == 1 {
		return nil, Errorf(EINVALID, "invalid base64 length")
	}
	for i := 0; i < len(s); i++ {
		if !isBase64Char(s[i]) {
			return nil, Errorf(EINVALID, "invalid base64 character %q", s[i])
		}
	}
	data, err := base64.RawStdEncoding.DecodeString(s)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid base64: %v", err)
	}
	return data, nil
}

func isBase64Char(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '+' || c == '/'
}

// percentDecode decodes %XX escapes and leaves malformed ones as-is.
func percentDecode(s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			out = append(out, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
			continue
		}
		out = append(out, s[i])
	}
	return out
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

func trimASCIISpace(s string) string {
	return strings.Trim(s, "\t\n\f\r ")
}
