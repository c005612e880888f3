package stream

import (
	"fmt"
	"strconv"
	"strings"

	"h3stream/internal/qpack"
)

// connectionSpecificHeaders lists header names forbidden on any HTTP/3
// message, carried over verbatim from HTTP/2's restrictions (RFC 9114
// §4.2 reaffirms them) — adapted from the teacher's
// internal/h2/stream/validation.go.
var connectionSpecificHeaders = map[string]bool{
	"connection":        true,
	"keep-alive":        true,
	"proxy-connection":  true,
	"transfer-encoding": true,
	"upgrade":           true,
}

// ValidateRequestHeaders checks a request HEADERS block for lowercase
// field names, pseudo-headers preceding regular headers, no duplicate or
// unknown pseudo-headers, required :method/:scheme/:path, and the usual
// connection-specific header restrictions (adapted from the teacher's
// validateRequestHeaders). It also reports whether :method is CONNECT, for
// the caller to pass to Machine.SetMethConnect.
func ValidateRequestHeaders(headers []qpack.HeaderField) (methConnect bool, err error) {
	var (
		hasMethod, hasScheme, hasPath bool
		seenRegular                   bool
		seenPseudo                    = make(map[string]bool)
		method                        string
	)

	for _, h := range headers {
		name, value := h.Name, h.Value

		if name != strings.ToLower(name) {
			return false, fieldErrorf("header field name must be lowercase: %s", name)
		}

		if strings.HasPrefix(name, ":") {
			if seenRegular {
				return false, fieldErrorf("pseudo-header %s appears after regular header", name)
			}
			if seenPseudo[name] {
				return false, fieldErrorf("duplicate pseudo-header: %s", name)
			}
			seenPseudo[name] = true

			switch name {
			case ":method":
				hasMethod = true
				method = value
			case ":scheme":
				hasScheme = true
			case ":path":
				hasPath = true
				if value == "" {
					return false, fieldErrorf("empty :path pseudo-header")
				}
			case ":authority":
			default:
				return false, fieldErrorf("unknown pseudo-header: %s", name)
			}
			continue
		}

		seenRegular = true
		if connectionSpecificHeaders[strings.ToLower(name)] {
			return false, fieldErrorf("connection-specific header not allowed: %s", name)
		}
		if strings.ToLower(name) == "te" && value != "trailers" {
			return false, fieldErrorf("TE header must be 'trailers', got: %s", value)
		}
	}

	methConnect = method == "CONNECT"
	if methConnect {
		// CONNECT requests carry no :scheme or :path (RFC 9114 §4.4).
		return true, requireHeader(hasMethod, ":method")
	}
	if err := requireHeader(hasMethod, ":method"); err != nil {
		return false, err
	}
	if err := requireHeader(hasScheme, ":scheme"); err != nil {
		return false, err
	}
	if err := requireHeader(hasPath, ":path"); err != nil {
		return false, err
	}
	return false, nil
}

// ValidateResponseHeaders checks a response HEADERS block: lowercase
// field names, the required :status pseudo-header, and the same
// connection-specific header restrictions as requests. It returns the
// parsed status code for the caller to pass into Machine.HandleHeadersEnd.
func ValidateResponseHeaders(headers []qpack.HeaderField) (statusCode int, err error) {
	statusCode = -1
	seenRegular := false
	seenPseudo := make(map[string]bool)

	for _, h := range headers {
		name, value := h.Name, h.Value
		if name != strings.ToLower(name) {
			return -1, fieldErrorf("header field name must be lowercase: %s", name)
		}
		if strings.HasPrefix(name, ":") {
			if seenRegular {
				return -1, fieldErrorf("pseudo-header %s appears after regular header", name)
			}
			if seenPseudo[name] {
				return -1, fieldErrorf("duplicate pseudo-header: %s", name)
			}
			seenPseudo[name] = true
			if name != ":status" {
				return -1, fieldErrorf("unknown pseudo-header: %s", name)
			}
			n, convErr := strconv.Atoi(value)
			if convErr != nil || n < 100 || n > 599 {
				return -1, fieldErrorf("invalid :status value: %s", value)
			}
			statusCode = n
			continue
		}
		seenRegular = true
		if connectionSpecificHeaders[strings.ToLower(name)] {
			return -1, fieldErrorf("connection-specific header not allowed: %s", name)
		}
	}

	if statusCode == -1 {
		return -1, fieldErrorf("missing required :status pseudo-header")
	}
	return statusCode, nil
}

// ValidateTrailerHeaders rejects pseudo-headers and connection-specific
// headers in a trailers block (adapted from the teacher's
// validateTrailerHeaders).
func ValidateTrailerHeaders(headers []qpack.HeaderField) error {
	for _, h := range headers {
		name, value := h.Name, h.Value
		if name != strings.ToLower(name) {
			return fieldErrorf("header field name must be lowercase: %s", name)
		}
		if strings.HasPrefix(name, ":") {
			return fieldErrorf("pseudo-header not allowed in trailers: %s", name)
		}
		if connectionSpecificHeaders[strings.ToLower(name)] {
			return fieldErrorf("connection-specific header not allowed in trailers: %s", name)
		}
		if strings.ToLower(name) == "te" && value != "trailers" {
			return fieldErrorf("TE header must be 'trailers', got: %s", value)
		}
	}
	return nil
}

// ValidateContentLength cross-checks a parsed content-length header
// against the number of DATA bytes actually observed (adapted from the
// teacher's validateContentLength). Returns true when they match or no
// content-length header was present.
func ValidateContentLength(headers []qpack.HeaderField, bodyLength int64) bool {
	for _, h := range headers {
		if strings.ToLower(h.Name) != "content-length" {
			continue
		}
		want, err := strconv.ParseInt(h.Value, 10, 64)
		if err != nil {
			return false
		}
		return want == bodyLength
	}
	return true
}

// EmptyHeaderBlockAllowed reports whether an empty HEADERS frame is valid
// in the given receive state — only inside a trailers phase (spec §4.9
// "Empty header blocks ... are permitted only in TRAILERS_BEGIN states").
func EmptyHeaderBlockAllowed(inTrailers bool) bool { return inTrailers }

func fieldErrorf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

func requireHeader(present bool, name string) error {
	if !present {
		return fieldErrorf("missing required %s pseudo-header", name)
	}
	return nil
}
