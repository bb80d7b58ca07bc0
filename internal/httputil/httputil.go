// Package httputil provides HTTP method and status code helpers shared by
// the validator and the patch rules.
package httputil

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HTTP Status Code Constants
const (
	StatusCodeLength = 3   // Standard length of HTTP status codes (e.g., "200", "404")
	MinStatusCode    = 100 // Minimum valid HTTP status code
	MaxStatusCode    = 599 // Maximum valid HTTP status code
)

// HTTP Method Constants. Operation keys in a paths object are lowercase.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
)

// MediaTypeJSON is the only request/response media type the patch rules touch.
const MediaTypeJSON = "application/json"

// Methods lists the recognized operation keys in the order operations are
// processed within a path item.
var Methods = []string{MethodGet, MethodPut, MethodPost, MethodDelete, MethodOptions, MethodHead, MethodPatch}

var lower = cases.Lower(language.Und)

// NormalizeMethod lowercases and trims a method token.
func NormalizeMethod(method string) string {
	return lower.String(strings.TrimSpace(method))
}

// IsHTTPMethod reports whether key names a recognized operation, ignoring case.
func IsHTTPMethod(key string) bool {
	switch NormalizeMethod(key) {
	case MethodGet, MethodPut, MethodPost, MethodDelete, MethodOptions, MethodHead, MethodPatch:
		return true
	}
	return false
}

// ForbidsBody reports whether requests with this method must not carry a body.
func ForbidsBody(method string) bool {
	m := NormalizeMethod(method)
	return m == MethodGet || m == MethodDelete
}

// TakesBody reports whether requests with this method carry a JSON body the
// patch rules should give a schema.
func TakesBody(method string) bool {
	switch NormalizeMethod(method) {
	case MethodPost, MethodPut, MethodPatch:
		return true
	}
	return false
}

// StandardHTTPStatusCodes contains RFC 9110 officially defined HTTP status codes.
// These are used in strict mode validation to warn about non-standard codes.
var StandardHTTPStatusCodes = map[int]bool{
	// 1xx Informational
	100: true, 101: true, 102: true, 103: true,
	// 2xx Success
	200: true, 201: true, 202: true, 203: true, 204: true, 205: true,
	206: true, 207: true, 208: true, 226: true,
	// 3xx Redirection
	300: true, 301: true, 302: true, 303: true, 304: true, 305: true,
	307: true, 308: true,
	// 4xx Client Error
	400: true, 401: true, 402: true, 403: true, 404: true, 405: true,
	406: true, 407: true, 408: true, 409: true, 410: true, 411: true,
	412: true, 413: true, 414: true, 415: true, 416: true, 417: true,
	418: true, 421: true, 422: true, 423: true, 424: true, 425: true,
	426: true, 428: true, 429: true, 431: true, 451: true,
	// 5xx Server Error
	500: true, 501: true, 502: true, 503: true, 504: true, 505: true,
	506: true, 507: true, 508: true, 510: true, 511: true,
}

// ParseStatusCode parses a three-digit status code in the 100-599 range.
func ParseStatusCode(code string) (int, bool) {
	if len(code) != StatusCodeLength {
		return 0, false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(code)
	if err != nil || n < MinStatusCode || n > MaxStatusCode {
		return 0, false
	}
	return n, true
}

// IsStandardStatusCode checks if a status code is a well-defined standard HTTP code.
func IsStandardStatusCode(code int) bool {
	return StandardHTTPStatusCodes[code]
}

// IsSuccess reports whether status is a 2xx code.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}
