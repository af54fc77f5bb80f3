// Package payload normalizes the loosely structured responses the appliance's
// CGI endpoints return. Depending on firmware build and section, an info
// response may be a JSON object, a JSON-encoded string, bare key=value text,
// or any of those wrapped in a {"data": ...} envelope. This package turns all
// of them into an insertion-ordered field mapping with a canonical key
// vocabulary.
package payload
