package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maxBodyBytes bounds request bodies. Attestation objects with certificate
// chains are the largest legitimate payload.
const maxBodyBytes = 64 << 10

// decodeBody decodes a JSON request body into dst. An empty body is allowed
// when optional is set and leaves dst untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any, optional bool) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return true
	}
	invalidRequest(w, "Invalid JSON in request body")
	return false
}
