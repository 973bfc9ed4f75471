package handler

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/vidstream/vidstream/internal/apperr"
)

type formReader func(field string) string

// decodeRequest fills dst from a JSON body, or falls back to form fields for
// urlencoded and multipart clients. fromForm maps form values onto dst.
func decodeRequest(r *http.Request, dst any, fromForm func(form formReader)) error {
	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if contentType == "application/json" {
		err := json.NewDecoder(r.Body).Decode(dst)
		if err != nil {
			return apperr.Validation("invalid JSON body")
		}
		return nil
	}

	err := r.ParseForm()
	if err != nil {
		return apperr.Validation("invalid form body")
	}
	fromForm(r.FormValue)
	return nil
}
