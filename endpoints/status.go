package endpoints

import (
	"net/http"
)

// NewStatusEndpoint returns a handler which writes the given response when the app is ready to serve requests.
// An empty response answers 204 No Content.
func NewStatusEndpoint(response string) http.HandlerFunc {
	if response == "" {
		return func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}
	}

	responseBytes := []byte(response)
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Write(responseBytes)
	}
}
