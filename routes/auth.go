package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"fileconv/apikeys"
	"fileconv/config"
	"fileconv/logger"
)

// unauthorizedMessage is deliberately uniform: missing, malformed and
// wrong keys all read the same to the caller.
const unauthorizedMessage = "Missing or invalid API key"

// requestKey extracts the presented key from the X-API-Key header or
// an Authorization: Bearer header.
func requestKey(r *http.Request) string {
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key
	}
	auth := r.Header.Get("Authorization")
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}

// requireAPIKey gates conversion and listing endpoints. With no master
// key configured and no consumer keys stored the service is open.
// Returns false after writing the error response.
func requireAPIKey(w http.ResponseWriter, r *http.Request) bool {
	master := config.GetMasterKey()
	if master == "" && apikeys.Empty() {
		return true
	}
	key := requestKey(r)
	if key == "" {
		writeJSONError(w, http.StatusUnauthorized, unauthorizedMessage)
		return false
	}
	if master != "" && key == master {
		return true
	}
	if apikeys.Exists(key) {
		return true
	}
	logger.Debugf("Rejected key from %s", r.RemoteAddr)
	writeJSONError(w, http.StatusUnauthorized, unauthorizedMessage)
	return false
}

// requireMasterKey gates key management. Consumer keys are never
// sufficient here, and without a configured master key the whole
// surface is disabled.
func requireMasterKey(w http.ResponseWriter, r *http.Request) bool {
	master := config.GetMasterKey()
	if master == "" {
		writeJSONError(w, http.StatusServiceUnavailable, "API key management is not configured (set API_KEY)")
		return false
	}
	key := requestKey(r)
	if key == "" || key != master {
		writeJSONError(w, http.StatusUnauthorized, unauthorizedMessage)
		return false
	}
	return true
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
