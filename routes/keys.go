package routes

import (
	"encoding/json"
	"net/http"

	"fileconv/apikeys"
	"fileconv/logger"
)

// CreateKeyRequest is the optional POST /api/keys body.
type CreateKeyRequest struct {
	Name string `json:"name"`
}

// CreateKeyResponse carries the key value the one time it is exposed.
type CreateKeyResponse struct {
	APIKey    string `json:"api_key"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	Message   string `json:"message"`
}

// ListKeysResponse never includes key values.
type ListKeysResponse struct {
	Keys []apikeys.Key `json:"keys"`
}

// KeysHandler manages consumer keys. Both methods require the master
// key; consumer keys cannot manage keys.
func KeysHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMasterKey(w, r) {
		return
	}

	switch r.Method {
	case http.MethodPost:
		createKey(w, r)
	case http.MethodGet:
		listKeys(w)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func createKey(w http.ResponseWriter, r *http.Request) {
	// Body is optional; a missing or malformed body means default name.
	var body CreateKeyRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&body)
	}

	token, rec, err := apikeys.Create(body.Name)
	if err != nil {
		logger.Errorf("Failed to create consumer key: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to create key")
		return
	}
	logger.Infof("Created consumer key %q", rec.Name)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(CreateKeyResponse{
		APIKey:    token,
		Name:      rec.Name,
		CreatedAt: rec.CreatedAt,
		Message:   "Store this key securely; it will not be shown again.",
	})
}

func listKeys(w http.ResponseWriter) {
	keys, err := apikeys.List()
	if err != nil {
		logger.Errorf("Failed to list consumer keys: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to list keys")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ListKeysResponse{Keys: keys})
}
