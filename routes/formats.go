package routes

import (
	"encoding/json"
	"net/http"

	"fileconv/format"
)

// FormatsResponse lists every accepted designator, aliases included.
type FormatsResponse struct {
	Formats []string `json:"formats"`
	Note    string   `json:"note"`
}

// FormatsHandler lists the recognized format designators.
func FormatsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !requireAPIKey(w, r) {
		return
	}

	response := FormatsResponse{
		Formats: format.Designators(),
		Note:    "Use 'jpeg' or 'jpg' for JPEG; 'tiff' or 'tif' for TIFF. PDF: first page when converting to image; use ?page=N for other pages (0-based).",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
