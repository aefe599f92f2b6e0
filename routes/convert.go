package routes

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"fileconv/codec"
	"fileconv/convert"
	"fileconv/format"
	"fileconv/logger"
	"fileconv/metrics"
	"fileconv/pdf"
)

// maxMultipartMemory bounds the in-memory part of multipart parsing;
// larger bodies spill to disk.
const maxMultipartMemory = 64 << 20

// binaryInput reads the payload from the raw body, or from the
// multipart field "file" when the request is multipart.
func binaryInput(r *http.Request) ([]byte, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, err
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, nil
		}
		defer file.Close()
		return io.ReadAll(file)
	}
	return io.ReadAll(r.Body)
}

// formatHeaders maps param names to their header channel.
var formatHeaders = map[string]string{
	"input_format":  "X-Input-Format",
	"output_format": "X-Output-Format",
}

// formatParam resolves a format designator from query, multipart form,
// or X-Input-Format / X-Output-Format headers, in that order.
func formatParam(r *http.Request, name string) string {
	if q := r.URL.Query().Get(name); q != "" {
		return strings.TrimSpace(q)
	}
	if r.MultipartForm != nil {
		if v := r.FormValue(name); v != "" {
			return strings.TrimSpace(v)
		}
	}
	if h := r.Header.Get(formatHeaders[name]); h != "" {
		return strings.TrimSpace(h)
	}
	return ""
}

// statusForError maps the conversion error taxonomy onto HTTP codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, codec.ErrUnavailable):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// errorReason labels a failed conversion for the metrics counter.
func errorReason(err error) string {
	var pageErr *pdf.PageRangeError
	switch {
	case errors.Is(err, convert.ErrEmptyPayload):
		return "empty_payload"
	case errors.Is(err, convert.ErrInvalidFormat):
		return "invalid_format"
	case errors.Is(err, convert.ErrUnsupportedConversion):
		return "unsupported_conversion"
	case errors.As(err, &pageErr):
		return "page_out_of_range"
	case errors.Is(err, pdf.ErrInvalidDocument), errors.Is(err, codec.ErrDecode):
		return "decode_error"
	case errors.Is(err, codec.ErrEncode):
		return "encode_error"
	case errors.Is(err, codec.ErrUnavailable):
		return "dependency_unavailable"
	default:
		return "internal"
	}
}

// ConvertHandler converts a binary payload between the supported
// formats. Payload comes from the raw body or a multipart "file"
// part; formats from query, form or headers; the optional ?page picks
// the document page for pdf sources.
func ConvertHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !requireAPIKey(w, r) {
		return
	}

	data, err := binaryInput(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	if len(data) == 0 {
		writeJSONError(w, http.StatusBadRequest, "No binary data: send raw body or multipart 'file'")
		return
	}

	inputFormat := formatParam(r, "input_format")
	outputFormat := formatParam(r, "output_format")
	if outputFormat == "" {
		writeJSONError(w, http.StatusBadRequest, "output_format is required (query, form, or X-Output-Format)")
		return
	}
	if inputFormat == "" {
		writeJSONError(w, http.StatusBadRequest, "input_format is required (query, form, or X-Input-Format)")
		return
	}

	page := 0
	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid page index: %q", raw))
			return
		}
	}

	result, err := convert.Convert(data, inputFormat, outputFormat, page)
	if err != nil {
		logger.Debugf("Conversion %s->%s failed: %v", inputFormat, outputFormat, err)
		metrics.ConversionFailed(errorReason(err))
		writeJSONError(w, statusForError(err), err.Error())
		return
	}

	// Canonical names keep the metric label set bounded.
	in, _ := format.Normalize(inputFormat)
	metrics.ConversionProcessed(string(in), string(result.Format))
	logger.Infof("Converted %d bytes %s->%s (%d bytes out)",
		len(data), inputFormat, result.Format, len(result.Data))

	w.Header().Set("Content-Type", result.MIME)
	w.Header().Set("X-Output-Format", string(result.Format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=converted.%s", result.Format.Ext()))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}
