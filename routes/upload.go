package routes

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"vidserve/encoder"
	"vidserve/logger"
	"vidserve/models"
)

// uploadError pairs a client-facing message with a status code so the
// browser and API handlers can share one upload pipeline.
type uploadError struct {
	status  int
	message string
}

func (e *uploadError) Error() string { return e.message }

// handleUpload runs the shared upload pipeline: parse the multipart form,
// sanitize and save the input, resolve encode parameters and run the
// blocking encode. The auth gate has already attached the identity.
func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) (models.OutputAsset, *uploadError) {
	identity := IdentityFrom(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return models.OutputAsset{}, &uploadError{http.StatusBadRequest, "Failed to parse multipart form"}
	}

	file, header, err := r.FormFile("video")
	if err != nil {
		return models.OutputAsset{}, &uploadError{http.StatusBadRequest, "No file part"}
	}
	defer file.Close()

	if strings.TrimSpace(header.Filename) == "" {
		return models.OutputAsset{}, &uploadError{http.StatusBadRequest, "No selected file"}
	}

	safeName := encoder.SanitizeFilename(header.Filename)
	if strings.Trim(safeName, "._-") == "" {
		return models.OutputAsset{}, &uploadError{http.StatusBadRequest, "Invalid filename"}
	}

	params := encoder.ResolveParams(
		r.FormValue("quality"),
		r.FormValue("framerate"),
		r.FormValue("format"),
	)

	uploadDir, err := h.ns.ResolveUpload(identity)
	if err != nil {
		logger.Errorf("Failed to resolve upload namespace for %s: %v", identity, err)
		return models.OutputAsset{}, &uploadError{http.StatusInternalServerError, "Failed to save file"}
	}

	inputPath := filepath.Join(uploadDir, safeName)
	if err := saveUpload(inputPath, file); err != nil {
		logger.Errorf("Failed to save upload for %s: %v", identity, err)
		return models.OutputAsset{}, &uploadError{http.StatusInternalServerError, "Failed to save file"}
	}

	asset, err := h.orch.Run(r.Context(), identity, inputPath, safeName, params)
	if err != nil {
		if errors.Is(err, encoder.ErrEncodeFailed) {
			// Input stays on disk for diagnosis.
			return models.OutputAsset{}, &uploadError{http.StatusInternalServerError, "Transcoding failed"}
		}
		logger.Errorf("Encode pipeline error for %s: %v", identity, err)
		return models.OutputAsset{}, &uploadError{http.StatusInternalServerError, "Transcoding failed"}
	}

	return asset, nil
}

func saveUpload(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

// Upload handles the browser form submission and responds with a download
// link.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	asset, uerr := h.handleUpload(w, r)
	if uerr != nil {
		http.Error(w, uerr.message, uerr.status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "File uploaded and transcoded: <a href='%s'>%s</a>",
		downloadURL(asset.Identity, asset.Filename), asset.Filename)
}

// APIUpload is the JSON variant of Upload.
func (h *Handler) APIUpload(w http.ResponseWriter, r *http.Request) {
	asset, uerr := h.handleUpload(w, r)
	if uerr != nil {
		writeJSONError(w, uerr.status, uerr.message)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Upload & transcode successful",
		"file":         asset.Filename,
		"metadata":     asset.Metadata,
		"download_url": downloadURL(asset.Identity, asset.Filename),
	})
}

func downloadURL(identity, filename string) string {
	return "/outputs/" + identity + "/" + filename
}
