package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"vidserve/catalog"
	"vidserve/logger"
	"vidserve/models"
)

type videoResponse struct {
	File        string                `json:"file"`
	Metadata    models.MetadataRecord `json:"metadata"`
	DownloadURL string                `json:"download_url"`
}

func toVideoResponse(asset models.OutputAsset) videoResponse {
	return videoResponse{
		File:        asset.Filename,
		Metadata:    asset.Metadata,
		DownloadURL: downloadURL(asset.Identity, asset.Filename),
	}
}

// APIVideos lists the caller's catalog.
func (h *Handler) APIVideos(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFrom(r.Context())

	assets, err := h.cat.List(identity)
	if err != nil {
		logger.Errorf("Failed to list catalog for %s: %v", identity, err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to list videos")
		return
	}

	videos := make([]videoResponse, 0, len(assets))
	for _, asset := range assets {
		videos = append(videos, toVideoResponse(asset))
	}
	writeJSON(w, http.StatusOK, videos)
}

// APIVideo looks up a single output by filename.
func (h *Handler) APIVideo(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFrom(r.Context())
	filename := mux.Vars(r)["filename"]

	if !catalog.AllowedOutput(filename) {
		writeJSONError(w, http.StatusBadRequest, "Invalid filename")
		return
	}

	asset, err := h.cat.Get(identity, filename)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "File not found")
		return
	}

	writeJSON(w, http.StatusOK, toVideoResponse(asset))
}
