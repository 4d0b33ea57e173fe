package api

import (
	"net/http"

	"github.com/justic/justic-api/internal/api/shared"
	"github.com/justic/justic-api/internal/config"
	"github.com/justic/justic-api/internal/platform/logger"
	"github.com/justic/justic-api/internal/provider"
	"github.com/justic/justic-api/internal/redact"
	"github.com/justic/justic-api/internal/service/video"
)

const (
	defaultVideoChunk     = 1 << 20
	defaultThumbnailChunk = 256 << 10
)

// VideoHandler serves the video generation endpoints.
type VideoHandler struct {
	service        video.Service
	videoChunk     int
	thumbnailChunk int
}

// NewVideoHandler creates a VideoHandler. Chunk sizes come from the media
// configuration; zero values use 1 MiB for video and 256 KiB for thumbnails.
func NewVideoHandler(service video.Service, cfg config.MediaConfig) *VideoHandler {
	h := &VideoHandler{
		service:        service,
		videoChunk:     cfg.VideoChunkBytes,
		thumbnailChunk: cfg.ThumbnailChunkBytes,
	}
	if h.videoChunk <= 0 {
		h.videoChunk = defaultVideoChunk
	}
	if h.thumbnailChunk <= 0 {
		h.thumbnailChunk = defaultThumbnailChunk
	}
	return h
}

// Generate handles POST /api/video/generate.
func (h *VideoHandler) Generate(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	task, err := h.service.Generate(r.Context(), owner, req.Prompt)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, newTaskResponse(*task))
}

// Callback handles POST /api/video/callback. The provider always receives
// {"code":200}; failures are only logged.
func (h *VideoHandler) Callback(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var payload provider.CallbackPayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		log.Warn("ignoring malformed provider callback", "error", redact.Error(err))
	} else if err := h.service.HandleCallback(r.Context(), payload); err != nil {
		log.Error("provider callback failed",
			"task_id", payload.Data.TaskID,
			"error", redact.Error(err))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CallbackAck{Code: http.StatusOK})
}

// List handles GET /api/video/list.
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	tasks, err := h.service.List(r.Context(), owner)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	resp := ListResponse{Videos: make([]TaskResponse, 0, len(tasks))}
	for _, t := range tasks {
		resp.Videos = append(resp.Videos, newTaskResponse(t))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Status handles GET /api/video/status/{taskID}.
func (h *VideoHandler) Status(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	taskID, err := pathTaskID(r, "")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.service.Status(r.Context(), owner, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newTaskResponse(*task))
}

// Stream handles GET /api/video/stream/{taskID}.
func (h *VideoHandler) Stream(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	taskID, err := pathTaskID(r, "")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	artifact, err := h.service.StreamVideo(r.Context(), owner, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	streamArtifact(w, r, artifact, h.videoChunk, logger.FromContext(r.Context()))
}

// Thumbnail handles GET /api/video/thumb/{taskID}, with or without a .jpg
// suffix.
func (h *VideoHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	taskID, err := pathTaskID(r, ".jpg")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	artifact, err := h.service.Thumbnail(r.Context(), owner, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	streamArtifact(w, r, artifact, h.thumbnailChunk, logger.FromContext(r.Context()))
}
