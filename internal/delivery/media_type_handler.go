package delivery

import (
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/voci-api/internal/ports"
	"github.com/Vovarama1992/voci-api/internal/validation"
)

const msgMediaTypeNotFound = "media type not found"

type mediaTypeRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type MediaTypeHandler struct {
	svc ports.MediaTypeService
	log *logger.ZapLogger
}

func NewMediaTypeHandler(svc ports.MediaTypeService, log *logger.ZapLogger) *MediaTypeHandler {
	return &MediaTypeHandler{
		svc: svc,
		log: log,
	}
}

// GET /media-types
func (h *MediaTypeHandler) List(w http.ResponseWriter, r *http.Request, _ []int) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		respondError(w, r, h.log, err, msgMediaTypeNotFound)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GET /media-types/{id}
func (h *MediaTypeHandler) Get(w http.ResponseWriter, r *http.Request, params []int) {
	m, err := h.svc.Get(r.Context(), params[0])
	if err != nil {
		respondError(w, r, h.log, err, msgMediaTypeNotFound)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// POST /media-types
func (h *MediaTypeHandler) Create(w http.ResponseWriter, r *http.Request, _ []int) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	id, err := h.svc.Create(r.Context(), req.Name)
	if err != nil {
		respondError(w, r, h.log, err, msgMediaTypeNotFound)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "media type created",
		Fields:  map[string]any{"id": id},
	})
	writeJSON(w, http.StatusCreated, messageResponse{Message: "media type created", ID: id})
}

// PUT /media-types/{id}
func (h *MediaTypeHandler) Update(w http.ResponseWriter, r *http.Request, params []int) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	if err := h.svc.Update(r.Context(), params[0], req.Name); err != nil {
		respondError(w, r, h.log, err, msgMediaTypeNotFound)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "media type updated"})
}

// DELETE /media-types/{id}
func (h *MediaTypeHandler) Delete(w http.ResponseWriter, r *http.Request, params []int) {
	if err := h.svc.Delete(r.Context(), params[0]); err != nil {
		respondError(w, r, h.log, err, msgMediaTypeNotFound)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "media type deleted",
		Fields:  map[string]any{"id": params[0]},
	})
	writeNoContent(w)
}

func (h *MediaTypeHandler) decode(w http.ResponseWriter, r *http.Request) (mediaTypeRequest, bool) {
	body, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return mediaTypeRequest{}, false
	}

	req := mediaTypeRequest{Name: body.String("name")}
	if err := validation.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return mediaTypeRequest{}, false
	}
	return req, true
}
