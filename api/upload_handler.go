package api

import (
	"errors"
	"net/http"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	images    *services.ImageStore
	maxBytes  int64
}

func newUploadHandler(images *services.ImageStore, maxBytes int64) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		images:    images,
		maxBytes:  maxBytes,
	}
}

// uploadImage stores the multipart "file" field and returns its public URL
// @Router /uploads [post]
func (h uploadHandler) uploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.images.Configured() {
			h.responder.WriteError(w, errs.NewServiceNotConfiguredError("image storage"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1<<20)
		if err := r.ParseMultipartForm(h.maxBytes); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(h.maxBytes))
				return
			}
			h.responder.WriteError(w, errs.NewBadRequestError("expected a multipart form with a file field"))
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		if header.Size > h.maxBytes {
			h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(h.maxBytes))
			return
		}

		url, err := h.images.Upload(r.Context(), header.Header.Get("Content-Type"), file, header.Size)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, UploadResult{URL: url})
	}
}
