package http

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/media"
	"github.com/aussiebroadwan/foodspot/pkg/foodsdk"
	"github.com/aussiebroadwan/foodspot/pkg/httpx"
	"github.com/aussiebroadwan/foodspot/pkg/slogx"
)

// multipartOverhead is the room allowed for boundaries and part headers on
// top of the file itself.
const multipartOverhead = 64 << 10

// UploadHandler stores images for any signed-in account.
type UploadHandler struct {
	Images   media.ImageStore
	MaxBytes int64
}

func (h *UploadHandler) maxBytes() int64 {
	if h.MaxBytes > 0 {
		return h.MaxBytes
	}
	return media.DefaultMaxBytes
}

// HandleUpload handles POST /api/upload
//
//	@Summary		Upload an image
//	@Description	Accepts jpeg, png, gif and webp. The stored name is the upload time in unix milliseconds and the file name.
//	@Tags			Uploads
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"Image"
//	@Success		201		{object}	foodsdk.UploadResponse
//	@Failure		400		{object}	foodsdk.ErrorResponse	"invalid_request"
//	@Failure		401		{object}	foodsdk.ErrorResponse	"unauthenticated"
//	@Failure		413		{object}	foodsdk.ErrorResponse	"invalid_request"
//	@Failure		415		{object}	foodsdk.ErrorResponse	"invalid_request"
//	@Router			/api/upload [post].
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := h.maxBytes()

	if ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || ct != "multipart/form-data" {
		writeBadRequest(w, "content-type must be multipart/form-data")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)

	mr, err := r.MultipartReader()
	if err != nil {
		writeBadRequest(w, "invalid multipart body")
		return
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			writeBadRequest(w, `multipart field "file" is required`)
			return
		}
		if err != nil {
			writeUploadReadError(w, err, limit)
			return
		}
		if part.FormName() != "file" {
			_ = part.Close()
			continue
		}

		data, err := io.ReadAll(io.LimitReader(part, limit+1))
		_ = part.Close()
		if err != nil {
			writeUploadReadError(w, err, limit)
			return
		}
		if int64(len(data)) > limit {
			writeTooLarge(w, limit)
			return
		}

		ct, body, err := media.SniffContentType(bytes.NewReader(data))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		url, err := h.Images.Save(ctx, part.FileName(), ct, body)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		slogx.FromContext(ctx).Info("image uploaded", "url", url, "bytes", len(data), "content_type", ct)
		httpx.WriteJSON(w, http.StatusCreated, foodsdk.UploadResponse{URL: url})
		return
	}
}

// HandleDelete handles DELETE /api/upload
//
//	@Summary		Delete an uploaded image
//	@Tags			Uploads
//	@Param			url	query	string	true	"URL returned by the upload"
//	@Success		204
//	@Failure		400	{object}	foodsdk.ErrorResponse	"invalid_request"
//	@Failure		401	{object}	foodsdk.ErrorResponse	"unauthenticated"
//	@Failure		404	{object}	foodsdk.ErrorResponse	"not_found"
//	@Router			/api/upload [delete].
func (h *UploadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeBadRequest(w, "url is required")
		return
	}
	if err := h.Images.Delete(r.Context(), url); err != nil {
		writeServiceError(w, r, err)
		return
	}
	slogx.FromContext(r.Context()).Info("image deleted", "url", url)
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

func writeUploadReadError(w http.ResponseWriter, err error, limit int64) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeTooLarge(w, limit)
		return
	}
	writeBadRequest(w, "invalid multipart body")
}

func writeTooLarge(w http.ResponseWriter, limit int64) {
	httpx.WriteError(w, http.StatusRequestEntityTooLarge, "invalid_request",
		"file exceeds "+strconv.FormatInt(limit, 10)+" bytes")
}
