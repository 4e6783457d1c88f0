package handler

import (
	"net/http"

	"github.com/go-contacts-api/internal/application/user"
	"github.com/go-contacts-api/internal/transport/http/middleware"
)

// maxAvatarBytes caps avatar uploads at 8 MiB.
const maxAvatarBytes = 8 << 20

// UserHandler handles the authenticated user's profile endpoints.
type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler { return &UserHandler{svc: svc} }

// Me returns the caller's own identity as resolved by the auth middleware.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	f, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer f.Close()

	url, err := h.svc.UpdateAvatar(r.Context(), u, user.AvatarInput{
		Reader:      f,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AvatarEnvelope{
		Message:   "Avatar updated successfully",
		AvatarURL: url,
	})
}
