package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/iudanet/taskkeeper/internal/server/avatar"
	"github.com/iudanet/taskkeeper/internal/server/storage"
)

// UploadAvatar handles POST /users/me/avatar. The image arrives as the
// multipart form field "avatar", capped at avatar.MaxUploadBytes, and is
// normalized to a square PNG before it is stored.
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := UserFromContext(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, avatar.MaxUploadBytes)

	file, _, err := r.FormFile("avatar")
	if err != nil {
		h.logger.WarnContext(ctx, "failed to read avatar upload", slog.Any("error", err))
		sendError(h.logger, w, "avatar file is required and must not exceed 1 MiB", http.StatusBadRequest)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to read avatar data", slog.Any("error", err))
		sendError(h.logger, w, "failed to read avatar data", http.StatusBadRequest)
		return
	}

	processed, err := avatar.Process(data)
	if err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.users.UpdateAvatar(ctx, user.ID, processed); err != nil {
		h.logger.ErrorContext(ctx, "failed to store avatar", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "avatar uploaded", slog.String("user_id", user.ID))

	w.WriteHeader(http.StatusOK)
}

// DeleteAvatar handles DELETE /users/me/avatar
func (h *UserHandler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := UserFromContext(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.users.UpdateAvatar(ctx, user.ID, nil); err != nil {
		h.logger.ErrorContext(ctx, "failed to clear avatar", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "avatar deleted", slog.String("user_id", user.ID))

	w.WriteHeader(http.StatusOK)
}

// GetAvatar handles GET /users/{id}/avatar
func (h *UserHandler) GetAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, err := h.users.GetAvatar(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) || errors.Is(err, storage.ErrAvatarNotFound) {
			sendError(h.logger, w, "avatar not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get avatar", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Stored avatars are always re-encoded PNG
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.ErrorContext(ctx, "failed to write avatar response", slog.Any("error", err))
	}
}
