package avatars

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/aiotex/weighttracker/internal/auth"
	"github.com/aiotex/weighttracker/internal/telemetry/tracing"
	"github.com/aiotex/weighttracker/internal/users"
	"github.com/aiotex/weighttracker/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=avatars_mocks_test.go -package=avatars_test

type profileRepo interface {
	GetByID(ctx context.Context, id int) (*users.User, error)
	SetAvatar(ctx context.Context, userID int, avatar string) error
}

type avatarStore interface {
	Save(ctx context.Context, userID int, filename string, src io.Reader) (string, error)
	Remove(ctx context.Context, storedName string) error
	RootPath() string
}

type Handler struct {
	store avatarStore
	repo  profileRepo
}

func NewHandler(store avatarStore, repo profileRepo) *Handler {
	return &Handler{
		store: store,
		repo:  repo,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/users/me/avatar", handler.HandleUpload).Methods("POST", "OPTIONS").Name("upload-avatar")
	mainRouter.HandleFunc("/users/me/avatar", handler.HandleDelete).Methods("DELETE").Name("delete-avatar")

	// uploaded avatars are served as static files
	mainRouter.PathPrefix("/avatars/").Handler(
		http.StripPrefix("/avatars/", http.FileServer(http.Dir(handler.store.RootPath()))),
	).Name("avatars-static")
}

func (handler *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.avatars.upload")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	user, err := handler.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("avatar upload, get user %d: %s", userID, err)
		http.Error(w, "error, failed to upload avatar", http.StatusInternalServerError)
		return
	}

	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		log.Errorf("avatar upload, parse multipart form: %s", err)
		http.Error(w, "internal error or file too big", http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("avatar")
	if err != nil {
		http.Error(w, "error, avatar file missing", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > MaxUploadSize {
		http.Error(w, "error, avatar file too big", http.StatusBadRequest)
		return
	}

	log.Tracef("new avatar upload incoming for user [%d]: %s", userID, fileHeader.Filename)

	storedName, err := handler.store.Save(ctx, userID, fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, ErrUnsupportedType) {
			http.Error(w, "error, unsupported image type", http.StatusBadRequest)
			return
		}
		log.Errorf("avatar upload, save file: %s", err)
		http.Error(w, "error, failed to upload avatar", http.StatusInternalServerError)
		return
	}

	if err := handler.repo.SetAvatar(ctx, userID, storedName); err != nil {
		// db update failed, do not leave the new file behind
		if removeErr := handler.store.Remove(ctx, storedName); removeErr != nil {
			log.Errorf("failed to remove avatar after db error: %s", removeErr)
		}
		log.Errorf("avatar upload, set avatar for user %d: %s", userID, err)
		http.Error(w, "error, failed to upload avatar", http.StatusInternalServerError)
		return
	}

	// the previous avatar file is now orphaned
	if user.Avatar != "" {
		if err := handler.store.Remove(ctx, user.Avatar); err != nil && !errors.Is(err, ErrAvatarNotFound) {
			log.Errorf("failed to remove old avatar %s: %s", user.Avatar, err)
		}
	}

	pkg.WriteJSONResponseOK(w, `{"avatarUrl": "/avatars/`+storedName+`"}`)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.avatars.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	user, err := handler.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("avatar delete, get user %d: %s", userID, err)
		http.Error(w, "error, failed to delete avatar", http.StatusInternalServerError)
		return
	}

	if user.Avatar == "" {
		http.Error(w, "no avatar found", http.StatusNotFound)
		return
	}

	if err := handler.repo.SetAvatar(ctx, userID, ""); err != nil {
		log.Errorf("avatar delete, unset avatar for user %d: %s", userID, err)
		http.Error(w, "error, failed to delete avatar", http.StatusInternalServerError)
		return
	}

	if err := handler.store.Remove(ctx, user.Avatar); err != nil && !errors.Is(err, ErrAvatarNotFound) {
		log.Errorf("failed to remove avatar file %s: %s", user.Avatar, err)
	}

	w.WriteHeader(http.StatusNoContent)
}
