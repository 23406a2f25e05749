package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/aiotex/weighttracker/internal/auth"
	"github.com/aiotex/weighttracker/internal/middleware"
	"github.com/aiotex/weighttracker/internal/telemetry/metrics"
	"github.com/aiotex/weighttracker/internal/telemetry/tracing"
	"github.com/aiotex/weighttracker/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=users_mocks_test.go -package=users_test

type usersRepo interface {
	Create(ctx context.Context, user User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int) (*User, error)
	Update(ctx context.Context, user User) error
	Delete(ctx context.Context, userID int) error
}

type loginService interface {
	Login(ctx context.Context, userID int, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
}

type Handler struct {
	repo        usersRepo
	authService loginService
	metrics     *metrics.Manager
}

func NewHandler(repo usersRepo, authService loginService, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:        repo,
		authService: authService,
		metrics:     metrics,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	loginRateLimitAllowedPerMin int,
) {
	usersRouter := mainRouter.PathPrefix("/users").Subrouter()
	usersRouter.HandleFunc("/register", handler.HandleRegister).Methods("POST", "OPTIONS").Name("register")
	usersRouter.HandleFunc("/me", handler.HandleMe).Methods("GET").Name("profile")
	usersRouter.HandleFunc("/me", handler.HandleUpdateProfile).Methods("PUT", "OPTIONS").Name("update-profile")
	usersRouter.HandleFunc("/me", handler.HandleDelete).Methods("DELETE").Name("delete-profile")

	loginSubrouter := mainRouter.PathPrefix("/a").Subrouter()
	loginSubrouter.
		HandleFunc("/login", handler.HandleLogin).
		Methods("POST", "OPTIONS").Name("login")
	loginSubrouter.
		HandleFunc("/logout", handler.HandleLogout).
		Methods("GET", "OPTIONS").Name("logout")

	// rate limit the /login and /logout endpoints to prevent abuse
	loginSubrouter.Use(middleware.RateLimit(rateLimiter, "login", loginRateLimitAllowedPerMin, metricsManager))
	loginSubrouter.Use(middleware.Cors())
}

type sessionResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

func (handler *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.register")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var registerReq RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&registerReq); err != nil {
		log.Tracef("register, unmarshal json params: %s", err)
		http.Error(w, "registration failed", http.StatusBadRequest)
		return
	}

	if err := registerReq.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	passwordHash, err := pkg.HashPassword(registerReq.Password)
	if err != nil {
		log.Errorf("register, hash password: %s", err)
		http.Error(w, "registration failed", http.StatusInternalServerError)
		return
	}

	user, err := handler.repo.Create(ctx, User{
		FirstName:      registerReq.FirstName,
		LastName:       registerReq.LastName,
		Email:          registerReq.Email,
		PasswordHash:   passwordHash,
		UnitPreference: UnitsMetric,
		WeekStartsOn:   0,
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			http.Error(w, "email has already been taken", http.StatusUnprocessableEntity)
			return
		}
		log.Errorf("register, create user: %s", err)
		http.Error(w, "registration failed", http.StatusInternalServerError)
		return
	}

	token, err := handler.authService.Login(ctx, user.ID, time.Now())
	if err != nil {
		log.Errorf("register, generate token: %s", err)
		http.Error(w, "registration failed", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterRegisteredUsers.Inc()

	log.Tracef("new user registered: %d", user.ID)
	handler.writeSession(w, user, token, http.StatusCreated)
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	type loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var loginReq loginRequest
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
			log.Errorf("login, unmarshal json params: %s", err)
			http.Error(w, "login failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("login failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusInternalServerError)
			return
		}
		loginReq = loginRequest{
			Email:    r.Form.Get("email"),
			Password: r.Form.Get("password"),
		}
	}

	if loginReq.Email == "" {
		http.Error(w, "error, email empty", http.StatusBadRequest)
		return
	}
	if loginReq.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	user, err := handler.repo.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Tracef("[email] failed login attempt for: %s", loginReq.Email)
			http.Error(w, "email or password are incorrect", http.StatusUnauthorized)
			return
		}
		log.Errorf("login, get user: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	if !pkg.CheckPasswordHash(loginReq.Password, user.PasswordHash) {
		log.Tracef("[password] failed login attempt for: %s", loginReq.Email)
		http.Error(w, "email or password are incorrect", http.StatusUnauthorized)
		return
	}

	token, err := handler.authService.Login(ctx, user.ID, time.Now())
	if err != nil {
		log.Errorf("login failed, generate token error: %s", err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	log.Trace("new login success")
	handler.writeSession(w, user, token, http.StatusOK)
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	authToken := r.Header.Get("X-WT-TOKEN")
	if authToken == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := handler.authService.Logout(ctx, authToken)
	if err != nil {
		log.Tracef("[failed logout] => %s: %s", r.URL.Path, err)
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	if !loggedOut {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	log.Printf("logout for [%s] success", authToken)
	pkg.WriteTextResponseOK(w, "logged-out")
}

func (handler *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.me")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	user, err := handler.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get user %d: %s", userID, err)
		http.Error(w, "error, failed to get user", http.StatusInternalServerError)
		return
	}

	handler.writeUser(w, user)
}

func (handler *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.updateProfile")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "PUT, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var update ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Tracef("update profile, unmarshal json params: %s", err)
		http.Error(w, "update profile failed", http.StatusBadRequest)
		return
	}

	if err := update.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := handler.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("update profile, get user %d: %s", userID, err)
		http.Error(w, "error, failed to update profile", http.StatusInternalServerError)
		return
	}

	var passwordHash string
	if update.Password != nil {
		passwordHash, err = pkg.HashPassword(*update.Password)
		if err != nil {
			log.Errorf("update profile, hash password: %s", err)
			http.Error(w, "error, failed to update profile", http.StatusInternalServerError)
			return
		}
	}

	update.Apply(user, passwordHash)

	if err := handler.repo.Update(ctx, *user); err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			http.Error(w, "email has already been taken", http.StatusUnprocessableEntity)
		case errors.Is(err, ErrUserNotFound):
			http.Error(w, "user not found", http.StatusNotFound)
		default:
			log.Errorf("failed to update profile for user %d: %s", userID, err)
			http.Error(w, "error, failed to update profile", http.StatusInternalServerError)
		}
		return
	}

	handler.writeUser(w, user)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	if err := handler.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete user %d: %s", userID, err)
		http.Error(w, "error, failed to delete user", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) writeUser(w http.ResponseWriter, user *User) {
	userJson, err := json.Marshal(user)
	if err != nil {
		log.Errorf("failed to marshal user: %s", err)
		http.Error(w, "error, failed to get user", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, userJson, http.StatusOK)
}

func (handler *Handler) writeSession(w http.ResponseWriter, user *User, token string, statusCode int) {
	sessionJson, err := json.Marshal(sessionResponse{User: user, Token: token})
	if err != nil {
		log.Errorf("failed to marshal session: %s", err)
		http.Error(w, fmt.Sprintf("error: %s", err), http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionJson, statusCode)
}
