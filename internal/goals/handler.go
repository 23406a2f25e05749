package goals

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/aiotex/weighttracker/internal/auth"
	"github.com/aiotex/weighttracker/internal/period"
	"github.com/aiotex/weighttracker/internal/telemetry/metrics"
	"github.com/aiotex/weighttracker/internal/telemetry/tracing"
	"github.com/aiotex/weighttracker/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=goals_mocks_test.go -package=goals_test

type goalsRepo interface {
	Get(ctx context.Context, userID int) (*Goal, error)
	Create(ctx context.Context, goal Goal) error
	Update(ctx context.Context, goal Goal) error
	Delete(ctx context.Context, userID int) error
}

type Handler struct {
	repo    goalsRepo
	metrics *metrics.Manager

	// ability to inject the clock (for unit testing)
	NowFunc func() time.Time
}

func NewHandler(repo goalsRepo, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metrics,
		NowFunc: time.Now,
	}
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.get")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	goal, err := handler.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get goal: %s", err)
		http.Error(w, "error, failed to get goal", http.StatusInternalServerError)
		return
	}

	handler.writeGoal(w, goal)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.create")
	defer span.End()

	handler.upsertGoal(ctx, w, r, handler.repo.Create, "create")
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.update")
	defer span.End()

	handler.upsertGoal(ctx, w, r, handler.repo.Update, "update")
}

func (handler *Handler) upsertGoal(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	save func(ctx context.Context, goal Goal) error,
	action string,
) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var goal Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		log.Tracef("%s goal, unmarshal json params: %s", action, err)
		http.Error(w, action+" goal failed", http.StatusBadRequest)
		return
	}
	goal.UserID = userID

	if err := goal.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := save(ctx, goal); err != nil {
		switch {
		case errors.Is(err, ErrGoalExists):
			http.Error(w, "goal already exists", http.StatusBadRequest)
		case errors.Is(err, ErrGoalNotFound):
			http.Error(w, "goal not found", http.StatusNotFound)
		default:
			log.Errorf("failed to %s goal: %s", action, err)
			http.Error(w, "error, failed to "+action+" goal", http.StatusInternalServerError)
		}
		return
	}

	handler.metrics.CounterGoalChanges.Inc()
	handler.writeGoal(w, &goal)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	if err := handler.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete goal: %s", err)
		http.Error(w, "error, failed to delete goal", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandlePace returns the required per-period weight change to stay on
// track for the goal's target date.
func (handler *Handler) HandlePace(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.pace")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()

	keyStr := query.Get("period")
	if keyStr == "" {
		keyStr = string(period.KeyWeek)
	}
	key, err := period.ParseKey(keyStr)
	if err != nil {
		http.Error(w, "invalid period", http.StatusBadRequest)
		return
	}

	weekStartsOn := 0
	switch query.Get("week_starts_on") {
	case "", "0":
	case "1":
		weekStartsOn = 1
	default:
		http.Error(w, "invalid week_starts_on", http.StatusBadRequest)
		return
	}

	opts := period.Aligned(handler.NowFunc(), weekStartsOn)
	if query.Get("align") == "false" {
		opts = period.Rolling(handler.NowFunc())
	}

	p, err := period.New(key, opts)
	if err != nil {
		http.Error(w, "invalid period", http.StatusBadRequest)
		return
	}

	var startWeightOverride float64
	if currentStr := query.Get("current_weight"); currentStr != "" {
		startWeightOverride, err = strconv.ParseFloat(currentStr, 64)
		if err != nil || startWeightOverride <= 0 {
			http.Error(w, "invalid current_weight", http.StatusBadRequest)
			return
		}
	}

	goal, err := handler.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get goal for pacing: %s", err)
		http.Error(w, "error, failed to get goal pace", http.StatusInternalServerError)
		return
	}

	pace := Pace(*goal, p, handler.NowFunc(), startWeightOverride)
	paceJson, err := json.Marshal(pace)
	if err != nil {
		log.Errorf("failed to marshal goal pace: %s", err)
		http.Error(w, "error, failed to get goal pace", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, paceJson, http.StatusOK)
}

func (handler *Handler) writeGoal(w http.ResponseWriter, goal *Goal) {
	goalJson, err := json.Marshal(goal)
	if err != nil {
		log.Errorf("failed to marshal goal: %s", err)
		http.Error(w, "error, failed to get goal", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, goalJson, http.StatusOK)
}
