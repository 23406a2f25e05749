package weights

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/aiotex/weighttracker/internal/auth"
	"github.com/aiotex/weighttracker/internal/period"
	"github.com/aiotex/weighttracker/internal/telemetry/metrics"
	"github.com/aiotex/weighttracker/internal/telemetry/tracing"
	"github.com/aiotex/weighttracker/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=weights_mocks_test.go -package=weights_test

type samplesRepo interface {
	Upsert(ctx context.Context, sample Sample) (*Sample, error)
	GetByDay(ctx context.Context, userID int, day time.Time) (*Sample, error)
	DeleteByDay(ctx context.Context, userID int, day time.Time) error
	Latest(ctx context.Context, userID int) (*Sample, error)
	Earliest(ctx context.Context, userID int) (*Sample, error)
	ListRange(ctx context.Context, params ListRangeParams) ([]Sample, error)
}

type ListResponse struct {
	Samples []Sample `json:"samples"`
	Total   int      `json:"total"`
}

type DeleteResponse struct {
	DeletedDate string `json:"deletedDate"`
}

type GraphResponse struct {
	Period period.Period `json:"period"`
	Points []Point       `json:"points"`
}

type Handler struct {
	repo     samplesRepo
	analyzer *Analyzer
	metrics  *metrics.Manager

	// ability to inject the clock (for unit testing)
	NowFunc func() time.Time
}

func NewHandler(repo samplesRepo, analyzer *Analyzer, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:     repo,
		analyzer: analyzer,
		metrics:  metrics,
		NowFunc:  time.Now,
	}
}

func (handler *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weights.upsert")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var sample Sample
	if err := json.NewDecoder(r.Body).Decode(&sample); err != nil {
		log.Tracef("log weight, unmarshal json params: %s", err)
		http.Error(w, "log weight failed", http.StatusBadRequest)
		return
	}
	sample.UserID = userID

	if err := sample.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := handler.repo.Upsert(ctx, sample)
	if err != nil {
		log.Errorf("failed to log weight for day [%s]: %s", sample.Day.Format(DayFormat), err)
		http.Error(w, "error, failed to log weight", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterWeightSamples.Inc()

	savedJson, err := json.Marshal(saved)
	if err != nil {
		log.Errorf("failed to marshal logged weight: %s", err)
		http.Error(w, "error, failed to log weight", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, savedJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weights.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	params := ListRangeParams{UserID: userID}
	if fromStr := r.URL.Query().Get("start_date"); fromStr != "" {
		from, err := ParseDay(fromStr)
		if err != nil {
			http.Error(w, "invalid start_date", http.StatusBadRequest)
			return
		}
		params.From = &from
	}
	if toStr := r.URL.Query().Get("end_date"); toStr != "" {
		to, err := ParseDay(toStr)
		if err != nil {
			http.Error(w, "invalid end_date", http.StatusBadRequest)
			return
		}
		params.To = &to
	}

	samples, err := handler.repo.ListRange(ctx, params)
	if err != nil {
		log.Errorf("failed to list weight samples: %s", err)
		http.Error(w, "error, failed to list weights", http.StatusInternalServerError)
		return
	}

	listJson, err := json.Marshal(ListResponse{Samples: samples, Total: len(samples)})
	if err != nil {
		log.Errorf("failed to marshal weight samples: %s", err)
		http.Error(w, "error, failed to list weights", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listJson, http.StatusOK)
}

func (handler *Handler) HandleGetByDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weights.getbyday")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	day, err := ParseDay(mux.Vars(r)["date"])
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	sample, err := handler.repo.GetByDay(ctx, userID, day)
	if err != nil {
		if errors.Is(err, ErrSampleNotFound) {
			http.Error(w, "weight not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get weight for [%s]: %s", day.Format(DayFormat), err)
		http.Error(w, "error, failed to get weight", http.StatusInternalServerError)
		return
	}

	handler.writeSample(w, sample)
}

func (handler *Handler) HandleDeleteByDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weights.deletebyday")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	day, err := ParseDay(mux.Vars(r)["date"])
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	if err := handler.repo.DeleteByDay(ctx, userID, day); err != nil {
		if errors.Is(err, ErrSampleNotFound) {
			http.Error(w, "weight not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete weight for [%s]: %s", day.Format(DayFormat), err)
		http.Error(w, "error, failed to delete weight", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteResponse{DeletedDate: day.Format(DayFormat)})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "error, failed to delete weight", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weights.latest")
	defer span.End()

	handler.handleEdgeSample(ctx, w, handler.repo.Latest)
}

func (handler *Handler) HandleEarliest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weights.earliest")
	defer span.End()

	handler.handleEdgeSample(ctx, w, handler.repo.Earliest)
}

func (handler *Handler) handleEdgeSample(
	ctx context.Context,
	w http.ResponseWriter,
	get func(ctx context.Context, userID int) (*Sample, error),
) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	sample, err := get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrSampleNotFound) {
			http.Error(w, "no weights logged", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get edge weight sample: %s", err)
		http.Error(w, "error, failed to get weight", http.StatusInternalServerError)
		return
	}

	handler.writeSample(w, sample)
}

func (handler *Handler) HandleAverages(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weights.averages")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	group, err := ParseGranularity(mux.Vars(r)["group"])
	if err != nil {
		http.Error(w, "invalid group", http.StatusBadRequest)
		return
	}

	weekStartsOn, err := weekStartsOnParam(r)
	if err != nil {
		http.Error(w, "invalid week_starts_on", http.StatusBadRequest)
		return
	}

	params := AveragesParams{
		UserID:       userID,
		Group:        group,
		WeekStartsOn: weekStartsOn,
	}
	if fromStr := r.URL.Query().Get("start_date"); fromStr != "" {
		from, err := ParseDay(fromStr)
		if err != nil {
			http.Error(w, "invalid start_date", http.StatusBadRequest)
			return
		}
		params.From = &from
	}
	if toStr := r.URL.Query().Get("end_date"); toStr != "" {
		to, err := ParseDay(toStr)
		if err != nil {
			http.Error(w, "invalid end_date", http.StatusBadRequest)
			return
		}
		params.To = &to
	}

	buckets, err := handler.analyzer.Averages(ctx, params)
	if err != nil {
		log.Errorf("failed to get [%s] weight averages: %s", group, err)
		http.Error(w, "error, failed to get averages", http.StatusInternalServerError)
		return
	}

	bucketsJson, err := json.Marshal(buckets)
	if err != nil {
		log.Errorf("failed to marshal weight averages: %s", err)
		http.Error(w, "error, failed to get averages", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, bucketsJson, http.StatusOK)
}

// HandleGraph resolves the requested period, loads the samples in it,
// optionally averages them, and projects everything to chart points.
func (handler *Handler) HandleGraph(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weights.graph")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()

	keyStr := query.Get("period")
	if keyStr == "" {
		keyStr = string(period.KeyMonth)
	}
	key, err := period.ParseKey(keyStr)
	if err != nil {
		http.Error(w, "invalid period", http.StatusBadRequest)
		return
	}

	weekStartsOn, err := weekStartsOnParam(r)
	if err != nil {
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

	if p.Unbounded() {
		earliest, err := handler.repo.Earliest(ctx, userID)
		if errors.Is(err, ErrSampleNotFound) {
			// nothing logged yet, nothing to chart
			handler.writeGraph(w, GraphResponse{Period: p, Points: []Point{}})
			return
		}
		if err != nil {
			log.Errorf("failed to resolve all-time period: %s", err)
			http.Error(w, "error, failed to get graph data", http.StatusInternalServerError)
			return
		}
		p = p.Resolved(earliest.Day, handler.NowFunc())
	}

	from, to := p.Range.StartDay(), p.Range.EndDay()

	var points []Point
	if averageStr := query.Get("average"); averageStr != "" && averageStr != "none" {
		group, err := ParseGranularity(averageStr)
		if err != nil {
			http.Error(w, "invalid average", http.StatusBadRequest)
			return
		}
		buckets, err := handler.analyzer.Averages(ctx, AveragesParams{
			UserID:       userID,
			Group:        group,
			From:         &from,
			To:           &to,
			WeekStartsOn: weekStartsOn,
		})
		if err != nil {
			log.Errorf("failed to get graph averages: %s", err)
			http.Error(w, "error, failed to get graph data", http.StatusInternalServerError)
			return
		}
		points, err = ProjectBuckets(buckets, weekStartsOn)
		if err != nil {
			log.Errorf("failed to project graph buckets: %s", err)
			http.Error(w, "error, failed to get graph data", http.StatusInternalServerError)
			return
		}
	} else {
		samples, err := handler.repo.ListRange(ctx, ListRangeParams{
			UserID: userID,
			From:   &from,
			To:     &to,
		})
		if err != nil {
			log.Errorf("failed to list graph samples: %s", err)
			http.Error(w, "error, failed to get graph data", http.StatusInternalServerError)
			return
		}
		points = ProjectSamples(samples)
	}

	handler.writeGraph(w, GraphResponse{Period: p, Points: points})
}

func (handler *Handler) writeGraph(w http.ResponseWriter, resp GraphResponse) {
	graphJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal graph response: %s", err)
		http.Error(w, "error, failed to get graph data", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, graphJson, http.StatusOK)
}

func (handler *Handler) writeSample(w http.ResponseWriter, sample *Sample) {
	sampleJson, err := json.Marshal(sample)
	if err != nil {
		log.Errorf("failed to marshal weight sample: %s", err)
		http.Error(w, "error, failed to get weight", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sampleJson, http.StatusOK)
}

// weekStartsOnParam reads the week_starts_on query param. Only Sunday (0)
// and Monday (1) are accepted; the application default is Sunday.
func weekStartsOnParam(r *http.Request) (int, error) {
	switch r.URL.Query().Get("week_starts_on") {
	case "", "0":
		return 0, nil
	case "1":
		return 1, nil
	default:
		return 0, errors.New("week_starts_on must be 0 or 1")
	}
}
