package misc

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aiotex/weighttracker/internal/period"
	"github.com/aiotex/weighttracker/internal/telemetry/tracing"
	"github.com/aiotex/weighttracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	versionInfo string

	// ability to inject the clock (for unit testing)
	NowFunc func() time.Time
}

func NewHandler(versionInfo string) *Handler {
	return &Handler{
		versionInfo: versionInfo,
		NowFunc:     time.Now,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
	mainRouter.HandleFunc("/periods", handler.handleListPeriods).Methods("GET").Name("periods")
	mainRouter.HandleFunc("/periods/{key}", handler.handleGetPeriod).Methods("GET").Name("period")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}

func (handler *Handler) periodOptions(r *http.Request) (period.Options, error) {
	query := r.URL.Query()

	weekStartsOn := 0
	switch query.Get("week_starts_on") {
	case "", "0":
	case "1":
		weekStartsOn = 1
	default:
		return period.Options{}, period.ErrInvalidPeriod
	}

	today := handler.NowFunc()
	if todayStr := query.Get("today"); todayStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", todayStr, time.UTC)
		if err != nil {
			return period.Options{}, period.ErrInvalidPeriod
		}
		today = parsed
	}

	opts := period.Aligned(today, weekStartsOn)
	if query.Get("align") == "false" {
		opts = period.Rolling(today)
	}
	return opts, nil
}

func (handler *Handler) handleListPeriods(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.misc.periods")
	defer span.End()

	opts, err := handler.periodOptions(r)
	if err != nil {
		http.Error(w, "invalid period options", http.StatusBadRequest)
		return
	}

	periods := make([]period.Period, 0, len(period.Available()))
	for _, key := range period.Available() {
		p, err := period.New(key, opts)
		if err != nil {
			log.Errorf("list periods, resolve %s: %s", key, err)
			http.Error(w, "error, failed to list periods", http.StatusInternalServerError)
			return
		}
		periods = append(periods, p)
	}

	periodsJson, err := json.Marshal(periods)
	if err != nil {
		log.Errorf("failed to marshal periods: %s", err)
		http.Error(w, "error, failed to list periods", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, periodsJson)
}

func (handler *Handler) handleGetPeriod(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.misc.period")
	defer span.End()

	vars := mux.Vars(r)
	key, err := period.ParseKey(vars["key"])
	if err != nil {
		http.Error(w, "invalid period", http.StatusBadRequest)
		return
	}

	opts, err := handler.periodOptions(r)
	if err != nil {
		http.Error(w, "invalid period options", http.StatusBadRequest)
		return
	}

	p, err := period.New(key, opts)
	if err != nil {
		http.Error(w, "invalid period", http.StatusBadRequest)
		return
	}

	periodJson, err := json.Marshal(p)
	if err != nil {
		log.Errorf("failed to marshal period: %s", err)
		http.Error(w, "error, failed to get period", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, periodJson)
}
