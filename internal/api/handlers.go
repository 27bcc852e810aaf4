// Package api exposes the REST interface over the tracking data.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"longevity/internal/service"
	"longevity/internal/store"
)

// Handler coordinates HTTP requests with the service layer
type Handler struct {
	query   *service.QueryService
	sync    *service.SyncService
	journal *service.JournalService
	export  *service.ExportService

	// exportDir is where CSV backups land
	exportDir string
}

// NewHandler builds a Handler
func NewHandler(query *service.QueryService, sync *service.SyncService, journal *service.JournalService, export *service.ExportService, exportDir string) *Handler {
	return &Handler{
		query:     query,
		sync:      sync,
		journal:   journal,
		export:    export,
		exportDir: exportDir,
	}
}

// RegisterRoutes wires endpoints to the mux
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/status", h.status)
	mux.HandleFunc("/activities", h.activities)
	mux.HandleFunc("/daily-metrics", h.dailyMetrics)
	mux.HandleFunc("/weekly-summaries", h.weeklySummaries)
	mux.HandleFunc("/calendar", h.calendar)
	mux.HandleFunc("/food", h.food)
	mux.HandleFunc("/water", h.water)
	mux.HandleFunc("/water/today", h.waterToday)
	mux.HandleFunc("/labs", h.labs)
	mux.HandleFunc("/sync/daily", h.syncDaily)
	mux.HandleFunc("/sync/historical", h.syncHistorical)
	mux.HandleFunc("/export/csv", h.exportCSV)
	mux.HandleFunc("/healthz", healthz)
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// StatusResponse is the at-a-glance consistency payload
type StatusResponse struct {
	DaysSinceLastActivity float64 `json:"days_since_last_activity"`
	CurrentStreak         int     `json:"current_streak"`
	AlertLevel            string  `json:"alert_level"`
	LastActivityDate      *string `json:"last_activity_date"`
	LastActivityType      *string `json:"last_activity_type"`
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	report, err := h.query.GetStatus(time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	resp := StatusResponse{
		DaysSinceLastActivity: report.DaysSinceLastActivity,
		CurrentStreak:         report.CurrentStreak,
		AlertLevel:            report.AlertLevel,
	}
	if report.LastActivityDate != nil {
		date := report.LastActivityDate.Format("2006-01-02")
		resp.LastActivityDate = &date
		resp.LastActivityType = &report.LastActivityType
	}

	recordStatusCheck(report.AlertLevel)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) activities(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listActivities(w, r)
	case http.MethodPost:
		h.createActivity(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	limit := intQueryParam(r, "limit", service.RecentActivitiesLimit)
	offset := intQueryParam(r, "offset", 0)

	activities, err := h.query.ListRecentActivities(limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	views := make([]ActivityView, 0, len(activities))
	for _, a := range activities {
		views = append(views, toActivityView(a))
	}
	writeJSON(w, http.StatusOK, views)
}

// CreateActivityRequest is a manually logged session. Date is required;
// start time defaults to midnight of that date.
type CreateActivityRequest struct {
	Date            string   `json:"date"` // "2006-01-02"
	Source          string   `json:"source"`
	ActivityType    string   `json:"activity_type"`
	DurationMinutes float64  `json:"duration_minutes"`
	WorkoutName     *string  `json:"workout_name"`
	PerceivedEffort *int     `json:"perceived_effort"`
	AvgHR           *float64 `json:"avg_hr"`
	Notes           *string  `json:"notes"`
}

func (req *CreateActivityRequest) validate() (time.Time, string) {
	if req.Source == "" {
		return time.Time{}, "source is required"
	}
	if req.ActivityType == "" {
		return time.Time{}, "activity_type is required"
	}
	if req.DurationMinutes <= 0 {
		return time.Time{}, "duration_minutes must be positive"
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return time.Time{}, "date must be formatted 2006-01-02"
	}
	return date, ""
}

func (h *Handler) createActivity(w http.ResponseWriter, r *http.Request) {
	var req CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	date, problem := req.validate()
	if problem != "" {
		writeError(w, http.StatusBadRequest, "validation_failed", problem)
		return
	}

	activity := store.Activity{
		Date:            date,
		Source:          req.Source,
		ActivityType:    req.ActivityType,
		DurationMinutes: req.DurationMinutes,
		WorkoutName:     req.WorkoutName,
		PerceivedEffort: req.PerceivedEffort,
		AvgHR:           req.AvgHR,
		Notes:           req.Notes,
	}

	id, err := h.sync.AddManualActivity(activity, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	recordManualActivity(req.Source)
	writeJSON(w, http.StatusCreated, map[string]any{"message": "activity created", "id": id})
}

func (h *Handler) dailyMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	days := intQueryParam(r, "days", service.DailyMetricsDays)
	metrics, err := h.query.ListDailyMetrics(time.Now(), days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	views := make([]DailyMetricView, 0, len(metrics))
	for _, m := range metrics {
		views = append(views, toDailyMetricView(m))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) weeklySummaries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	weeks := intQueryParam(r, "weeks", service.WeeklySummariesLimit)
	summaries, err := h.query.ListWeeklySummaries(weeks)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	views := make([]WeeklySummaryView, 0, len(summaries))
	for _, s := range summaries {
		views = append(views, toWeeklySummaryView(s))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) calendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	year := intQueryParam(r, "year", 0)
	month := intQueryParam(r, "month", 0)
	if year < 2000 || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "validation_failed", "year and month query parameters are required")
		return
	}

	calendar, err := h.query.GetCalendar(year, time.Month(month))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, calendar)
}

func (h *Handler) syncDaily(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	// Default to yesterday; devices finish uploading overnight
	yesterday := time.Now().AddDate(0, 0, -1)
	result, err := h.sync.SyncDaily(r.Context(), yesterday, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sync_failed", err.Error())
		return
	}

	recordSync("daily")
	writeJSON(w, http.StatusOK, map[string]any{
		"message":           "daily sync complete",
		"activities_stored": result.ActivitiesStored,
		"metrics_stored":    result.MetricsStored,
	})
}

func (h *Handler) syncHistorical(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	days := intQueryParam(r, "days", service.DefaultHistoryDays)
	result, err := h.sync.SyncHistorical(r.Context(), days, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sync_failed", err.Error())
		return
	}

	recordSync("historical")
	writeJSON(w, http.StatusOK, map[string]any{
		"message":           "historical sync complete",
		"days":              days,
		"activities_stored": result.ActivitiesStored,
		"metrics_stored":    result.MetricsStored,
		"weeks_summarized":  result.WeeksSummarized,
	})
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	result, err := h.export.ExportCSV(h.exportDir, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "export_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "CSV export complete",
		"export_dir": result.Dir,
		"activities": result.Activities,
		"metrics":    result.Metrics,
		"summaries":  result.Summaries,
	})
}

func intQueryParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
