package api

import (
	"encoding/json"
	"net/http"
	"time"

	"longevity/internal/service"
	"longevity/internal/store"
)

var validMealTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
}

var validLabEntryTypes = map[string]bool{
	"lab":         true,
	"measurement": true,
	"strength":    true,
}

func (h *Handler) food(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listFood(w, r)
	case http.MethodPost:
		h.createFood(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) listFood(w http.ResponseWriter, r *http.Request) {
	days := intQueryParam(r, "days", service.DefaultJournalDays)

	entries, err := h.journal.ListFood(time.Now(), days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	views := make([]FoodLogView, 0, len(entries))
	for _, e := range entries {
		views = append(views, toFoodLogView(e))
	}
	writeJSON(w, http.StatusOK, views)
}

// CreateFoodRequest logs one food entry. Macros are all optional so a
// quick entry is just a date, meal type, and name.
type CreateFoodRequest struct {
	Date        string   `json:"date"` // "2006-01-02"
	MealType    string   `json:"meal_type"`
	FoodName    string   `json:"food_name"`
	PortionSize *string  `json:"portion_size"`
	Calories    *int     `json:"calories"`
	ProteinG    *float64 `json:"protein_g"`
	CarbsG      *float64 `json:"carbs_g"`
	FatG        *float64 `json:"fat_g"`
	Notes       *string  `json:"notes"`
}

func (req *CreateFoodRequest) validate() (time.Time, string) {
	if !validMealTypes[req.MealType] {
		return time.Time{}, "meal_type must be breakfast, lunch, dinner, or snack"
	}
	if req.FoodName == "" {
		return time.Time{}, "food_name is required"
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return time.Time{}, "date must be formatted 2006-01-02"
	}
	return date, ""
}

func (h *Handler) createFood(w http.ResponseWriter, r *http.Request) {
	var req CreateFoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	date, problem := req.validate()
	if problem != "" {
		writeError(w, http.StatusBadRequest, "validation_failed", problem)
		return
	}

	entry := store.FoodLog{
		Date:        date,
		MealType:    req.MealType,
		FoodName:    req.FoodName,
		PortionSize: req.PortionSize,
		Calories:    req.Calories,
		ProteinG:    req.ProteinG,
		CarbsG:      req.CarbsG,
		FatG:        req.FatG,
		Notes:       req.Notes,
	}

	id, err := h.journal.AddFoodEntry(entry, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"message": "food entry logged", "id": id})
}

func (h *Handler) water(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listWater(w, r)
	case http.MethodPost:
		h.createWater(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) listWater(w http.ResponseWriter, r *http.Request) {
	days := intQueryParam(r, "days", service.DefaultJournalDays)

	entries, err := h.journal.ListWater(time.Now(), days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	views := make([]WaterLogView, 0, len(entries))
	for _, e := range entries {
		views = append(views, toWaterLogView(e))
	}
	writeJSON(w, http.StatusOK, views)
}

// CreateWaterRequest logs one water intake entry
type CreateWaterRequest struct {
	Date             string  `json:"date"` // "2006-01-02"
	AmountOz         float64 `json:"amount_oz"`
	WithElectrolytes bool    `json:"with_electrolytes"`
}

func (req *CreateWaterRequest) validate() (time.Time, string) {
	if req.AmountOz <= 0 {
		return time.Time{}, "amount_oz must be positive"
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return time.Time{}, "date must be formatted 2006-01-02"
	}
	return date, ""
}

func (h *Handler) createWater(w http.ResponseWriter, r *http.Request) {
	var req CreateWaterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	date, problem := req.validate()
	if problem != "" {
		writeError(w, http.StatusBadRequest, "validation_failed", problem)
		return
	}

	entry := store.WaterLog{
		Date:             date,
		AmountOz:         req.AmountOz,
		WithElectrolytes: req.WithElectrolytes,
	}

	id, err := h.journal.AddWaterEntry(entry, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"message": "water intake logged", "id": id})
}

func (h *Handler) waterToday(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	total, goal, err := h.journal.WaterToday(time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"total_oz": total, "goal_oz": goal})
}

func (h *Handler) labs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listLabs(w, r)
	case http.MethodPost:
		h.createLab(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) listLabs(w http.ResponseWriter, r *http.Request) {
	entries, err := h.journal.ListLabs()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	views := make([]LabEntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, toLabEntryView(e))
	}
	writeJSON(w, http.StatusOK, views)
}

// CreateLabRequest records one lab panel, body measurement, or 1RM
// strength test. Every value column is optional.
type CreateLabRequest struct {
	Date               string   `json:"date"` // "2006-01-02"
	EntryType          string   `json:"entry_type"`
	ApoB               *float64 `json:"apob"`
	HbA1c              *float64 `json:"hba1c"`
	BPSystolic         *int     `json:"bp_systolic"`
	BPDiastolic        *int     `json:"bp_diastolic"`
	VO2Max             *float64 `json:"vo2max"`
	BodyFatPercent     *float64 `json:"body_fat_percent"`
	WaistCircumference *float64 `json:"waist_circumference"`
	BackSquat1RM       *float64 `json:"back_squat_1rm"`
	Deadlift1RM        *float64 `json:"deadlift_1rm"`
	OHP1RM             *float64 `json:"ohp_1rm"`
	Notes              *string  `json:"notes"`
}

func (req *CreateLabRequest) validate() (time.Time, string) {
	if !validLabEntryTypes[req.EntryType] {
		return time.Time{}, "entry_type must be lab, measurement, or strength"
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return time.Time{}, "date must be formatted 2006-01-02"
	}
	return date, ""
}

func (h *Handler) createLab(w http.ResponseWriter, r *http.Request) {
	var req CreateLabRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	date, problem := req.validate()
	if problem != "" {
		writeError(w, http.StatusBadRequest, "validation_failed", problem)
		return
	}

	entry := store.LabEntry{
		Date:               date,
		EntryType:          req.EntryType,
		ApoB:               req.ApoB,
		HbA1c:              req.HbA1c,
		BPSystolic:         req.BPSystolic,
		BPDiastolic:        req.BPDiastolic,
		VO2Max:             req.VO2Max,
		BodyFatPercent:     req.BodyFatPercent,
		WaistCircumference: req.WaistCircumference,
		BackSquat1RM:       req.BackSquat1RM,
		Deadlift1RM:        req.Deadlift1RM,
		OHP1RM:             req.OHP1RM,
		Notes:              req.Notes,
	}

	id, err := h.journal.AddLabEntry(entry)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"message": "lab entry created", "id": id})
}

// FoodLogView is the JSON shape of one food entry
type FoodLogView struct {
	ID          int64    `json:"id"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	MealType    string   `json:"meal_type"`
	FoodName    string   `json:"food_name"`
	PortionSize *string  `json:"portion_size"`
	Calories    *int     `json:"calories"`
	ProteinG    *float64 `json:"protein_g"`
	CarbsG      *float64 `json:"carbs_g"`
	FatG        *float64 `json:"fat_g"`
	Notes       *string  `json:"notes"`
}

func toFoodLogView(f store.FoodLog) FoodLogView {
	return FoodLogView{
		ID:          f.ID,
		Date:        f.Date.Format("2006-01-02"),
		Time:        f.Time.Format(time.RFC3339),
		MealType:    f.MealType,
		FoodName:    f.FoodName,
		PortionSize: f.PortionSize,
		Calories:    f.Calories,
		ProteinG:    f.ProteinG,
		CarbsG:      f.CarbsG,
		FatG:        f.FatG,
		Notes:       f.Notes,
	}
}

// WaterLogView is the JSON shape of one water entry
type WaterLogView struct {
	ID               int64   `json:"id"`
	Date             string  `json:"date"`
	Time             string  `json:"time"`
	AmountOz         float64 `json:"amount_oz"`
	WithElectrolytes bool    `json:"with_electrolytes"`
}

func toWaterLogView(w store.WaterLog) WaterLogView {
	return WaterLogView{
		ID:               w.ID,
		Date:             w.Date.Format("2006-01-02"),
		Time:             w.Time.Format(time.RFC3339),
		AmountOz:         w.AmountOz,
		WithElectrolytes: w.WithElectrolytes,
	}
}

// LabEntryView is the JSON shape of one lab entry
type LabEntryView struct {
	ID                 int64    `json:"id"`
	Date               string   `json:"date"`
	EntryType          string   `json:"entry_type"`
	ApoB               *float64 `json:"apob"`
	HbA1c              *float64 `json:"hba1c"`
	BPSystolic         *int     `json:"bp_systolic"`
	BPDiastolic        *int     `json:"bp_diastolic"`
	VO2Max             *float64 `json:"vo2max"`
	BodyFatPercent     *float64 `json:"body_fat_percent"`
	WaistCircumference *float64 `json:"waist_circumference"`
	BackSquat1RM       *float64 `json:"back_squat_1rm"`
	Deadlift1RM        *float64 `json:"deadlift_1rm"`
	OHP1RM             *float64 `json:"ohp_1rm"`
	Notes              *string  `json:"notes"`
}

func toLabEntryView(l store.LabEntry) LabEntryView {
	return LabEntryView{
		ID:                 l.ID,
		Date:               l.Date.Format("2006-01-02"),
		EntryType:          l.EntryType,
		ApoB:               l.ApoB,
		HbA1c:              l.HbA1c,
		BPSystolic:         l.BPSystolic,
		BPDiastolic:        l.BPDiastolic,
		VO2Max:             l.VO2Max,
		BodyFatPercent:     l.BodyFatPercent,
		WaistCircumference: l.WaistCircumference,
		BackSquat1RM:       l.BackSquat1RM,
		Deadlift1RM:        l.Deadlift1RM,
		OHP1RM:             l.OHP1RM,
		Notes:              l.Notes,
	}
}
