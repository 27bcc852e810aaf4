package service

import (
	"fmt"
	"time"

	"longevity/internal/store"
)

// DefaultJournalDays is the food/water list window when the caller
// doesn't pass one.
const DefaultJournalDays = 7

// DailyWaterGoalOz is the hydration target shown next to today's total
const DailyWaterGoalOz = 140.0

// JournalService handles the manually logged domains: food, water,
// and lab results. These have no sync or recompute behavior; they are
// straight journal entries.
type JournalService struct {
	store *store.DB
}

// NewJournalService creates a journal service
func NewJournalService(db *store.DB) *JournalService {
	return &JournalService{store: db}
}

// AddFoodEntry stores one food entry. The timestamp defaults to now
// when the caller doesn't supply one.
func (j *JournalService) AddFoodEntry(entry store.FoodLog, now time.Time) (int64, error) {
	now = wallClock(now)
	entry.Date = calendarDate(entry.Date)
	if entry.Time.IsZero() {
		entry.Time = now
	}

	id, err := j.store.InsertFoodLog(&entry)
	if err != nil {
		return 0, fmt.Errorf("storing food entry: %w", err)
	}
	return id, nil
}

// ListFood returns food entries from the past N days, newest first
func (j *JournalService) ListFood(now time.Time, days int) ([]store.FoodLog, error) {
	if days <= 0 {
		days = DefaultJournalDays
	}
	start := calendarDate(wallClock(now)).AddDate(0, 0, -days)
	return j.store.ListFoodLogs(start)
}

// AddWaterEntry stores one water intake entry
func (j *JournalService) AddWaterEntry(entry store.WaterLog, now time.Time) (int64, error) {
	now = wallClock(now)
	entry.Date = calendarDate(entry.Date)
	if entry.Time.IsZero() {
		entry.Time = now
	}

	id, err := j.store.InsertWaterLog(&entry)
	if err != nil {
		return 0, fmt.Errorf("storing water entry: %w", err)
	}
	return id, nil
}

// ListWater returns water entries from the past N days, newest first
func (j *JournalService) ListWater(now time.Time, days int) ([]store.WaterLog, error) {
	if days <= 0 {
		days = DefaultJournalDays
	}
	start := calendarDate(wallClock(now)).AddDate(0, 0, -days)
	return j.store.ListWaterLogs(start)
}

// WaterToday reports today's total intake alongside the daily goal
func (j *JournalService) WaterToday(now time.Time) (total, goal float64, err error) {
	total, err = j.store.TotalWaterForDate(calendarDate(wallClock(now)))
	if err != nil {
		return 0, 0, fmt.Errorf("summing water intake: %w", err)
	}
	return total, DailyWaterGoalOz, nil
}

// AddLabEntry stores one lab panel, body measurement, or strength test
func (j *JournalService) AddLabEntry(entry store.LabEntry) (int64, error) {
	entry.Date = calendarDate(entry.Date)

	id, err := j.store.InsertLabEntry(&entry)
	if err != nil {
		return 0, fmt.Errorf("storing lab entry: %w", err)
	}
	return id, nil
}

// ListLabs returns the full lab history, newest first
func (j *JournalService) ListLabs() ([]store.LabEntry, error) {
	return j.store.ListLabEntries()
}
