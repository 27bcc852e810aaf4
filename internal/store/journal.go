package store

import "time"

// InsertFoodLog stores one food entry and returns its row id
func (db *DB) InsertFoodLog(f *FoodLog) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO food_log (
			date, time, meal_type, food_name, portion_size,
			calories, protein_g, carbs_g, fat_g, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		f.Date.Format(dateFormat), f.Time.Format(time.RFC3339), f.MealType,
		f.FoodName, f.PortionSize, f.Calories, f.ProteinG, f.CarbsG, f.FatG,
		f.Notes,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListFoodLogs returns entries with date >= start, newest entry first
func (db *DB) ListFoodLogs(start time.Time) ([]FoodLog, error) {
	rows, err := db.Query(`
		SELECT id, date, time, meal_type, food_name, portion_size,
			calories, protein_g, carbs_g, fat_g, notes
		FROM food_log
		WHERE date >= ?
		ORDER BY time DESC, id DESC
	`, start.Format(dateFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []FoodLog
	for rows.Next() {
		var f FoodLog
		var date, timestamp string
		err := rows.Scan(
			&f.ID, &date, &timestamp, &f.MealType, &f.FoodName, &f.PortionSize,
			&f.Calories, &f.ProteinG, &f.CarbsG, &f.FatG, &f.Notes,
		)
		if err != nil {
			return nil, err
		}
		if f.Date, err = time.Parse(dateFormat, date); err != nil {
			return nil, err
		}
		if f.Time, err = time.Parse(time.RFC3339, timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, f)
	}
	return entries, rows.Err()
}

// InsertWaterLog stores one water intake entry and returns its row id
func (db *DB) InsertWaterLog(w *WaterLog) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO water_log (date, time, amount_oz, with_electrolytes)
		VALUES (?, ?, ?, ?)
	`,
		w.Date.Format(dateFormat), w.Time.Format(time.RFC3339),
		w.AmountOz, boolToInt(w.WithElectrolytes),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListWaterLogs returns entries with date >= start, newest entry first
func (db *DB) ListWaterLogs(start time.Time) ([]WaterLog, error) {
	rows, err := db.Query(`
		SELECT id, date, time, amount_oz, with_electrolytes
		FROM water_log
		WHERE date >= ?
		ORDER BY time DESC, id DESC
	`, start.Format(dateFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []WaterLog
	for rows.Next() {
		var w WaterLog
		var date, timestamp string
		var electrolytes int
		if err := rows.Scan(&w.ID, &date, &timestamp, &w.AmountOz, &electrolytes); err != nil {
			return nil, err
		}
		var err error
		if w.Date, err = time.Parse(dateFormat, date); err != nil {
			return nil, err
		}
		if w.Time, err = time.Parse(time.RFC3339, timestamp); err != nil {
			return nil, err
		}
		w.WithElectrolytes = electrolytes != 0
		entries = append(entries, w)
	}
	return entries, rows.Err()
}

// TotalWaterForDate sums the intake logged on one calendar day
func (db *DB) TotalWaterForDate(date time.Time) (float64, error) {
	var total float64
	err := db.QueryRow(`
		SELECT COALESCE(SUM(amount_oz), 0) FROM water_log WHERE date = ?
	`, date.Format(dateFormat)).Scan(&total)
	return total, err
}
