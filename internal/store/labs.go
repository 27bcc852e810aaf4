package store

import "time"

// InsertLabEntry stores one lab/measurement/strength entry and returns
// its row id
func (db *DB) InsertLabEntry(l *LabEntry) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO monthly_labs (
			date, entry_type, apob, hba1c, bp_systolic, bp_diastolic,
			vo2max, body_fat_percent, waist_circumference,
			back_squat_1rm, deadlift_1rm, ohp_1rm, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		l.Date.Format(dateFormat), l.EntryType, l.ApoB, l.HbA1c,
		l.BPSystolic, l.BPDiastolic, l.VO2Max, l.BodyFatPercent,
		l.WaistCircumference, l.BackSquat1RM, l.Deadlift1RM, l.OHP1RM,
		l.Notes,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListLabEntries returns the full lab history, newest first
func (db *DB) ListLabEntries() ([]LabEntry, error) {
	rows, err := db.Query(`
		SELECT id, date, entry_type, apob, hba1c, bp_systolic, bp_diastolic,
			vo2max, body_fat_percent, waist_circumference,
			back_squat_1rm, deadlift_1rm, ohp_1rm, notes
		FROM monthly_labs
		ORDER BY date DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LabEntry
	for rows.Next() {
		var l LabEntry
		var date string
		err := rows.Scan(
			&l.ID, &date, &l.EntryType, &l.ApoB, &l.HbA1c,
			&l.BPSystolic, &l.BPDiastolic, &l.VO2Max, &l.BodyFatPercent,
			&l.WaistCircumference, &l.BackSquat1RM, &l.Deadlift1RM,
			&l.OHP1RM, &l.Notes,
		)
		if err != nil {
			return nil, err
		}
		if l.Date, err = time.Parse(dateFormat, date); err != nil {
			return nil, err
		}
		entries = append(entries, l)
	}
	return entries, rows.Err()
}
