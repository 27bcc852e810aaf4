package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Authentication (singleton row)
		`CREATE TABLE IF NOT EXISTS auth (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			athlete_id INTEGER NOT NULL,
			access_token TEXT NOT NULL,
			refresh_token TEXT NOT NULL,
			expires_at INTEGER NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Activities (one row per exercise session, any source)
		`CREATE TABLE IF NOT EXISTS activities (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			activity_id TEXT UNIQUE,
			date TEXT NOT NULL,
			start_time TEXT NOT NULL,
			source TEXT NOT NULL,
			activity_type TEXT NOT NULL,
			zone_classification TEXT,
			duration_minutes REAL NOT NULL,
			distance_km REAL,
			avg_hr REAL,
			max_hr REAL,
			avg_power INTEGER,
			calories INTEGER,
			elevation_gain REAL,
			workout_name TEXT,
			perceived_effort INTEGER,
			notes TEXT,
			hours_since_previous REAL,
			days_since_previous REAL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(date, source, start_time)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_activities_date ON activities(date)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_start_time ON activities(start_time)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_classification ON activities(zone_classification)`,

		// Daily wellness metrics plus the consistency snapshot
		`CREATE TABLE IF NOT EXISTS daily_metrics (
			date TEXT PRIMARY KEY,
			resting_hr INTEGER,
			hrv REAL,
			stress_score INTEGER,
			body_battery INTEGER,
			weight REAL,
			sleep_hours REAL,
			sleep_score INTEGER,
			steps INTEGER,
			floors_climbed INTEGER,
			intensity_minutes INTEGER,
			training_load INTEGER,
			days_since_last_activity REAL,
			current_streak INTEGER DEFAULT 0,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Weekly rollups, keyed by Monday of the week
		`CREATE TABLE IF NOT EXISTS weekly_summaries (
			week_start_date TEXT PRIMARY KEY,
			week_end_date TEXT NOT NULL,
			avg_resting_hr REAL,
			avg_hrv REAL,
			avg_stress_score REAL,
			avg_body_battery REAL,
			avg_weight REAL,
			avg_sleep_hours REAL,
			avg_sleep_score REAL,
			avg_daily_steps REAL,
			zone2_sessions INTEGER DEFAULT 0,
			vo2max_sessions INTEGER DEFAULT 0,
			strength_sessions INTEGER DEFAULT 0,
			total_activities INTEGER DEFAULT 0,
			zone2_avg_hr REAL,
			zone2_total_minutes REAL DEFAULT 0,
			total_training_load INTEGER,
			longest_gap_days REAL,
			activity_streak_end INTEGER DEFAULT 0,
			days_with_activity INTEGER DEFAULT 0,
			missed_activity_days INTEGER DEFAULT 0,
			hit_zone2_target INTEGER DEFAULT 0,
			hit_strength_target INTEGER DEFAULT 0,
			hit_steps_target INTEGER DEFAULT 0,
			no_long_gaps INTEGER DEFAULT 0,
			perfect_week INTEGER DEFAULT 0,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Sync state (key-value store for sync tracking)
		`CREATE TABLE IF NOT EXISTS sync_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Food journal (quick entries, macros optional)
		`CREATE TABLE IF NOT EXISTS food_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date TEXT NOT NULL,
			time TEXT NOT NULL,
			meal_type TEXT NOT NULL,
			food_name TEXT NOT NULL,
			portion_size TEXT,
			calories INTEGER,
			protein_g REAL,
			carbs_g REAL,
			fat_g REAL,
			notes TEXT
		)`,

		`CREATE INDEX IF NOT EXISTS idx_food_log_date ON food_log(date)`,

		// Water intake entries
		`CREATE TABLE IF NOT EXISTS water_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date TEXT NOT NULL,
			time TEXT NOT NULL,
			amount_oz REAL NOT NULL,
			with_electrolytes INTEGER DEFAULT 0
		)`,

		`CREATE INDEX IF NOT EXISTS idx_water_log_date ON water_log(date)`,

		// Lab results, body measurements, and 1RM strength tests
		`CREATE TABLE IF NOT EXISTS monthly_labs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date TEXT NOT NULL,
			entry_type TEXT NOT NULL,
			apob REAL,
			hba1c REAL,
			bp_systolic INTEGER,
			bp_diastolic INTEGER,
			vo2max REAL,
			body_fat_percent REAL,
			waist_circumference REAL,
			back_squat_1rm REAL,
			deadlift_1rm REAL,
			ohp_1rm REAL,
			notes TEXT
		)`,

		`CREATE INDEX IF NOT EXISTS idx_monthly_labs_date ON monthly_labs(date)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
