package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/oauth2"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-co-op/gocron"

	"longevity/internal/analysis"
	"longevity/internal/api"
	"longevity/internal/auth"
	"longevity/internal/config"
	"longevity/internal/garmin"
	"longevity/internal/service"
	"longevity/internal/store"
	"longevity/internal/strava"
	"longevity/internal/tui"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Println("No config file found. Creating example config...")
		if err := config.CreateExample(); err != nil {
			return fmt.Errorf("creating example config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		fmt.Printf("\nPlease edit the config file at:\n  %s/config.json\n\n", configDir)
		fmt.Println("Add a Garmin Connect token, Strava API credentials, or both.")
		fmt.Println("Strava credentials: https://www.strava.com/settings/api")
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s/config.json\n", configDir)
		return nil
	}

	// Open database
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	// Build vendor clients for whatever is configured
	var garminClient *garmin.Client
	if cfg.GarminConfigured() {
		garminClient = garmin.NewClient(cfg.Garmin.Token)
	}

	var stravaClient *strava.Client
	if cfg.StravaConfigured() {
		stravaClient, err = buildStravaClient(ctx, db, cfg)
		if err != nil {
			return fmt.Errorf("strava setup: %w", err)
		}
	}

	thresholds := buildThresholds(cfg.Targets)
	goals := buildGoals(cfg.Targets)

	syncSvc := service.NewSyncService(db, garminClient, stravaClient, thresholds, goals)
	querySvc := service.NewQueryService(db, goals)
	exportSvc := service.NewExportService(db)
	journalSvc := service.NewJournalService(db)

	cmd := "tui"
	args := os.Args[1:]
	if len(args) > 0 {
		cmd = args[0]
		args = args[1:]
	}

	switch cmd {
	case "tui":
		return runTUI(db, syncSvc, querySvc)
	case "sync":
		return runSync(ctx, syncSvc, cfg, args)
	case "serve":
		return runServe(querySvc, syncSvc, journalSvc, exportSvc, cfg)
	case "daemon":
		return runDaemon(ctx, syncSvc, cfg)
	case "export":
		return runExport(exportSvc, args)
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printUsage() {
	fmt.Println(`Usage: longevity [command]

Commands:
  tui      Interactive dashboard (default)
  sync     Run a sync now (-historical for a backfill, -days N)
  serve    Run the REST API server
  daemon   Run scheduled daily syncs in the foreground
  export   Write CSV backups (-dir to override the destination)
  help     Show this message`)
}

func runTUI(db *store.DB, syncSvc *service.SyncService, querySvc *service.QueryService) error {
	app := tui.NewApp(db, syncSvc, querySvc)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

func runSync(ctx context.Context, syncSvc *service.SyncService, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
	historical := fs.Bool("historical", false, "backfill instead of syncing yesterday")
	days := fs.Int("days", cfg.Sync.HistoryDays, "how many days a backfill covers")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		result *service.SyncResult
		err    error
	)
	if *historical {
		fmt.Printf("Backfilling the last %d days...\n", *days)
		result, err = syncSvc.SyncHistorical(ctx, *days, nil)
	} else {
		yesterday := time.Now().AddDate(0, 0, -1)
		fmt.Printf("Syncing %s...\n", yesterday.Format("2006-01-02"))
		result, err = syncSvc.SyncDaily(ctx, yesterday, nil)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Activities stored: %d\n", result.ActivitiesStored)
	fmt.Printf("Metric days stored: %d\n", result.MetricsStored)
	fmt.Printf("Weeks summarized: %d\n", result.WeeksSummarized)
	fmt.Printf("Current streak: %d days\n", result.CurrentStreak)
	for _, syncErr := range result.Errors {
		fmt.Printf("warning: %v\n", syncErr)
	}
	return nil
}

func runServe(querySvc *service.QueryService, syncSvc *service.SyncService, journalSvc *service.JournalService, exportSvc *service.ExportService, cfg *config.Config) error {
	exportDir, err := defaultExportDir()
	if err != nil {
		return err
	}

	handler := api.NewHandler(querySvc, syncSvc, journalSvc, exportSvc, exportDir)
	server := api.NewServer(cfg.API.ListenAddr, handler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func runDaemon(ctx context.Context, syncSvc *service.SyncService, cfg *config.Config) error {
	scheduler := gocron.NewScheduler(time.Local)

	_, err := scheduler.Cron(cfg.Sync.Schedule).Do(func() {
		yesterday := time.Now().AddDate(0, 0, -1)
		log.Printf("scheduled sync for %s", yesterday.Format("2006-01-02"))

		result, err := syncSvc.SyncDaily(ctx, yesterday, nil)
		if err != nil {
			log.Printf("scheduled sync failed: %v", err)
			return
		}
		log.Printf("scheduled sync done: %d activities, %d metric days, streak %d",
			result.ActivitiesStored, result.MetricsStored, result.CurrentStreak)
		for _, syncErr := range result.Errors {
			log.Printf("sync warning: %v", syncErr)
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling sync (%q): %w", cfg.Sync.Schedule, err)
	}

	log.Printf("daemon started, schedule %q", cfg.Sync.Schedule)
	scheduler.StartAsync()

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	log.Println("daemon stopping")
	scheduler.Stop()
	return nil
}

func runExport(exportSvc *service.ExportService, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	dirFlag := fs.String("dir", "", "destination directory for CSV backups")
	if err := fs.Parse(args); err != nil {
		return err
	}

	baseDir := *dirFlag
	if baseDir == "" {
		var err error
		baseDir, err = defaultExportDir()
		if err != nil {
			return err
		}
	}

	result, err := exportSvc.ExportCSV(baseDir, time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Exported to %s\n", result.Dir)
	fmt.Printf("  activities: %d\n", result.Activities)
	fmt.Printf("  daily metrics: %d\n", result.Metrics)
	fmt.Printf("  weekly summaries: %d\n", result.Summaries)
	return nil
}

func defaultExportDir() (string, error) {
	configDir, err := config.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "exports"), nil
}

// buildStravaClient wires stored OAuth credentials into an API client,
// running the interactive flow first if nothing is stored yet.
func buildStravaClient(ctx context.Context, db *store.DB, cfg *config.Config) (*strava.Client, error) {
	oauthCfg := auth.NewOAuthConfig(cfg.Strava)

	storedAuth, err := db.GetAuth()
	if errors.Is(err, store.ErrNoAuth) {
		fmt.Println("No Strava authentication found. Starting OAuth flow...")
		storedAuth, err = authenticate(ctx, db, oauthCfg)
		if err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("checking auth: %w", err)
	}

	tokenSource := newPersistedSource(db, oauthCfg, storedAuth)

	// Prove the stored token still works before handing it out
	if _, err := tokenSource.Token(); err != nil {
		fmt.Println("Stored Strava token is invalid or expired. Re-authenticating...")
		storedAuth, err = authenticate(ctx, db, oauthCfg)
		if err != nil {
			return nil, err
		}
		tokenSource = newPersistedSource(db, oauthCfg, storedAuth)
	}

	return strava.NewClient(tokenSource), nil
}

func newPersistedSource(db *store.DB, oauthCfg *oauth2.Config, storedAuth *store.Auth) *auth.PersistentTokenSource {
	token := &oauth2.Token{
		AccessToken:  storedAuth.AccessToken,
		RefreshToken: storedAuth.RefreshToken,
		Expiry:       storedAuth.ExpiresAt,
	}
	return auth.NewPersistentTokenSource(oauthCfg, token, func(newToken *oauth2.Token) error {
		return db.UpdateTokens(newToken.AccessToken, newToken.RefreshToken, newToken.Expiry)
	})
}

func authenticate(ctx context.Context, db *store.DB, oauthCfg *oauth2.Config) (*store.Auth, error) {
	result, err := auth.Authenticate(ctx, oauthCfg)
	if err != nil {
		return nil, err
	}

	storedAuth := &store.Auth{
		AthleteID:    result.AthleteID,
		AccessToken:  result.Token.AccessToken,
		RefreshToken: result.Token.RefreshToken,
		ExpiresAt:    result.Token.Expiry,
	}

	if err := db.SaveAuth(storedAuth); err != nil {
		return nil, fmt.Errorf("saving auth: %w", err)
	}

	fmt.Println()
	fmt.Printf("Successfully authenticated as athlete %d!\n", result.AthleteID)
	return storedAuth, nil
}

func buildThresholds(t config.TargetsConfig) analysis.Thresholds {
	thresholds := analysis.DefaultThresholds()
	thresholds.Zone2HRMin = t.Zone2HRMin
	thresholds.Zone2HRMax = t.Zone2HRMax
	thresholds.Zone2MinDurationMin = t.Zone2MinDurationMin
	thresholds.VO2MaxHRMin = t.VO2MaxHRMin
	thresholds.VO2MaxMinDurationMin = t.VO2MaxMinDurationMin
	thresholds.VO2MaxMaxDurationMin = t.VO2MaxMaxDurationMin
	return thresholds
}

func buildGoals(t config.TargetsConfig) analysis.Goals {
	return analysis.Goals{
		Zone2Sessions:    t.Zone2SessionsPerWeek,
		StrengthSessions: t.StrengthSessionsPerWeek,
		DailySteps:       t.StepsPerDay,
		MaxGapDays:       t.MaxGapDays,
	}
}
