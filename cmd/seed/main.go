package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/m04kA/wellmio-booking/internal/config"
	optionRepo "github.com/m04kA/wellmio-booking/internal/infra/storage/option"
	timeslotRepo "github.com/m04kA/wellmio-booking/internal/infra/storage/timeslot"
	optionsService "github.com/m04kA/wellmio-booking/internal/service/options"
	timeslotsService "github.com/m04kA/wellmio-booking/internal/service/timeslots"
	"github.com/m04kA/wellmio-booking/pkg/dbmetrics"
	"github.com/m04kA/wellmio-booking/pkg/logger"
	"github.com/m04kA/wellmio-booking/pkg/txmanager"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	days := flag.Int("days", 7, "number of days to create slots for, starting tomorrow")
	flag.Parse()

	_ = godotenv.Load(".env")

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("", cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if *days <= 0 {
		log.Fatal("days must be positive, got %d", *days)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	wrappedDB := dbmetrics.Wrap(db)
	optionSvc := optionsService.NewService(optionRepo.NewRepository(wrappedDB), txmanager.NewTransactionManager(wrappedDB), cfg.Location(), log)
	slotSvc := timeslotsService.NewService(timeslotRepo.NewRepository(wrappedDB), nil, optionSvc, log)

	ctx := context.Background()

	if err := optionSvc.EnsureDefaults(ctx); err != nil {
		log.Fatal("Failed to create default booking options: %v", err)
	}

	minutes, err := optionSvc.DurationMinutes(ctx)
	if err != nil {
		log.Fatal("Failed to read session duration: %v", err)
	}
	loc := optionSvc.Location(ctx)

	schedule := buildSchedule(time.Now(), loc, *days, seedHours, time.Duration(minutes)*time.Minute)
	for _, iv := range schedule {
		if _, err := slotSvc.Create(ctx, iv.start, iv.end); err != nil {
			log.Fatal("Failed to create slot %s: %v", iv.start.Format(time.RFC3339), err)
		}
	}

	log.Info("Seed finished: %d slots over %d days (%s, %d min)", len(schedule), *days, loc, minutes)
}
