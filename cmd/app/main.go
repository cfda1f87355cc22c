package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"orders/cmd"
	httpin "orders/internal/adapters/in/http"
	"orders/internal/adapters/out/postgres/accountrepo"
	"orders/internal/adapters/out/postgres/catalogrepo"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)

	app := cmd.NewCompositionRoot(configs, gormDB)

	if configs.SeedDemoData {
		seedDemoData(&app)
	}

	jobManager := startJobs(&app, configs)
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:      goDotEnvVariable("HTTP_PORT"),
		DBHost:        goDotEnvVariable("DB_HOST"),
		DBPort:        goDotEnvVariable("DB_PORT"),
		DBUser:        goDotEnvVariable("DB_USER"),
		DBPassword:    goDotEnvVariable("DB_PASSWORD"),
		DBName:        goDotEnvVariable("DB_NAME"),
		DBSslMode:     goDotEnvVariable("DB_SSLMODE"),
		StaleOrderTTL: durationEnvVariable("STALE_ORDER_TTL", 30*time.Minute),
		SeedDemoData:  goDotEnvVariable("SEED_DEMO_DATA") == "true",
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func durationEnvVariable(key string, fallback time.Duration) time.Duration {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid duration in %s: %s", key, raw)
	}
	return d
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&accountrepo.AccountDTO{},
		&catalogrepo.ProductDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

// seedDemoData inserts a demo account and a couple of catalog products so a
// fresh local environment can place orders immediately. Errors are logged and
// ignored; re-running against an already seeded database is expected.
func seedDemoData(app *cmd.CompositionRoot) {
	ctx := context.Background()
	logger := slog.Default()

	accounts := app.CreateAccountDirectory()
	catalog := app.CreateProductCatalog()

	if err := accounts.Add(ctx, kernel.NewUUID(), "Demo Account"); err != nil {
		logger.WarnContext(ctx, "Demo account seeding skipped", "error", err)
	}

	products := []struct {
		name  string
		price string
	}{
		{"Margherita Pizza", "9.50"},
		{"Pepperoni Pizza", "11.00"},
		{"Sparkling Water", "1.75"},
	}
	for _, p := range products {
		price, err := kernel.NewMoneyFromString(p.price)
		if err != nil {
			logger.WarnContext(ctx, "Demo product seeding skipped", "product", p.name, "error", err)
			continue
		}
		if err := catalog.Add(ctx, kernel.NewUUID(), p.name, price); err != nil {
			logger.WarnContext(ctx, "Demo product seeding skipped", "product", p.name, "error", err)
		}
	}
}

func startJobs(app *cmd.CompositionRoot, configs cmd.Config) *jobs.JobManager {
	jobManager := jobs.NewJobManager(
		app.CreateCancelStaleOrdersCommandHandler(),
		configs.StaleOrderTTL,
		slog.Default(),
	)

	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}

	return jobManager
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpin.NewServer(
		app.CreatePlaceOrderCommandHandler(),
		app.CreateAdvanceOrderStatusCommandHandler(),
		app.CreateGetOwnerOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
