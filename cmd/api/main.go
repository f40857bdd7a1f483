package main

import (
	"fmt"
	"net/http"

	"github.com/kep-sistemas/kep-backend-go/internal/config"
	appHTTP "github.com/kep-sistemas/kep-backend-go/internal/handler/http"
	"github.com/kep-sistemas/kep-backend-go/internal/pkg/database"
	"github.com/kep-sistemas/kep-backend-go/internal/repository/postgresql"
	employeeService "github.com/kep-sistemas/kep-backend-go/internal/service/employee"
	ingestionService "github.com/kep-sistemas/kep-backend-go/internal/service/ingestion"
	kpiService "github.com/kep-sistemas/kep-backend-go/internal/service/kpi"
	revenueService "github.com/kep-sistemas/kep-backend-go/internal/service/revenue"
	"github.com/kep-sistemas/kep-backend-go/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	if err := database.Migrate(migrations.FS, dsn); err != nil {
		fmt.Println("Error running migrations:", err)
		return
	}

	timeEntryRepo := postgresql.NewTimeEntryRepository(db)
	rosterRepo := postgresql.NewRosterRepository(db)
	revenueRepo := postgresql.NewRevenueRepository(db)
	kpiInputRepo := postgresql.NewKpiInputRepository(db)
	kpiTargetRepo := postgresql.NewKpiTargetRepository(db)

	ingestionSvc := ingestionService.NewIngestionService(timeEntryRepo, nil)
	collector := kpiService.NewCollector(timeEntryRepo, rosterRepo, revenueRepo)
	kpiSvc := kpiService.NewKpiService(db, collector, kpiInputRepo, kpiTargetRepo, cfg.Ingestion.DefaultCostPerHour)
	revenueSvc := revenueService.NewRevenueService(revenueRepo)
	rosterSvc := employeeService.NewRosterService(rosterRepo)

	ingestionHandler := appHTTP.NewIngestionHandler(ingestionSvc, cfg.Ingestion.MaxUploadMB)
	kpiHandler := appHTTP.NewKpiHandler(kpiSvc)
	revenueHandler := appHTTP.NewRevenueHandler(revenueSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(rosterSvc)

	router := appHTTP.NewRouter(ingestionHandler, kpiHandler, revenueHandler, employeeHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
