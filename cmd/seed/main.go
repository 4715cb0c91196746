package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/marcochiappo/Crimcuts/config"
	"github.com/marcochiappo/Crimcuts/internal/app/repository"
	"github.com/marcochiappo/Crimcuts/internal/app/service"
	"github.com/marcochiappo/Crimcuts/internal/db"
	"github.com/marcochiappo/Crimcuts/internal/importer"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	wb, err := importer.ReadFile(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Shops in workbook: %d, barbers in workbook: %d\n", len(wb.Shops), len(wb.Barbers))

	catalog := service.NewCatalogService(repository.NewCatalogRepository(db.GetDB()))
	res, err := importer.Import(context.Background(), catalog, wb)
	if err != nil {
		log.Fatal("Import failed:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Shops added: %d, barbers added: %d, rows skipped: %d\n", res.ShopsAdded, res.BarbersAdded, res.Skipped)
}
