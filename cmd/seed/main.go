package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ikkim/catalog-backend/config"
	"github.com/ikkim/catalog-backend/internal/db"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const batchSize = 1000

func main() {
	// 명령줄 인자 확인
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// DB 연결
	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	tables, err := db.CatalogTables(db.GetDB())
	if err != nil {
		log.Fatal("Failed to load catalog schema:", err)
	}

	// XLSX 파일 읽기
	fmt.Printf("Reading XLSX file: %s\n", filePath)
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		log.Fatal("Failed to open XLSX file:", err)
	}
	defer f.Close()

	sheets, err := readSheets(f, tables)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	total := 0
	for _, s := range sheets {
		fmt.Printf("  %s: %d rows\n", s.Table, len(s.Rows))
		total += len(s.Rows)
	}
	fmt.Printf("Total rows to import: %d\n", total)

	// 사용자 확인
	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	if err := importSheets(db.GetDB(), sheets); err != nil {
		log.Fatal("Failed to import rows:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total rows imported: %d\n", total)
}

// importSheets inserts every sheet in workbook order inside one transaction,
// so parent tables must come before the tables that reference them.
func importSheets(gdb *gorm.DB, sheets []sheetRows) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		for _, s := range sheets {
			if len(s.Rows) == 0 {
				continue
			}
			if err := tx.Table(s.Table).CreateInBatches(s.Rows, batchSize).Error; err != nil {
				return fmt.Errorf("sheet %s: %w", s.Table, err)
			}
		}
		return nil
	})
}
