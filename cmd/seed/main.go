package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/haungo2109/be-thamhienmauto/config"
	"github.com/haungo2109/be-thamhienmauto/internal/app/model"
	"github.com/haungo2109/be-thamhienmauto/internal/db"
	"github.com/haungo2109/be-thamhienmauto/pkg/util"
	"github.com/xuri/excelize/v2"
)

// Imports the product catalog from an XLSX export.
// Expected columns: name, sku, price, sale_price, stock_quantity, description, image_url
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
	products, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	if err := db.GetDB().CreateInBatches(products, batchSize).Error; err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data rows found")
	}

	var products []model.Product
	for i, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(cell(row, 0)) == "" {
			continue
		}

		name := strings.TrimSpace(cell(row, 0))
		price := parsePrice(cell(row, 2))
		salePrice := parsePrice(cell(row, 3))
		if salePrice == 0 {
			salePrice = price
		}
		stock, _ := strconv.Atoi(strings.TrimSpace(cell(row, 4)))

		stockStatus := model.StockInStock
		if stock <= 0 {
			stockStatus = model.StockOutOfStock
		}

		products = append(products, model.Product{
			Name:          name,
			Slug:          fmt.Sprintf("%s-%d", util.Slugify(name), i+1),
			SKU:           strings.TrimSpace(cell(row, 1)),
			Price:         price,
			SalePrice:     salePrice,
			StockQuantity: stock,
			StockStatus:   stockStatus,
			Description:   strings.TrimSpace(cell(row, 5)),
			ImageURL:      strings.TrimSpace(cell(row, 6)),
		})
	}

	return products, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parsePrice tolerates thousand separators and currency suffixes.
func parsePrice(s string) float64 {
	cleaned := strings.NewReplacer(",", "", ".", "", " ", "", "₫", "", "đ", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}
