// Package importer loads shops and barbers from an xlsx workbook.
//
// The workbook has a "shops" sheet with the columns
// name, address, latitude, longitude, website, description
// and an optional "barbers" sheet with the columns name, shop name.
// The first row of each sheet is a header.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/marcochiappo/Crimcuts/internal/app/service"
	"github.com/marcochiappo/Crimcuts/pkg/logger"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	ShopsSheet   = "shops"
	BarbersSheet = "barbers"
)

type ShopRow struct {
	Row         int
	Name        string
	Address     string
	Latitude    string
	Longitude   string
	Website     string
	Description string
}

type BarberRow struct {
	Row      int
	Name     string
	ShopName string
}

type Workbook struct {
	Shops   []ShopRow
	Barbers []BarberRow
}

// Result counts what an import did.
type Result struct {
	ShopsAdded   int
	BarbersAdded int
	Skipped      int
}

// ReadFile parses the workbook at path.
func ReadFile(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	shopRows, err := sheetRows(f, ShopsSheet, true)
	if err != nil {
		return nil, err
	}
	barberRows, err := sheetRows(f, BarbersSheet, false)
	if err != nil {
		return nil, err
	}

	wb := &Workbook{}
	for i, row := range shopRows {
		if i == 0 || isBlank(row) {
			continue
		}
		wb.Shops = append(wb.Shops, ShopRow{
			Row:         i + 1,
			Name:        cell(row, 0),
			Address:     cell(row, 1),
			Latitude:    cell(row, 2),
			Longitude:   cell(row, 3),
			Website:     cell(row, 4),
			Description: cell(row, 5),
		})
	}
	for i, row := range barberRows {
		if i == 0 || isBlank(row) {
			continue
		}
		wb.Barbers = append(wb.Barbers, BarberRow{
			Row:      i + 1,
			Name:     cell(row, 0),
			ShopName: cell(row, 1),
		})
	}
	return wb, nil
}

func sheetRows(f *excelize.File, sheet string, required bool) ([][]string, error) {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to look up sheet %q: %w", sheet, err)
	}
	if idx < 0 {
		if required {
			return nil, fmt.Errorf("sheet %q not found", sheet)
		}
		return nil, nil
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %q: %w", sheet, err)
	}
	return rows, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Import adds the workbook contents through the catalog service. Shops and
// barbers that already exist by name are skipped, as are rows that fail
// validation. Storage errors abort the import.
func Import(ctx context.Context, catalog service.CatalogService, wb *Workbook) (Result, error) {
	var res Result

	for _, row := range wb.Shops {
		if _, err := catalog.FindShopByName(ctx, row.Name); err == nil {
			res.Skipped++
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return res, fmt.Errorf("row %d of %s: %w", row.Row, ShopsSheet, err)
		}

		_, err := catalog.AddShop(ctx, service.ShopInput{
			Name:        row.Name,
			Location:    row.Address,
			Latitude:    row.Latitude,
			Longitude:   row.Longitude,
			Website:     row.Website,
			Description: row.Description,
		})
		if err != nil {
			if skip(err, ShopsSheet, row.Row) {
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("row %d of %s: %w", row.Row, ShopsSheet, err)
		}
		res.ShopsAdded++
	}

	for _, row := range wb.Barbers {
		if _, err := catalog.FindBarberByName(ctx, row.Name); err == nil {
			res.Skipped++
			continue
		} else if !errors.Is(err, service.ErrBarberNotFound) {
			return res, fmt.Errorf("row %d of %s: %w", row.Row, BarbersSheet, err)
		}

		shop, err := catalog.FindShopByName(ctx, row.ShopName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Skipping barber with unknown shop", logger.Fields{
					"row":  row.Row,
					"shop": row.ShopName,
				})
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("row %d of %s: %w", row.Row, BarbersSheet, err)
		}

		if _, err := catalog.AddBarber(ctx, row.Name, strconv.FormatUint(uint64(shop.ID), 10)); err != nil {
			if skip(err, BarbersSheet, row.Row) {
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("row %d of %s: %w", row.Row, BarbersSheet, err)
		}
		res.BarbersAdded++
	}

	logger.Info("Catalog import finished", logger.Fields{
		"shops_added":   res.ShopsAdded,
		"barbers_added": res.BarbersAdded,
		"skipped":       res.Skipped,
	})
	return res, nil
}

// skip reports whether err is a row-level validation failure.
func skip(err error, sheet string, row int) bool {
	msg, ok := service.UserMessage(err)
	if !ok {
		return false
	}
	logger.Warn("Skipping invalid row", logger.Fields{
		"sheet":  sheet,
		"row":    row,
		"reason": msg,
	})
	return true
}
