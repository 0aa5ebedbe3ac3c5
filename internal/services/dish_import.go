package services

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"rikky/internal/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
)

// Columns of a dish import sheet, after one header row:
//
//	categoryId | name | price | code | description | status | sort | flavors
//
// flavors is written as "spice:mild,hot;temperature:cold,warm".
const (
	colCategoryID = iota
	colName
	colPrice
	colCode
	colDescription
	colStatus
	colSort
	colFlavors
)

type importRow struct {
	line int
	dto  models.DishDto
}

// parseDishSheet reads the dishes of the first sheet of an xlsx workbook.
// Blank rows are skipped; a malformed cell fails the whole sheet.
func parseDishSheet(r io.Reader) ([]importRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, NewDomainError(KindValidation, "failed to parse Excel file: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, NewDomainError(KindValidation, "Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	var out []importRow
	for i, row := range rows {
		if i == 0 || blankRow(row) {
			continue
		}
		line := i + 1
		dto, err := parseDishRow(row)
		if err != nil {
			return nil, NewDomainError(KindValidation, "row %d: %v", line, err)
		}
		out = append(out, importRow{line: line, dto: dto})
	}
	if len(out) == 0 {
		return nil, NewDomainError(KindValidation, "Excel must have at least one row of data")
	}
	return out, nil
}

func parseDishRow(row []string) (models.DishDto, error) {
	var dto models.DishDto

	categoryID, err := strconv.ParseUint(cell(row, colCategoryID), 10, 32)
	if err != nil {
		return dto, fmt.Errorf("invalid category ID %q", cell(row, colCategoryID))
	}
	price, err := decimal.NewFromString(cell(row, colPrice))
	if err != nil {
		return dto, fmt.Errorf("invalid price %q", cell(row, colPrice))
	}
	status := models.StatusEnabled
	if v := cell(row, colStatus); v != "" {
		if status, err = strconv.Atoi(v); err != nil {
			return dto, fmt.Errorf("invalid status %q", v)
		}
	}
	sort := 0
	if v := cell(row, colSort); v != "" {
		if sort, err = strconv.Atoi(v); err != nil {
			return dto, fmt.Errorf("invalid sort %q", v)
		}
	}
	flavors, err := parseFlavors(cell(row, colFlavors))
	if err != nil {
		return dto, err
	}

	dto.Dish = models.Dish{
		Name:        cell(row, colName),
		CategoryID:  uint(categoryID),
		Price:       price.Round(2),
		Code:        cell(row, colCode),
		Description: cell(row, colDescription),
		Status:      status,
		Sort:        sort,
	}
	dto.Flavors = flavors
	return dto, nil
}

func parseFlavors(s string) ([]models.DishFlavor, error) {
	flavors := []models.DishFlavor{}
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, values, ok := strings.Cut(part, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid flavor %q", part)
		}
		var value datatypes.JSONSlice[string]
		for _, v := range strings.Split(values, ",") {
			if v = strings.TrimSpace(v); v != "" {
				value = append(value, v)
			}
		}
		flavors = append(flavors, models.DishFlavor{Name: strings.TrimSpace(name), Value: value})
	}
	return flavors, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
