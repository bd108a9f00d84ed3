package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"Pavex/internal/calc/pavement"
)

var (
	ErrInvalidFile = errors.New("importer: not a readable .xlsx workbook")
	ErrEmptySheet  = errors.New("importer: sheet has no material rows")
)

// Header is the first row of a material sheet. Columns are read by position.
var Header = []string{
	"Material Name",
	"Structural Number",
	"Minimum Lift (in.)",
	"Maximum Lift (in.)",
	"Density (lb/ft^3)",
	"Unit Cost ($/u)",
	"Unit",
	"Surface",
	"Subgrade Treatment",
	"Alkaline",
}

// RowError describes a sheet row that was skipped.
type RowError struct {
	Row    int    `json:"row"` // 1-based, as shown in a spreadsheet
	Reason string `json:"reason"`
}

// Sheet is the result of reading a material workbook.
type Sheet struct {
	Name      string              `json:"sheet"`
	Materials []pavement.Material `json:"materials"`
	Skipped   []RowError          `json:"skipped,omitempty"`
}

// Parse reads the first worksheet of an .xlsx workbook. Blank rows are
// ignored; rows that cannot be parsed are reported in Skipped.
func Parse(r io.Reader) (Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Sheet{}, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	defer f.Close()
	return parse(f)
}

// ReadFile is Parse for a workbook on disk.
func ReadFile(path string) (Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Sheet{}, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	defer f.Close()
	return parse(f)
}

func parse(f *excelize.File) (Sheet, error) {
	name := f.GetSheetName(0)
	rows, err := f.GetRows(name)
	if err != nil {
		return Sheet{}, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	out := Sheet{Name: name}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		m, err := parseRow(row)
		if err != nil {
			out.Skipped = append(out.Skipped, RowError{Row: i + 1, Reason: err.Error()})
			continue
		}
		out.Materials = append(out.Materials, m)
	}
	if len(out.Materials) == 0 {
		return out, ErrEmptySheet
	}
	return out, nil
}

func parseRow(row []string) (pavement.Material, error) {
	if len(row) < 7 {
		return pavement.Material{}, fmt.Errorf("expected at least 7 columns, got %d", len(row))
	}
	nums := make([]float64, 5)
	for j := range nums {
		v, err := toFloat(row[j+1])
		if err != nil {
			return pavement.Material{}, fmt.Errorf("%s: %q is not a number", Header[j+1], row[j+1])
		}
		nums[j] = v
	}
	m := pavement.Material{
		Name:              strings.TrimSpace(row[0]),
		Coefficient:       nums[0],
		MinLift:           nums[1],
		MaxLift:           nums[2],
		Density:           nums[3],
		UnitCost:          nums[4],
		Unit:              pavement.Unit(strings.ToLower(strings.TrimSpace(row[6]))),
		Surface:           yes(row, 7),
		SubgradeTreatment: yes(row, 8),
		Alkaline:          yes(row, 9),
	}
	if err := m.Validate(); err != nil {
		return pavement.Material{}, err
	}
	return m, nil
}

// yes reads a Yes/No flag column; anything but "yes" is false.
func yes(row []string, col int) bool {
	return col < len(row) && strings.EqualFold(strings.TrimSpace(row[col]), "yes")
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// Write renders materials as a workbook Parse can read back.
func Write(w io.Writer, materials []pavement.Material) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &Header); err != nil {
		return err
	}
	for i, m := range materials {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{m.Name, m.Coefficient, m.MinLift, m.MaxLift, m.Density, m.UnitCost, string(m.Unit),
			yesNo(m.Surface), yesNo(m.SubgradeTreatment), yesNo(m.Alkaline)}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	_, err := f.WriteTo(w)
	return err
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
