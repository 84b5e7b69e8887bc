package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"workorder_invoicing/internal/domain/entities"

	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat defaults to CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

func (f Format) Filename() string {
	return "invoice_audit." + string(f)
}

var (
	summaryHeaders = []string{"Customer Class", "Expected", "Actual", "Missing", "Cached Counter", "Consistent"}
	warningHeaders = []string{"Customer Class", "Kind", "Number", "Through", "Invoice Number", "Work Orders"}
)

const (
	summarySheet  = "Summary"
	warningsSheet = "Warnings"
)

// Write renders r in format f.
func Write(w io.Writer, f Format, r entities.AuditReport) error {
	switch f {
	case FormatXLSX:
		return WriteXLSX(w, r)
	case FormatCSV:
		return WriteCSV(w, r)
	}
	return ErrUnsupportedFormat
}

// WriteCSV writes one row per class followed by a blank line and one row per warning.
func WriteCSV(w io.Writer, r entities.AuditReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(summaryHeaders); err != nil {
		return err
	}
	if err := cw.WriteAll(summaryRows(r)); err != nil {
		return err
	}
	if err := cw.Write(nil); err != nil {
		return err
	}
	if err := cw.Write(warningHeaders); err != nil {
		return err
	}
	if err := cw.WriteAll(warningRows(r)); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a workbook with a Summary sheet and a Warnings sheet.
func WriteXLSX(w io.Writer, r entities.AuditReport) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if err := fillSheet(f, summarySheet, headerStyle, summaryHeaders, summaryRows(r)); err != nil {
		return err
	}
	if _, err := f.NewSheet(warningsSheet); err != nil {
		return err
	}
	if err := fillSheet(f, warningsSheet, headerStyle, warningHeaders, warningRows(r)); err != nil {
		return err
	}
	f.SetActiveSheet(0)

	return f.Write(w)
}

func fillSheet(f *excelize.File, sheet string, headerStyle int, headers []string, rows [][]string) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", last, 18)
}

func sortedClasses(r entities.AuditReport) []entities.CustomerClass {
	classes := make([]entities.CustomerClass, 0, len(r.PerClass))
	for c := range r.PerClass {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	return classes
}

func summaryRows(r entities.AuditReport) [][]string {
	var rows [][]string
	for _, class := range sortedClasses(r) {
		a := r.PerClass[class]
		cached := ""
		if a.CachedCounter != nil {
			cached = strconv.Itoa(*a.CachedCounter)
		}
		rows = append(rows, []string{
			string(class),
			strconv.Itoa(a.ExpectedCount),
			strconv.Itoa(a.ActualCount),
			formatRanges(a.MissingNumbers),
			cached,
			strconv.FormatBool(a.Consistent()),
		})
	}
	return rows
}

func warningRows(r entities.AuditReport) [][]string {
	var rows [][]string
	for _, class := range sortedClasses(r) {
		for _, w := range r.PerClass[class].Warnings {
			rows = append(rows, []string{
				string(w.CustomerClass),
				string(w.Kind),
				strconv.Itoa(w.Number),
				through(w),
				w.InvoiceNumber,
				strings.Join(w.WorkOrderIDs, " "),
			})
		}
	}
	return rows
}

func through(w entities.ConsistencyWarning) string {
	if w.To == 0 {
		return ""
	}
	return strconv.Itoa(w.To)
}

// formatRanges collapses sorted numbers into "1-4 7 9-10".
func formatRanges(ns []int) string {
	var parts []string
	for i := 0; i < len(ns); {
		j := i
		for j+1 < len(ns) && ns[j+1] == ns[j]+1 {
			j++
		}
		if j == i {
			parts = append(parts, strconv.Itoa(ns[i]))
		} else {
			parts = append(parts, strconv.Itoa(ns[i])+"-"+strconv.Itoa(ns[j]))
		}
		i = j + 1
	}
	return strings.Join(parts, " ")
}
