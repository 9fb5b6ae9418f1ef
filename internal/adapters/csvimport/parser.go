// Package csvimport parses bank statement CSV exports into incoming
// transactions for duplicate detection and import.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/robpaolella/personal-finance-sub000/internal/domain/duplicates"
)

// dateLayouts are tried in order when Mapping.DateFormat is empty
var dateLayouts = []string{"2006-01-02", "01/02/2006", "1/2/2006", "01/02/06", "2006/01/02"}

// Mapping names the CSV header columns to read.
// Use AmountColumn for signed single-column exports, or DebitColumn and
// CreditColumn for two-column exports (amount = credit - debit).
type Mapping struct {
	DateColumn        string
	DescriptionColumn string
	AmountColumn      string
	DebitColumn       string
	CreditColumn      string
	DateFormat        string // Go layout; empty = try common layouts
}

// DefaultMapping reads "date", "description" and "amount" columns
func DefaultMapping() Mapping {
	return Mapping{
		DateColumn:        "date",
		DescriptionColumn: "description",
		AmountColumn:      "amount",
	}
}

// ParseError reports a problem on one line of the CSV input
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ErrMissingColumn is returned when a mapped column is not in the header
var ErrMissingColumn = errors.New("missing column")

type columns struct {
	date, description, amount, debit, credit int
}

// Parse reads a CSV with a header row and returns one transaction per data row
func Parse(r io.Reader, m Mapping) ([]duplicates.IncomingTransaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, &ParseError{Line: 1, Err: err}
	}

	cols, err := m.resolve(header)
	if err != nil {
		return nil, &ParseError{Line: 1, Err: err}
	}

	var txns []duplicates.IncomingTransaction
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, &ParseError{Line: csvErr.Line, Err: csvErr.Err}
			}
			return nil, err
		}
		line, _ := reader.FieldPos(0)
		if isBlank(record) {
			continue
		}

		tx, err := m.parseRecord(record, cols)
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		txns = append(txns, tx)
	}

	return txns, nil
}

func (m Mapping) resolve(header []string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[normalizeHeader(h)] = i
	}

	lookup := func(name string, required bool) (int, error) {
		if name == "" {
			return -1, nil
		}
		i, ok := index[normalizeHeader(name)]
		if !ok {
			if required {
				return -1, fmt.Errorf("%w %q", ErrMissingColumn, name)
			}
			return -1, nil
		}
		return i, nil
	}

	var cols columns
	var err error
	if cols.date, err = lookup(m.DateColumn, true); err != nil {
		return cols, err
	}
	if cols.description, err = lookup(m.DescriptionColumn, true); err != nil {
		return cols, err
	}

	split := m.DebitColumn != "" || m.CreditColumn != ""
	if cols.amount, err = lookup(m.AmountColumn, !split); err != nil {
		return cols, err
	}
	if cols.debit, err = lookup(m.DebitColumn, split && m.DebitColumn != ""); err != nil {
		return cols, err
	}
	if cols.credit, err = lookup(m.CreditColumn, split && m.CreditColumn != ""); err != nil {
		return cols, err
	}
	if cols.date < 0 || cols.description < 0 {
		return cols, fmt.Errorf("%w: date and description are required", ErrMissingColumn)
	}
	if cols.amount < 0 && cols.debit < 0 && cols.credit < 0 {
		return cols, fmt.Errorf("%w: no amount column", ErrMissingColumn)
	}
	return cols, nil
}

func (m Mapping) parseRecord(record []string, cols columns) (duplicates.IncomingTransaction, error) {
	date, err := ParseDate(field(record, cols.date), m.DateFormat)
	if err != nil {
		return duplicates.IncomingTransaction{}, err
	}

	var amount decimal.Decimal
	if cols.amount >= 0 {
		amount, err = parseDecimal(field(record, cols.amount), false)
		if err != nil {
			return duplicates.IncomingTransaction{}, err
		}
	} else {
		debit, err := parseDecimal(field(record, cols.debit), true)
		if err != nil {
			return duplicates.IncomingTransaction{}, err
		}
		credit, err := parseDecimal(field(record, cols.credit), true)
		if err != nil {
			return duplicates.IncomingTransaction{}, err
		}
		amount = credit.Sub(debit)
	}

	return duplicates.IncomingTransaction{
		Date:        date,
		Amount:      amount.Round(2).InexactFloat64(),
		Description: strings.TrimSpace(field(record, cols.description)),
	}, nil
}

// ParseDate converts a statement date to YYYY-MM-DD. An empty layout tries
// the common formats in order.
func ParseDate(s, layout string) (string, error) {
	s = strings.TrimSpace(s)
	layouts := dateLayouts
	if layout != "" {
		layouts = []string{layout}
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q", s)
}

// ParseAmount parses a currency string such as "$1,234.50", "-12.00" or
// "(12.00)" and rounds it to cents
func ParseAmount(s string) (float64, error) {
	d, err := parseDecimal(s, false)
	if err != nil {
		return 0, err
	}
	return d.Round(2).InexactFloat64(), nil
}

func parseDecimal(s string, allowEmpty bool) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		negative = true
		clean = clean[1 : len(clean)-1]
	}
	clean = strings.NewReplacer("$", "", ",", "", " ", "").Replace(clean)

	if clean == "" {
		if allowEmpty {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
}
