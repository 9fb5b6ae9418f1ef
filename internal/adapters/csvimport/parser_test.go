package csvimport

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robpaolella/personal-finance-sub000/internal/domain/duplicates"
)

func TestParse_SignedAmountColumn(t *testing.T) {
	input := `Date,Description,Amount
2024-03-01,Trader Joes,-42.50
03/05/2024,"Coffee, large",-10.00

2024-03-06,Payroll,"$1,500.00"
`

	txns, err := Parse(strings.NewReader(input), DefaultMapping())

	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, duplicates.IncomingTransaction{Date: "2024-03-01", Amount: -42.50, Description: "Trader Joes"}, txns[0])
	assert.Equal(t, "2024-03-05", txns[1].Date)
	assert.Equal(t, "Coffee, large", txns[1].Description)
	assert.Equal(t, 1500.00, txns[2].Amount)
}

func TestParse_DebitCreditColumns(t *testing.T) {
	input := "Posted Date,Payee,Debit,Credit\n" +
		"2024-04-01,Electric Co,120.33,\n" +
		"2024-04-02,Refund,,15.00\n"

	txns, err := Parse(strings.NewReader(input), Mapping{
		DateColumn:        "posted date",
		DescriptionColumn: "payee",
		DebitColumn:       "debit",
		CreditColumn:      "credit",
	})

	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, -120.33, txns[0].Amount)
	assert.Equal(t, 15.00, txns[1].Amount)
}

func TestParse_CustomDateFormat(t *testing.T) {
	input := "date,description,amount\n02.01.2024,Bakery,-3.20\n"
	m := DefaultMapping()
	m.DateFormat = "02.01.2006"

	txns, err := Parse(strings.NewReader(input), m)

	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "2024-01-02", txns[0].Date)
}

func TestParse_MissingColumn(t *testing.T) {
	_, err := Parse(strings.NewReader("date,memo,amount\n"), DefaultMapping())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.Line)
}

func TestParse_BadRowReportsLine(t *testing.T) {
	input := "date,description,amount\n2024-01-01,ok,1.00\n2024-01-02,bad,abc\n"

	_, err := Parse(strings.NewReader(input), DefaultMapping())

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 3, pe.Line)
	assert.Contains(t, err.Error(), "invalid amount")
}

func TestParse_BadDate(t *testing.T) {
	input := "date,description,amount\nyesterday,Lunch,1.00\n"

	_, err := Parse(strings.NewReader(input), DefaultMapping())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized date")
}

func TestParse_EmptyInput(t *testing.T) {
	txns, err := Parse(strings.NewReader(""), DefaultMapping())

	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestParse_ByteOrderMark(t *testing.T) {
	input := "\ufeffDate,Description,Amount\n2024-01-01,Tea,-2.00\n"

	txns, err := Parse(strings.NewReader(input), DefaultMapping())

	require.NoError(t, err)
	require.Len(t, txns, 1)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"42.50", 42.50},
		{"-42.50", -42.50},
		{"$1,234.56", 1234.56},
		{"(12.00)", -12.00},
		{" 7 ", 7},
		{"0.125", 0.13},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseAmount("")
	assert.Error(t, err)
	_, err = ParseAmount("twelve")
	assert.Error(t, err)
}
