package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/smsledger/smsledger/internal/model"
)

// Header is the CSV header of a ledger file.
const Header = "text,senderAddress,transactionType,platform,paymentMethod,amount,debitedAmount,creditedAmount,totalAmount,day,month,year,time,isLegitimateCredit,senderIsBank"

const (
	numFields    = 15
	colText      = 0
	colSender    = 1
	colType      = 2
	colPlatform  = 3
	colMethod    = 4
	colAmount    = 5
	colDebited   = 6
	colCredited  = 7
	colTotal     = 8
	colDay       = 9
	colMonth     = 10
	colYear      = 11
	colTime      = 12
	colLegit     = 13
	colSenderBnk = 14
)

// ReadRecords reads a ledger CSV written by WriteRecords.
func ReadRecords(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteRecords writes a ledger CSV including the header.
func WriteRecords(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalRecord(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRecord converts a Transaction to a CSV row.
func MarshalRecord(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colText] = txn.Text
	row[colSender] = txn.SenderAddress
	row[colType] = txn.Type.String()
	row[colPlatform] = txn.Platform
	row[colMethod] = txn.PaymentMethod
	row[colAmount] = formatAmount(txn.Amount)
	row[colDebited] = formatAmount(txn.Debited)
	row[colCredited] = formatAmount(txn.Credited)
	row[colTotal] = formatAmount(txn.Total())
	row[colDay] = strconv.Itoa(txn.Day)
	row[colMonth] = strconv.Itoa(txn.Month)
	row[colYear] = strconv.Itoa(txn.Year)
	row[colTime] = txn.Time
	row[colLegit] = strconv.FormatBool(txn.LegitimateCredit)
	row[colSenderBnk] = strconv.FormatBool(txn.SenderIsBank)
	return row
}

// formatAmount renders d with at least two decimals and never rounds.
func formatAmount(d decimal.Decimal) string {
	if d.Equal(d.Round(2)) {
		return d.StringFixed(2)
	}
	return d.String()
}

// UnmarshalRecord converts a CSV row to a Transaction. totalAmount must
// equal debitedAmount + creditedAmount.
func UnmarshalRecord(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	typ := model.ParseTransactionType(record[colType])
	if typ == model.Unclassified {
		return model.Transaction{}, fmt.Errorf("parsing transactionType %q: unknown type", record[colType])
	}

	var amounts [4]decimal.Decimal
	for i, col := range []int{colAmount, colDebited, colCredited, colTotal} {
		d, err := decimal.NewFromString(record[col])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing amount column %d %q: %w", col, record[col], err)
		}
		amounts[i] = d
	}

	if sum := amounts[1].Add(amounts[2]); !amounts[3].Equal(sum) {
		return model.Transaction{}, fmt.Errorf("totalAmount %s does not match debited + credited %s", amounts[3], sum)
	}

	var ints [3]int
	for i, col := range []int{colDay, colMonth, colYear} {
		n, err := strconv.Atoi(record[col])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing date column %d %q: %w", col, record[col], err)
		}
		ints[i] = n
	}

	legit, err := strconv.ParseBool(record[colLegit])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing isLegitimateCredit %q: %w", record[colLegit], err)
	}
	isBank, err := strconv.ParseBool(record[colSenderBnk])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing senderIsBank %q: %w", record[colSenderBnk], err)
	}

	return model.Transaction{
		Text:             record[colText],
		SenderAddress:    record[colSender],
		Type:             typ,
		Platform:         record[colPlatform],
		PaymentMethod:    record[colMethod],
		Amount:           amounts[0],
		Debited:          amounts[1],
		Credited:         amounts[2],
		Day:              ints[0],
		Month:            ints[1],
		Year:             ints[2],
		Time:             record[colTime],
		LegitimateCredit: legit,
		SenderIsBank:     isBank,
	}, nil
}
