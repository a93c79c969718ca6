package csvfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iho/networth/internal/domain"
)

// Values of the extraordinary column.
const (
	ordinaryMarker      = "NO"
	extraordinaryMarker = "YES"
)

const (
	recordColDate    = 0
	recordColCat     = 1
	recordColConcept = 2
	recordColAmount  = 3
	recordColExtra   = 4
)

func cashRecordCodec(file string) codec[domain.CashRecord] {
	return codec[domain.CashRecord]{
		file:      file,
		header:    []string{"date", "category", "concept", "amount", "extraordinary"},
		minFields: 4,
		assetCol:  -1,
		marshal:   MarshalCashRecord,
		unmarshal: UnmarshalCashRecord,
	}
}

// MarshalCashRecord converts a CashRecord to a CSV row.
func MarshalCashRecord(r domain.CashRecord) []string {
	extra := ordinaryMarker
	if r.Extraordinary {
		extra = extraordinaryMarker
	}
	return []string{r.Date.Format(dateFormat), r.Category, r.Concept, formatDecimal(r.Amount), extra}
}

// UnmarshalCashRecord converts a CSV row to a CashRecord. Any extraordinary
// value other than empty or NO marks the record extraordinary.
func UnmarshalCashRecord(rec []string) (domain.CashRecord, error) {
	date, err := parseDate(rec[recordColDate])
	if err != nil {
		return domain.CashRecord{}, err
	}
	if rec[recordColAmount] == "" {
		return domain.CashRecord{}, fmt.Errorf("empty amount")
	}
	amount, err := parseDecimal("amount", rec[recordColAmount])
	if err != nil {
		return domain.CashRecord{}, err
	}

	extra := strings.ToUpper(field(rec, recordColExtra))
	return domain.CashRecord{
		Date:          date,
		Category:      rec[recordColCat],
		Concept:       rec[recordColConcept],
		Amount:        amount,
		Extraordinary: extra != "" && extra != ordinaryMarker,
	}, nil
}

const (
	recurringColDay     = 0
	recurringColCat     = 1
	recurringColConcept = 2
	recurringColAmount  = 3
)

var recurringCodec = codec[domain.RecurringExpense]{
	file:      RecurringExpensesFile,
	header:    []string{"day", "category", "concept", "amount"},
	minFields: 4,
	assetCol:  -1,
	marshal:   MarshalRecurringExpense,
	unmarshal: UnmarshalRecurringExpense,
}

// MarshalRecurringExpense converts a RecurringExpense to a CSV row.
func MarshalRecurringExpense(r domain.RecurringExpense) []string {
	return []string{strconv.Itoa(r.Day), r.Category, r.Concept, formatDecimal(r.Amount)}
}

// UnmarshalRecurringExpense converts a CSV row to a RecurringExpense.
func UnmarshalRecurringExpense(rec []string) (domain.RecurringExpense, error) {
	day, err := strconv.Atoi(rec[recurringColDay])
	if err != nil {
		return domain.RecurringExpense{}, fmt.Errorf("parsing day %q: %w", rec[recurringColDay], err)
	}
	amount, err := parseDecimal("amount", rec[recurringColAmount])
	if err != nil {
		return domain.RecurringExpense{}, err
	}
	return domain.RecurringExpense{
		Day:      day,
		Category: rec[recurringColCat],
		Concept:  rec[recurringColConcept],
		Amount:   amount,
	}, nil
}

const (
	historyColDate  = 0
	historyColAsset = 1
	historyColPrice = 2
)

var historyCodec = codec[domain.PricePoint]{
	file:      PriceHistoryFile,
	header:    []string{"date", "asset_id", "price"},
	minFields: 3,
	assetCol:  historyColAsset,
	marshal:   MarshalPricePoint,
	unmarshal: UnmarshalPricePoint,
}

// MarshalPricePoint converts a PricePoint to a CSV row.
func MarshalPricePoint(p domain.PricePoint) []string {
	return []string{p.Date.Format(dateFormat), p.AssetID, formatDecimal(p.Price)}
}

// UnmarshalPricePoint converts a CSV row to a PricePoint.
func UnmarshalPricePoint(rec []string) (domain.PricePoint, error) {
	date, err := parseDate(rec[historyColDate])
	if err != nil {
		return domain.PricePoint{}, err
	}
	if rec[historyColAsset] == "" {
		return domain.PricePoint{}, errEmptyAssetID
	}
	price, err := parseDecimal("price", rec[historyColPrice])
	if err != nil {
		return domain.PricePoint{}, err
	}
	return domain.PricePoint{Date: date, AssetID: rec[historyColAsset], Price: price}, nil
}
