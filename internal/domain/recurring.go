package domain

import "time"

// ExpandRecurring materializes every template once per month from the month
// of from through the month of now, inclusive. A template day past the end of
// a month lands on that month's last day.
func ExpandRecurring(templates []RecurringExpense, from, now time.Time) []CashRecord {
	if len(templates) == 0 {
		return nil
	}
	if now.Before(from) {
		from = now
	}

	months := MonthsBetween(MonthOf(from), MonthOf(now))
	out := make([]CashRecord, 0, len(templates)*len(months))
	for _, tpl := range templates {
		for _, m := range months {
			out = append(out, CashRecord{
				Date:      m.Day(tpl.Day),
				Category:  tpl.Category,
				Concept:   tpl.Concept,
				Amount:    tpl.Amount,
				Recurring: true,
			})
		}
	}
	return out
}
