package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandRecurring_ClampsToMonthEnd(t *testing.T) {
	tests := []struct {
		name string
		year int
		want int
	}{
		{name: "leap year", year: 2024, want: 29},
		{name: "common year", year: 2023, want: 28},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := []RecurringExpense{{Day: 30, Category: "rent", Amount: d("900")}}
			feb := date(tt.year, time.February, 10)

			out := ExpandRecurring(tpl, feb, feb)
			require.Len(t, out, 1)
			assert.Equal(t, date(tt.year, time.February, tt.want), out[0].Date)
			assert.True(t, out[0].Recurring)
			assert.False(t, out[0].Extraordinary)
		})
	}
}

func TestExpandRecurring_OnePerTemplatePerMonth(t *testing.T) {
	tpl := []RecurringExpense{
		{Day: 1, Category: "rent", Concept: "flat", Amount: d("900")},
		{Day: 15, Category: "phone", Amount: d("20")},
	}

	out := ExpandRecurring(tpl, date(2024, 1, 20), date(2024, 4, 2))
	require.Len(t, out, 8)
	assert.Equal(t, date(2024, 1, 1), out[0].Date)
	assert.Equal(t, date(2024, 4, 1), out[3].Date)
	assert.Equal(t, date(2024, 4, 15), out[7].Date)
	assert.Equal(t, "flat", out[0].Concept)
}

func TestExpandRecurring_DayZeroClampsToFirst(t *testing.T) {
	out := ExpandRecurring([]RecurringExpense{{Day: 0, Category: "x"}}, date(2024, 6, 1), date(2024, 6, 30))
	require.Len(t, out, 1)
	assert.Equal(t, date(2024, 6, 1), out[0].Date)
}

func TestExpandRecurring_IsIdempotent(t *testing.T) {
	tpl := []RecurringExpense{{Day: 31, Category: "gym", Amount: d("35")}}
	from, now := date(2023, 11, 3), date(2024, 3, 9)

	assert.Equal(t, ExpandRecurring(tpl, from, now), ExpandRecurring(tpl, from, now))
}

func TestExpandRecurring_EdgeCases(t *testing.T) {
	assert.Nil(t, ExpandRecurring(nil, date(2024, 1, 1), date(2024, 2, 1)))

	// from after now collapses to the current month.
	out := ExpandRecurring([]RecurringExpense{{Day: 5, Category: "x"}}, date(2025, 1, 1), date(2024, 2, 10))
	require.Len(t, out, 1)
	assert.Equal(t, date(2024, 2, 5), out[0].Date)
}
