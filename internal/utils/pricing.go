package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"obrafacil-backend/internal/domain"
)

const (
	daysPerWeek     = 7
	daysPerBiweek   = 14
	daysPerMonthCap = 30
)

// Date is a calendar date without time of day.
type Date struct {
	Year  int
	Month int
	Day   int
}

// DateOf drops the clock part of t.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: int(m), Day: d}
}

func (d Date) before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// Period is a rental length in whole months plus leftover days.
type Period struct {
	Months int
	Days   int
}

// Breakdown splits a quote by tier.
type Breakdown struct {
	Months      int             `json:"months"`
	Biweeks     int             `json:"biweeks"`
	Weeks       int             `json:"weeks"`
	Days        int             `json:"days"`
	MonthsCost  decimal.Decimal `json:"months_cost"`
	BiweeksCost decimal.Decimal `json:"biweeks_cost"`
	WeeksCost   decimal.Decimal `json:"weeks_cost"`
	DaysCost    decimal.Decimal `json:"days_cost"`
	Total       decimal.Decimal `json:"total"`
}

// ParseDate reads a yyyy-mm-dd string.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd")
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("invalid date component %q: %v", p, err)
		}
		nums[i] = n
	}
	if nums[1] < 1 || nums[1] > 12 {
		return Date{}, fmt.Errorf("month must be between 1 and 12")
	}
	if nums[2] < 1 || nums[2] > DaysInMonth(nums[0], nums[1]) {
		return Date{}, fmt.Errorf("day out of range for %04d-%02d", nums[0], nums[1])
	}
	return Date{Year: nums[0], Month: nums[1], Day: nums[2]}, nil
}

func DaysInMonth(year, month int) int {
	switch month {
	case 2:
		if (year%4 == 0 && year%100 != 0) || year%400 == 0 {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	}
	return 31
}

// RentalPeriod counts whole calendar months and leftover days between start
// and end. Both ends are included.
func RentalPeriod(start, end Date) (Period, error) {
	if end.before(start) {
		return Period{}, fmt.Errorf("end date must be >= start date")
	}

	from := time.Date(start.Year, time.Month(start.Month), start.Day, 0, 0, 0, 0, time.UTC)
	// exclusive upper bound, the day after end
	until := time.Date(end.Year, time.Month(end.Month), end.Day+1, 0, 0, 0, 0, time.UTC)

	months := 0
	for !from.AddDate(0, months+1, 0).After(until) {
		months++
	}
	anchor := from.AddDate(0, months, 0)
	days := int(until.Sub(anchor).Hours() / 24)
	return Period{Months: months, Days: days}, nil
}

// effectiveRates fills zero tiers from the next smaller one.
func effectiveRates(r domain.Rates) domain.Rates {
	out := r
	if out.Weekly.IsZero() {
		out.Weekly = out.Daily.Mul(decimal.NewFromInt(daysPerWeek))
	}
	if out.Biweekly.IsZero() {
		out.Biweekly = out.Weekly.Mul(decimal.NewFromInt(2))
	}
	if out.Monthly.IsZero() {
		out.Monthly = out.Daily.Mul(decimal.NewFromInt(daysPerMonthCap))
	}
	return out
}

// QuoteBreakdown prices a rental of the given rates from start to end.
func QuoteBreakdown(start, end time.Time, rates domain.Rates) (Breakdown, error) {
	period, err := RentalPeriod(DateOf(start), DateOf(end))
	if err != nil {
		return Breakdown{}, err
	}
	r := effectiveRates(rates)

	b := Breakdown{Months: period.Months}
	rest := period.Days
	b.Biweeks, rest = rest/daysPerBiweek, rest%daysPerBiweek
	b.Weeks, b.Days = rest/daysPerWeek, rest%daysPerWeek

	b.MonthsCost = r.Monthly.Mul(decimal.NewFromInt(int64(b.Months)))
	b.BiweeksCost = r.Biweekly.Mul(decimal.NewFromInt(int64(b.Biweeks)))
	b.WeeksCost = r.Weekly.Mul(decimal.NewFromInt(int64(b.Weeks)))
	b.DaysCost = r.Daily.Mul(decimal.NewFromInt(int64(b.Days)))
	b.Total = b.MonthsCost.Add(b.BiweeksCost).Add(b.WeeksCost).Add(b.DaysCost)
	return b, nil
}

// QuoteItem returns only the total of QuoteBreakdown.
func QuoteItem(start, end time.Time, rates domain.Rates) (decimal.Decimal, error) {
	b, err := QuoteBreakdown(start, end, rates)
	if err != nil {
		return decimal.Zero, err
	}
	return b.Total, nil
}
