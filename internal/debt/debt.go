// Package debt implements the debt aggregation and payment-due scheduling
// used by the statistics dashboard: per-order remaining balances, fixed-offset
// due dates, per-customer debt grouping and the payment calendar.
//
// Everything here is a pure in-memory transformation. Callers pass the order
// list and the "now" instant explicitly and rebuild the output from scratch
// whenever the underlying data changes.
package debt

import (
	"sort"
	"time"

	"sentinel-service/internal/models"

	"github.com/shopspring/decimal"
)

// Event kinds for calendar events
const (
	KindFirstDue  = "first_due"
	KindSecondDue = "second_due"
)

// OrderWithPayments pairs an order with its recorded payments.
type OrderWithPayments struct {
	Order    models.Order     `json:"order"`
	Payments []models.Payment `json:"payments"`
}

// OrderDebtDetails carries the derived balance and due dates of one order.
type OrderDebtDetails struct {
	OrderID   string          `json:"order_id"`
	OrderDate time.Time       `json:"order_date"`
	Remaining decimal.Decimal `json:"remaining"`
	FirstDue  time.Time       `json:"first_due"`
	SecondDue time.Time       `json:"second_due"`
}

// CustomerDebt groups the outstanding balances of one customer.
type CustomerDebt struct {
	CustomerName    string             `json:"customer_name"`
	TotalDue        decimal.Decimal    `json:"total_due"`
	EarliestDueDate *time.Time         `json:"earliest_due_date,omitempty"`
	OrdersPending   []OrderDebtDetails `json:"orders_pending"`
}

// CalendarEvent is a single due-date checkpoint on the payment calendar.
type CalendarEvent struct {
	Date         time.Time       `json:"date"`
	CustomerName string          `json:"customer_name"`
	Kind         string          `json:"kind"`
	OrderID      string          `json:"order_id"`
	Remaining    decimal.Decimal `json:"remaining"`
	Overdue      bool            `json:"overdue"`
	OrderDate    time.Time       `json:"order_date"`
}

// DailyBucket holds all events falling on one calendar day.
//
// TotalDue sums remaining/2 per event: each pending order contributes two
// events carrying the same balance, and halving keeps a single order from
// being counted twice in a daily total. This is a display convention, not an
// accounting rule.
type DailyBucket struct {
	Date     time.Time       `json:"date"`
	Events   []CalendarEvent `json:"events"`
	TotalDue decimal.Decimal `json:"total_due"`
}

// Scheduler derives due dates at fixed day offsets from the order date.
type Scheduler struct {
	firstOffsetDays  int
	secondOffsetDays int
}

// NewScheduler creates a scheduler with the given due offsets in days.
func NewScheduler(firstOffsetDays, secondOffsetDays int) *Scheduler {
	return &Scheduler{
		firstOffsetDays:  firstOffsetDays,
		secondOffsetDays: secondOffsetDays,
	}
}

// Default returns a scheduler with the standard 15/30 day checkpoints.
func Default() *Scheduler {
	return NewScheduler(15, 30)
}

// Day truncates t to a date-only value at midnight UTC. All due-date
// comparisons and calendar keys go through this so day-boundary behavior does
// not depend on the server timezone.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Remaining computes the outstanding balance of an order: the sale price
// minus the sum of payment amounts, floored at zero.
func Remaining(salePrice decimal.Decimal, payments []models.Payment) decimal.Decimal {
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}
	remaining := salePrice.Sub(paid)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// DueDates returns the first and second due date for an order date.
func (s *Scheduler) DueDates(orderDate time.Time) (first, second time.Time) {
	day := Day(orderDate)
	return day.AddDate(0, 0, s.firstOffsetDays), day.AddDate(0, 0, s.secondOffsetDays)
}

// nextDue picks the due date used for sorting a customer's debts: the first
// checkpoint while it is still ahead, otherwise the second, which also stands
// in once both have passed.
func nextDue(first, second, today time.Time) time.Time {
	if first.After(today) {
		return first
	}
	return second
}

// AggregateCustomerDebts groups every order with a positive remaining balance
// by customer. The result is sorted ascending by earliest upcoming due date;
// customers without one sort last, and ties keep first-seen order.
func (s *Scheduler) AggregateCustomerDebts(orders []OrderWithPayments, now time.Time) []CustomerDebt {
	today := Day(now)

	index := make(map[string]int)
	debts := make([]CustomerDebt, 0)

	for _, ow := range orders {
		remaining := Remaining(ow.Order.SalePrice, ow.Payments)
		if !remaining.IsPositive() {
			continue
		}

		first, second := s.DueDates(ow.Order.OrderDate)
		next := nextDue(first, second, today)

		i, ok := index[ow.Order.CustomerName]
		if !ok {
			i = len(debts)
			index[ow.Order.CustomerName] = i
			debts = append(debts, CustomerDebt{
				CustomerName: ow.Order.CustomerName,
				TotalDue:     decimal.Zero,
			})
		}

		debts[i].TotalDue = debts[i].TotalDue.Add(remaining)
		debts[i].OrdersPending = append(debts[i].OrdersPending, OrderDebtDetails{
			OrderID:   ow.Order.ID,
			OrderDate: Day(ow.Order.OrderDate),
			Remaining: remaining,
			FirstDue:  first,
			SecondDue: second,
		})
		if debts[i].EarliestDueDate == nil || next.Before(*debts[i].EarliestDueDate) {
			due := next
			debts[i].EarliestDueDate = &due
		}
	}

	sort.SliceStable(debts, func(a, b int) bool {
		da, db := debts[a].EarliestDueDate, debts[b].EarliestDueDate
		if da == nil {
			return false
		}
		if db == nil {
			return true
		}
		return da.Before(*db)
	})

	return debts
}

// ExpandCalendar turns customer debts into dated calendar events: two per
// pending order, each carrying the order's full remaining balance.
func ExpandCalendar(debts []CustomerDebt, now time.Time) []CalendarEvent {
	today := Day(now)
	events := make([]CalendarEvent, 0, len(debts)*2)

	for _, d := range debts {
		for _, o := range d.OrdersPending {
			if !o.Remaining.IsPositive() {
				continue
			}
			events = append(events,
				CalendarEvent{
					Date:         o.FirstDue,
					CustomerName: d.CustomerName,
					Kind:         KindFirstDue,
					OrderID:      o.OrderID,
					Remaining:    o.Remaining,
					Overdue:      o.FirstDue.Before(today),
					OrderDate:    o.OrderDate,
				},
				CalendarEvent{
					Date:         o.SecondDue,
					CustomerName: d.CustomerName,
					Kind:         KindSecondDue,
					OrderID:      o.OrderID,
					Remaining:    o.Remaining,
					Overdue:      o.SecondDue.Before(today),
					OrderDate:    o.OrderDate,
				},
			)
		}
	}

	return events
}

// two is the per-day split factor, see DailyBucket.
var two = decimal.NewFromInt(2)

// BucketByDay groups calendar events by date-only key and accumulates each
// day's collectible total.
func BucketByDay(events []CalendarEvent) map[time.Time]*DailyBucket {
	buckets := make(map[time.Time]*DailyBucket)

	for _, ev := range events {
		if !ev.Remaining.IsPositive() {
			continue
		}
		key := Day(ev.Date)
		b, ok := buckets[key]
		if !ok {
			b = &DailyBucket{Date: key, TotalDue: decimal.Zero}
			buckets[key] = b
		}
		b.Events = append(b.Events, ev)
		b.TotalDue = b.TotalDue.Add(ev.Remaining.Div(two))
	}

	return buckets
}

// BucketFor looks up the bucket for a day, returning an empty bucket when
// nothing is due rather than nil.
func BucketFor(buckets map[time.Time]*DailyBucket, day time.Time) DailyBucket {
	if b, ok := buckets[Day(day)]; ok {
		return *b
	}
	return DailyBucket{Date: Day(day), Events: []CalendarEvent{}, TotalDue: decimal.Zero}
}
