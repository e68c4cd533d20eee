package debt

import (
	"testing"
	"time"

	"sentinel-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func order(id, customer string, orderDate time.Time, salePrice string) models.Order {
	return models.Order{
		ID:           id,
		CustomerName: customer,
		OrderDate:    orderDate,
		SalePrice:    d(salePrice),
		Status:       models.OrderStatusPending,
	}
}

func payments(amounts ...string) []models.Payment {
	ps := make([]models.Payment, 0, len(amounts))
	for _, a := range amounts {
		ps = append(ps, models.Payment{Amount: d(a)})
	}
	return ps
}

func TestRemaining(t *testing.T) {
	tests := []struct {
		name     string
		sale     string
		payments []models.Payment
		want     string
	}{
		{"no payments", "100", nil, "100"},
		{"partial", "100", payments("40"), "60"},
		{"multiple partials", "100", payments("25", "25", "10"), "40"},
		{"exactly paid", "100", payments("60", "40"), "0"},
		{"overpaid clamps to zero", "100", payments("150"), "0"},
		{"zero sale price", "0", payments("10"), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Remaining(d(tt.sale), tt.payments)
			assert.True(t, d(tt.want).Equal(got), "want %s, got %s", tt.want, got)
			assert.False(t, got.IsNegative())
		})
	}
}

func TestDueDates(t *testing.T) {
	s := Default()

	first, second := s.DueDates(date(2024, time.January, 1))
	assert.Equal(t, date(2024, time.January, 16), first)
	assert.Equal(t, date(2024, time.January, 31), second)

	// month rollover
	first, second = s.DueDates(date(2024, time.March, 25))
	assert.Equal(t, date(2024, time.April, 9), first)
	assert.Equal(t, date(2024, time.April, 24), second)

	// time-of-day and zone must not shift the derived dates
	loc := time.FixedZone("VET", -4*60*60)
	first, _ = s.DueDates(time.Date(2024, time.January, 1, 23, 30, 0, 0, loc))
	assert.Equal(t, date(2024, time.January, 17), first) // 03:30 UTC Jan 2
}

func TestDueDatesCustomOffsets(t *testing.T) {
	s := NewScheduler(7, 14)
	first, second := s.DueDates(date(2024, time.June, 1))
	assert.Equal(t, date(2024, time.June, 8), first)
	assert.Equal(t, date(2024, time.June, 15), second)
}

func TestAggregateCustomerDebts(t *testing.T) {
	s := Default()
	now := date(2024, time.February, 1)

	orders := []OrderWithPayments{
		{Order: order("o1", "Maria", date(2024, time.January, 1), "100"), Payments: payments("40")},
		{Order: order("o2", "Maria", date(2024, time.January, 25), "40")},
		{Order: order("o3", "Pedro", date(2024, time.January, 30), "80"), Payments: payments("80")},
		{Order: order("o4", "Lucia", date(2024, time.January, 20), "50")},
	}

	debts := s.AggregateCustomerDebts(orders, now)

	// Pedro is fully paid and must not appear at all.
	require.Len(t, debts, 2)
	for _, dbt := range debts {
		assert.NotEqual(t, "Pedro", dbt.CustomerName)
	}

	// Lucia: first due Feb 4 (future), so next due Feb 4.
	// Maria: o1 both dues passed -> second due Jan 31; o2 first due Feb 9.
	//        Earliest is Jan 31, which sorts Maria ahead of Lucia.
	assert.Equal(t, "Maria", debts[0].CustomerName)
	assert.Equal(t, "Lucia", debts[1].CustomerName)

	require.NotNil(t, debts[0].EarliestDueDate)
	assert.Equal(t, date(2024, time.January, 31), *debts[0].EarliestDueDate)
	require.NotNil(t, debts[1].EarliestDueDate)
	assert.Equal(t, date(2024, time.February, 4), *debts[1].EarliestDueDate)

	// Totals and per-order detail.
	assert.True(t, d("100").Equal(debts[0].TotalDue), "got %s", debts[0].TotalDue)
	require.Len(t, debts[0].OrdersPending, 2)
	assert.Equal(t, "o1", debts[0].OrdersPending[0].OrderID)
	assert.True(t, d("60").Equal(debts[0].OrdersPending[0].Remaining))
	assert.Equal(t, date(2024, time.January, 16), debts[0].OrdersPending[0].FirstDue)
	assert.Equal(t, date(2024, time.January, 31), debts[0].OrdersPending[0].SecondDue)
	assert.Equal(t, "o2", debts[0].OrdersPending[1].OrderID)
	assert.True(t, d("40").Equal(debts[0].OrdersPending[1].Remaining))
}

func TestAggregateCustomerDebtsTieKeepsInsertionOrder(t *testing.T) {
	s := Default()
	now := date(2024, time.January, 1)

	// Same order date, same due dates: the first customer seen stays first.
	orders := []OrderWithPayments{
		{Order: order("a1", "Ana", date(2024, time.January, 5), "10")},
		{Order: order("b1", "Berta", date(2024, time.January, 5), "20")},
	}

	debts := s.AggregateCustomerDebts(orders, now)
	require.Len(t, debts, 2)
	assert.Equal(t, "Ana", debts[0].CustomerName)
	assert.Equal(t, "Berta", debts[1].CustomerName)
}

func TestAggregateCustomerDebtsEmptyInput(t *testing.T) {
	debts := Default().AggregateCustomerDebts(nil, time.Now())
	assert.Empty(t, debts)
}

func TestExpandCalendar(t *testing.T) {
	s := Default()
	now := date(2024, time.February, 1)

	orders := []OrderWithPayments{
		{Order: order("o1", "Maria", date(2024, time.January, 1), "100"), Payments: payments("40")},
	}
	debts := s.AggregateCustomerDebts(orders, now)
	events := ExpandCalendar(debts, now)

	// Exactly two events per pending order.
	require.Len(t, events, 2)

	assert.Equal(t, KindFirstDue, events[0].Kind)
	assert.Equal(t, date(2024, time.January, 16), events[0].Date)
	assert.True(t, events[0].Overdue)
	assert.True(t, d("60").Equal(events[0].Remaining))
	assert.Equal(t, date(2024, time.January, 1), events[0].OrderDate)

	assert.Equal(t, KindSecondDue, events[1].Kind)
	assert.Equal(t, date(2024, time.January, 31), events[1].Date)
	assert.True(t, events[1].Overdue)

	// A due date today is not overdue.
	orders[0].Order.OrderDate = date(2024, time.January, 17) // first due Feb 1 == now
	debts = s.AggregateCustomerDebts(orders, now)
	events = ExpandCalendar(debts, now)
	require.Len(t, events, 2)
	assert.False(t, events[0].Overdue)
}

func TestExpandCalendarSkipsSettledOrders(t *testing.T) {
	s := Default()
	now := date(2024, time.February, 1)

	orders := []OrderWithPayments{
		{Order: order("o1", "Maria", date(2024, time.January, 1), "100"), Payments: payments("100")},
	}
	debts := s.AggregateCustomerDebts(orders, now)
	events := ExpandCalendar(debts, now)
	assert.Empty(t, events)
}

func TestBucketByDay(t *testing.T) {
	s := Default()
	now := date(2024, time.February, 1)

	orders := []OrderWithPayments{
		// remaining 60, dues Jan 16 / Jan 31
		{Order: order("o1", "Maria", date(2024, time.January, 1), "100"), Payments: payments("40")},
		// remaining 40, dues Jan 31 / Feb 15 -> shares Jan 31 with o1's second due
		{Order: order("o2", "Lucia", date(2024, time.January, 16), "40")},
	}
	debts := s.AggregateCustomerDebts(orders, now)
	buckets := BucketByDay(ExpandCalendar(debts, now))

	require.Len(t, buckets, 3)

	jan16 := BucketFor(buckets, date(2024, time.January, 16))
	require.Len(t, jan16.Events, 1)
	assert.True(t, d("30").Equal(jan16.TotalDue), "half of 60, got %s", jan16.TotalDue)

	jan31 := BucketFor(buckets, date(2024, time.January, 31))
	require.Len(t, jan31.Events, 2)
	assert.True(t, d("50").Equal(jan31.TotalDue), "60/2 + 40/2, got %s", jan31.TotalDue)

	feb15 := BucketFor(buckets, date(2024, time.February, 15))
	require.Len(t, feb15.Events, 1)
	assert.True(t, d("20").Equal(feb15.TotalDue))
}

func TestBucketForEmptyDay(t *testing.T) {
	b := BucketFor(map[time.Time]*DailyBucket{}, date(2024, time.March, 10))
	assert.Equal(t, date(2024, time.March, 10), b.Date)
	assert.Empty(t, b.Events)
	assert.True(t, b.TotalDue.IsZero())
}

func TestDayNormalization(t *testing.T) {
	loc := time.FixedZone("VET", -4*60*60)
	a := Day(time.Date(2024, time.May, 3, 22, 0, 0, 0, loc)) // 02:00 UTC May 4
	assert.Equal(t, date(2024, time.May, 4), a)
	assert.Equal(t, date(2024, time.May, 4), Day(a))
}
