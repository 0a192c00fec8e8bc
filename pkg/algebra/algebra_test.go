package algebra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quilllang/quill/internal/value"
	"github.com/quilllang/quill/pkg/quillerr"
)

func TestAddNumberMoney(t *testing.T) {
	s := value.NewStore()

	h, err := Add(s, s.NewNumber(1.5), s.NewMoney(1000000, "USD"))
	require.NoError(t, err)
	amt, cur, ok := s.Money(h)
	require.True(t, ok)
	assert.Equal(t, int64(1015000), amt)
	assert.Equal(t, "USD", cur)
}

func TestAddMoneyCurrencyMismatch(t *testing.T) {
	s := value.NewStore()

	_, err := Add(s, s.NewMoney(100, "USD"), s.NewMoney(100, "EUR"))
	k, ok := quillerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, quillerr.CurrencyMismatch, k)
}

func TestDivMoneyByMoneyYieldsRatioNumber(t *testing.T) {
	s := value.NewStore()

	h, err := Div(s, s.NewMoney(1000000, "USD"), s.NewMoney(250000, "USD"))
	require.NoError(t, err)
	v, ok := s.Number(h)
	require.True(t, ok)
	assert.Equal(t, float64(4), v)
}

func TestDivByZero(t *testing.T) {
	s := value.NewStore()

	_, err := Div(s, s.NewNumber(1), s.NewNumber(0))
	k, ok := quillerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, quillerr.DivisionByZero, k)
}

func TestCompareNumberAndMoney(t *testing.T) {
	s := value.NewStore()

	c, err := Compare(s, s.NewNumber(100), s.NewMoney(1000000, "USD"))
	require.NoError(t, err)
	assert.Equal(t, 0, c)

	c, err = Compare(s, s.NewNumber(99), s.NewMoney(1000000, "USD"))
	require.NoError(t, err)
	assert.Equal(t, -1, c)
}

func TestCompareTextByteOrder(t *testing.T) {
	s := value.NewStore()

	c, err := Compare(s, s.NewText("apple"), s.NewText("banana"))
	require.NoError(t, err)
	assert.Equal(t, -1, c)
}

func TestEqualPropagatesCurrencyMismatch(t *testing.T) {
	s := value.NewStore()

	_, err := Equal(s, s.NewMoney(100, "USD"), s.NewMoney(100, "EUR"))
	k, ok := quillerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, quillerr.CurrencyMismatch, k)
}

func TestLooseEqualSwallowsCurrencyMismatch(t *testing.T) {
	s := value.NewStore()

	assert.False(t, LooseEqual(s, s.NewMoney(100, "USD"), s.NewMoney(100, "EUR")))
}

func TestStructuralEqualityOfLists(t *testing.T) {
	s := value.NewStore()

	a := s.NewList([]value.Handle{s.NewNumber(1), s.NewText("x")})
	b := s.NewList([]value.Handle{s.NewNumber(1), s.NewText("x")})
	c := s.NewList([]value.Handle{s.NewNumber(2), s.NewText("x")})

	assert.True(t, LooseEqual(s, a, b))
	assert.False(t, LooseEqual(s, a, c))
}

func TestAddDaysAcrossMonthAndLeapYearBoundary(t *testing.T) {
	s := value.NewStore()

	d, err := s.NewDate(2024, 3, 30)
	require.NoError(t, err)
	after, err := AddDays(s, d, 3)
	require.NoError(t, err)
	y, m, day, _ := s.Date(after)
	assert.Equal(t, [3]int{2024, 4, 2}, [3]int{y, m, day})

	feb28, err := s.NewDate(2024, 2, 28)
	require.NoError(t, err)
	feb29, err := NextDate(s, feb28)
	require.NoError(t, err)
	_, m, day, _ = s.Date(feb29)
	assert.Equal(t, 2, m)
	assert.Equal(t, 29, day)

	mar1, err := NextDate(s, feb29)
	require.NoError(t, err)
	_, m, day, _ = s.Date(mar1)
	assert.Equal(t, 3, m)
	assert.Equal(t, 1, day)
}

func TestAddDaysRoundTrip(t *testing.T) {
	s := value.NewStore()

	d, err := s.NewDate(2023, 1, 1)
	require.NoError(t, err)
	forward, err := AddDays(s, d, 40)
	require.NoError(t, err)
	back, err := AddDays(s, forward, -40)
	require.NoError(t, err)

	y1, m1, day1, _ := s.Date(d)
	y2, m2, day2, _ := s.Date(back)
	assert.Equal(t, [3]int{y1, m1, day1}, [3]int{y2, m2, day2})
}

func TestToMoneyRejectsCurrencyReinterpretation(t *testing.T) {
	s := value.NewStore()

	_, err := ToMoney(s, s.NewMoney(100, "USD"), "EUR")
	k, ok := quillerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, quillerr.CurrencyMismatch, k)
}

func TestToNumberFromPercentageAndRatio(t *testing.T) {
	s := value.NewStore()

	pct := s.NewPercentage(12.5)
	h, err := ToNumber(s, pct)
	require.NoError(t, err)
	v, _ := s.Number(h)
	assert.Equal(t, 12.5, v)

	ratio, err := s.NewRatio(3, 4)
	require.NoError(t, err)
	h, err = ToNumber(s, ratio)
	require.NoError(t, err)
	v, _ = s.Number(h)
	assert.Equal(t, 0.75, v)
}
