package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	require.Equal(t, "R$ 1.234,50", Money(1234.5))
	require.Equal(t, "R$ 0,00", Money(0))
	require.Equal(t, "-R$ 50.345.666,50", Money(-50345666.5))
	require.Equal(t, "R$ -", Money(math.NaN()))
}

func TestNumberAndPercent(t *testing.T) {
	require.Equal(t, "1.000,00", Number(1000))
	require.Equal(t, "45,7%", Percent(45.7))
	require.Equal(t, "-", Percent(math.Inf(1)))
}

func TestMonthsAndLabels(t *testing.T) {
	require.Equal(t, "Seguro", Months(99, 12))
	require.Equal(t, "12,0 meses", Months(12, 12))
	require.Equal(t, "3,5 meses", Months(3.5, 12))
	require.Equal(t, "CRÍTICO", Status(true))
	require.Equal(t, "SEGURO", Status(false))
	require.Equal(t, "Incluso 13º", Thirteenth(true))
	require.Equal(t, "Normal", Thirteenth(false))
}
