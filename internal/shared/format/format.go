// Package format renders money, ratios and month counts the way Brazilian
// budget statements print them.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Money formata um valor em reais: 1234.5 -> "R$ 1.234,50".
func Money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "R$ -"
	}
	if v < 0 {
		return "-R$ " + printer.Sprintf("%.2f", -v)
	}
	return "R$ " + printer.Sprintf("%.2f", v)
}

// Number formata um valor sem símbolo de moeda: 1234.5 -> "1.234,50".
func Number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return printer.Sprintf("%.2f", v)
}

// Percent formats a value already expressed in percent: 45.7 -> "45,7%".
func Percent(pct float64) string {
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return "-"
	}
	return printer.Sprintf("%.1f", pct) + "%"
}

// Months formats a months-until-exhaustion value; above safeAbove it reads "Seguro".
func Months(v, safeAbove float64) string {
	if v > safeAbove {
		return "Seguro"
	}
	return printer.Sprintf("%.1f", v) + " meses"
}

// Status is the textual status used in tables and exports.
func Status(critical bool) string {
	if critical {
		return "CRÍTICO"
	}
	return "SEGURO"
}

// Thirteenth labels whether a line carries the 13th-month payment.
func Thirteenth(is13 bool) string {
	if is13 {
		return "Incluso 13º"
	}
	return "Normal"
}
