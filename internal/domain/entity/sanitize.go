package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseExtraction turns a raw extraction payload into an ExtractionResult.
// The payload may be wrapped in markdown code fences and may be either a JSON
// array of records or an object holding one such array. Records are coerced
// field by field with SanitizeRecords; anything structurally unusable yields a
// failed result.
func ParseExtraction(payload []byte) ExtractionResult {
	cleaned := stripCodeFences(string(payload))
	if cleaned == "" {
		return ExtractionFailed("empty extraction payload")
	}

	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.UseNumber()

	var root interface{}
	if err := dec.Decode(&root); err != nil {
		return ExtractionFailed(fmt.Sprintf("invalid JSON payload: %v", err))
	}

	items, ok := recordArray(root)
	if !ok {
		return ExtractionFailed("payload is not a list of records")
	}

	records := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		// Elementos que não são objetos são descartados.
		if rec, ok := item.(map[string]interface{}); ok {
			records = append(records, rec)
		}
	}

	return ExtractionOK(SanitizeRecords(records))
}

// SanitizeRecords coerces loosely typed records into LedgerLines. Missing or
// non-numeric values become 0 and missing or non-scalar text fields become "".
func SanitizeRecords(records []map[string]interface{}) []LedgerLine {
	lines := make([]LedgerLine, 0, len(records))
	for _, rec := range records {
		lines = append(lines, LedgerLine{
			ID:               coerceText(rec["id"]),
			ExpenseElement:   coerceText(rec["elemento"]),
			ActionCode:       coerceText(rec["funcional"]),
			SourceCode:       coerceText(rec["vinculo"]),
			CreditTotal:      coerceNumber(rec["totalCredito"]),
			CommittedAccrued: coerceNumber(rec["empenhadoAcumulado"]),
			SettledThisMonth: coerceNumber(rec["liquidadoMes"]),
			SettledAccrued:   coerceNumber(rec["liquidadoAcumulado"]),
			AvailableBalance: coerceNumber(rec["saldoOrcamentario"]),
			Notes:            coerceText(rec["observacoes"]),
		})
	}
	return lines
}

func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func recordArray(root interface{}) ([]interface{}, bool) {
	switch v := root.(type) {
	case []interface{}:
		return v, true
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if arr, ok := v[k].([]interface{}); ok {
				return arr, true
			}
		}
	}
	return nil, false
}

func coerceNumber(v interface{}) float64 {
	switch n := v.(type) {
	case json.Number:
		return decimalToFloat(string(n))
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		return decimalToFloat(n)
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func decimalToFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	f := d.InexactFloat64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func coerceText(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		d, err := decimal.NewFromString(string(t))
		if err != nil {
			return string(t)
		}
		if d.IsZero() {
			return ""
		}
		return d.String()
	case float64:
		if t == 0 || math.IsNaN(t) || math.IsInf(t, 0) {
			return ""
		}
		return decimal.NewFromFloat(t).String()
	case bool:
		if t {
			return "true"
		}
		return ""
	default:
		return ""
	}
}

// MarshalLines encodes lines in the persisted dataset format.
func MarshalLines(lines []LedgerLine) ([]byte, error) {
	if lines == nil {
		lines = []LedgerLine{}
	}
	return json.Marshal(lines)
}

// UnmarshalLines decodes a persisted dataset. Persisted values go through the
// same coercion as extracted ones so hand-edited files cannot break the view.
func UnmarshalLines(data []byte) ([]LedgerLine, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []LedgerLine{}, nil
	}
	res := ParseExtraction(data)
	if reason, failed := res.Failed(); failed {
		return nil, fmt.Errorf("decoding persisted dataset: %s", reason)
	}
	lines, _ := res.Lines()
	return lines, nil
}
