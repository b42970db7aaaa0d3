package billscan

import (
	"regexp"
	"strconv"
	"strings"
)

// ScanResult is what the scanner managed to read off a bill.
type ScanResult struct {
	Amount   float64 `json:"amount"`
	Provider string  `json:"provider,omitempty"`
	Category string  `json:"category,omitempty"`
}

// Matches "₪123.45", "123.45 ₪", "NIS 123.45" and bare "123.45" with
// optional thousands separators.
var amountPattern = regexp.MustCompile(`(?:₪|nis)?\s*(\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?|\d+(?:\.\d{1,2})?)\s*(?:₪|nis)?`)

var totalKeywords = []string{
	"total to pay",
	"total due",
	"amount due",
	"total",
	`סה"כ לתשלום`,
	"סהכ לתשלום",
	"לתשלום",
}

type hint struct {
	token    string
	category string
}

// Ordered by specificity so the first match wins deterministically.
var providerHints = []hint{
	{"electra", "electricity"},
	{"pazgas", "electricity"},
	{"amisragas", "electricity"},
	{"iec", "electricity"},
	{"pelephone", "mobile"},
	{"sting", "tv"},
	{"yes", "tv"},
	{"bezeq", ""},
	{"cellcom", ""},
	{"partner", ""},
	{"hot", ""},
	{"019", ""},
}

var categoryHints = []hint{
	{"kwh", "electricity"},
	{"electricity", "electricity"},
	{"חשמל", "electricity"},
	{"mbps", "internet"},
	{"fiber", "internet"},
	{"internet", "internet"},
	{"אינטרנט", "internet"},
	{"sim", "mobile"},
	{"mobile", "mobile"},
	{"סלולר", "mobile"},
	{"channels", "tv"},
	{"טלוויזיה", "tv"},
}

// ScanText finds the billed monthly amount and, when possible, the
// provider and service category.
func ScanText(text string) (ScanResult, error) {
	lower := strings.ToLower(text)

	result := ScanResult{
		Provider: detectProvider(lower),
		Category: detectCategory(lower),
	}

	amount, ok := amountNearKeyword(lower)
	if !ok {
		amount, ok = largestPlausibleAmount(lower)
	}
	if !ok {
		return ScanResult{}, ErrNoAmountFound
	}
	result.Amount = amount
	return result, nil
}

// amountNearKeyword looks for an amount on the same line as a total keyword.
func amountNearKeyword(lower string) (float64, bool) {
	lines := strings.Split(lower, "\n")
	for _, keyword := range totalKeywords {
		for _, line := range lines {
			if !strings.Contains(line, keyword) {
				continue
			}
			if amount, ok := firstAmount(line); ok {
				return amount, true
			}
		}
	}
	return 0, false
}

func firstAmount(line string) (float64, bool) {
	for _, match := range amountPattern.FindAllStringSubmatch(line, -1) {
		if amount, ok := parseAmount(match[1]); ok {
			return amount, true
		}
	}
	return 0, false
}

// largestPlausibleAmount falls back to the largest number that looks like
// a monthly utility charge.
func largestPlausibleAmount(lower string) (float64, bool) {
	best := 0.0
	found := false
	for _, match := range amountPattern.FindAllStringSubmatch(lower, -1) {
		amount, ok := parseAmount(match[1])
		if !ok {
			continue
		}
		if amount > best {
			best = amount
			found = true
		}
	}
	return best, found
}

func parseAmount(raw string) (float64, bool) {
	raw = strings.ReplaceAll(raw, ",", "")
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	// Monthly household bills run tens to low thousands of NIS.
	if amount < 10 || amount > 10000 {
		return 0, false
	}
	return amount, true
}

func detectProvider(lower string) string {
	for _, h := range providerHints {
		if strings.Contains(lower, h.token) {
			return h.token
		}
	}
	return ""
}

func detectCategory(lower string) string {
	for _, h := range categoryHints {
		if strings.Contains(lower, h.token) {
			return h.category
		}
	}
	for _, h := range providerHints {
		if strings.Contains(lower, h.token) && h.category != "" {
			return h.category
		}
	}
	return ""
}
