package query

import (
	"strings"

	"sales-service/internal/models"
)

// Search keeps rows where every whitespace-separated token of term occurs in
// the customer name or the phone number. A token made only of digits and
// phone punctuation is also compared digits-only, so "98765-43210" finds
// "+91 98765 43210". An empty term returns rows unchanged. Input order is
// preserved.
func Search(rows []models.Transaction, term string) []models.Transaction {
	tokens := strings.Fields(strings.ToLower(term))
	if len(tokens) == 0 {
		return rows
	}

	digitTokens := make([]string, len(tokens))
	for i, t := range tokens {
		if phoneLike(t) {
			digitTokens[i] = digitsOnly(t)
		}
	}

	out := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		name := strings.ToLower(row.CustomerName)
		phone := strings.ToLower(row.PhoneNumber)
		phoneDigits := digitsOnly(phone)

		matched := true
		for i, t := range tokens {
			if strings.Contains(name, t) || strings.Contains(phone, t) {
				continue
			}
			if digitTokens[i] != "" && strings.Contains(phoneDigits, digitTokens[i]) {
				continue
			}
			matched = false
			break
		}
		if matched {
			out = append(out, row)
		}
	}
	return out
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// phoneLike reports whether t holds digits and nothing but phone punctuation
func phoneLike(t string) bool {
	hasDigit := false
	for _, r := range t {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune("+-().", r):
		default:
			return false
		}
	}
	return hasDigit
}
