package checkout

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ms-checkout/internal/models"
)

// Normalization of the loosely-typed order payload into the canonical
// (amount, description, lang, shortId) tuple the gateway contract
// expects. Everything here is pure string work; callers decide what a
// missing value means.

var (
	allDigitsRe = regexp.MustCompile(`^\d+$`)
	decimalRe   = regexp.MustCompile(`^\d+(\.\d{1,2})$`)
	htmlTagRe   = regexp.MustCompile(`<[^>]*>`)
	nonAlnumRe  = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	nonDigitRe  = regexp.MustCompile(`\D`)
	shortIDRe   = regexp.MustCompile(`^\d{5}$`)
)

const defaultDescription = "Order Payment"

// NormalizeAmount derives a two-decimal amount string from a raw total.
// All-digit values are integer minor-units and divided by 100; values
// with one or two fraction digits are taken as already-decimal. Any
// other shape returns "" and the checkout must fail with AMOUNT_INVALID.
func NormalizeAmount(raw any) string {
	s := strings.TrimSpace(rawString(raw))
	if s == "" {
		return ""
	}
	if allDigitsRe.MatchString(s) {
		cents, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("%.2f", float64(cents)/100)
	}
	if decimalRe.MatchString(s) {
		dec, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("%.2f", dec)
	}
	return ""
}

// RawTotal reads the order total from the top-level field or, failing
// that, the nested description block.
func RawTotal(order *models.RawOrder) any {
	if order == nil {
		return nil
	}
	if order.TotalAmount != nil {
		return order.TotalAmount
	}
	if order.Description != nil {
		return order.Description.TotalAmount
	}
	return nil
}

// BuildDescription prefers explicit description text over the title,
// then falls back to joining line-item names, then to a fixed default.
// The result is display-grade (up to 150 chars); SanitizeDescription
// produces the form actually sent to the gateway.
func BuildDescription(order *models.RawOrder) string {
	if order != nil && order.Description != nil {
		if txt := order.Description.Text; txt != "" {
			return truncate(txt, 150)
		}
		if title := order.Description.Title; title != "" {
			return truncate(title, 150)
		}
		var names []string
		for _, item := range order.Description.Items {
			if item.Name != "" {
				names = append(names, item.Name)
			}
		}
		if joined := strings.TrimSpace(strings.Join(names, ", ")); joined != "" {
			return truncate(joined, 150)
		}
	}
	return defaultDescription
}

// SanitizeDescription strips HTML-like tags and anything outside
// [a-zA-Z0-9\s], then truncates to the gateway's 20-char limit. The
// gateway rejects longer or special-character descriptions outright.
func SanitizeDescription(desc string) string {
	if desc == "" {
		return defaultDescription
	}
	clean := htmlTagRe.ReplaceAllString(desc, "")
	clean = nonAlnumRe.ReplaceAllString(clean, "")
	return strings.TrimSpace(truncate(clean, 20))
}

// ShortID reduces an externally supplied transaction identifier to the
// 5-digit numeric id the gateway integration requires. Without an
// external id a random 5-digit id is generated. The result is always
// exactly 5 ASCII digits.
func ShortID(externalID string) string {
	if externalID == "" {
		return randomShortID()
	}
	digits := nonDigitRe.ReplaceAllString(externalID, "")
	if digits == "" {
		digits = strconv.FormatInt(time.Now().Unix(), 10)
	}
	// n mod 100000 only depends on the last five decimal digits, so
	// trimming first avoids overflowing on very long identifiers.
	if len(digits) > 5 {
		digits = digits[len(digits)-5:]
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		n = time.Now().Unix() % 100000
	}
	return fmt.Sprintf("%05d", n%100000)
}

func randomShortID() string {
	n, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		return fmt.Sprintf("%05d", time.Now().Unix()%90000+10000)
	}
	return strconv.FormatInt(n.Int64()+10000, 10)
}

// Language reads the buyer language from the order or its buyer info,
// defaulting to EN. Always upper-case.
func Language(order *models.RawOrder) string {
	lang := ""
	if order != nil {
		lang = order.Lang
		if lang == "" && order.Description != nil && order.Description.BuyerInfo != nil {
			lang = order.Description.BuyerInfo.BuyerLanguage
		}
	}
	if lang == "" {
		lang = "EN"
	}
	return strings.ToUpper(lang)
}

// Normalize produces the full transaction context for one checkout
// attempt. Redirect URLs are filled in by the caller.
func Normalize(order *models.RawOrder, externalID string) models.TransactionContext {
	return models.TransactionContext{
		ShortID:     ShortID(externalID),
		Amount:      NormalizeAmount(RawTotal(order)),
		Description: SanitizeDescription(BuildDescription(order)),
		Lang:        Language(order),
	}
}

func rawString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case float64:
		// JSON numbers decode to float64; integral values must not
		// grow a ".000000" suffix or the all-digits check misses them.
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
