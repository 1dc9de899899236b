package checkout_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ms-checkout/internal/checkout"
	"ms-checkout/internal/models"
)

func TestNormalizeAmountMinorUnits(t *testing.T) {
	assert.Equal(t, "140.00", checkout.NormalizeAmount("14000"))
	assert.Equal(t, "140.00", checkout.NormalizeAmount(14000))
	assert.Equal(t, "140.00", checkout.NormalizeAmount(float64(14000)))
	assert.Equal(t, "0.99", checkout.NormalizeAmount("99"))
	assert.Equal(t, "0.00", checkout.NormalizeAmount("0"))
}

func TestNormalizeAmountDecimal(t *testing.T) {
	assert.Equal(t, "99.50", checkout.NormalizeAmount("99.5"))
	assert.Equal(t, "99.55", checkout.NormalizeAmount("99.55"))
	assert.Equal(t, "1.00", checkout.NormalizeAmount("1.0"))
}

func TestNormalizeAmountInvalidShapes(t *testing.T) {
	assert.Equal(t, "", checkout.NormalizeAmount(""))
	assert.Equal(t, "", checkout.NormalizeAmount(nil))
	assert.Equal(t, "", checkout.NormalizeAmount("abc"))
	assert.Equal(t, "", checkout.NormalizeAmount("12.345"))
	assert.Equal(t, "", checkout.NormalizeAmount("-5"))
	assert.Equal(t, "", checkout.NormalizeAmount("12."))
	assert.Equal(t, "", checkout.NormalizeAmount("1,200"))
}

func TestRawTotalPrefersTopLevel(t *testing.T) {
	order := &models.RawOrder{
		TotalAmount: "14000",
		Description: &models.OrderDescription{TotalAmount: "99.5"},
	}
	assert.Equal(t, "14000", checkout.RawTotal(order))

	order.TotalAmount = nil
	assert.Equal(t, "99.5", checkout.RawTotal(order))

	assert.Nil(t, checkout.RawTotal(nil))
}

func TestBuildDescriptionPrecedence(t *testing.T) {
	order := &models.RawOrder{
		Description: &models.OrderDescription{
			Text:  "Festival pass",
			Title: "Summer Fest",
			Items: []models.LineItem{{Name: "GA"}, {Name: "VIP"}},
		},
	}
	assert.Equal(t, "Festival pass", checkout.BuildDescription(order))

	order.Description.Text = ""
	assert.Equal(t, "Summer Fest", checkout.BuildDescription(order))

	order.Description.Title = ""
	assert.Equal(t, "GA, VIP", checkout.BuildDescription(order))

	order.Description.Items = nil
	assert.Equal(t, "Order Payment", checkout.BuildDescription(order))

	assert.Equal(t, "Order Payment", checkout.BuildDescription(nil))
}

func TestBuildDescriptionCaps(t *testing.T) {
	order := &models.RawOrder{
		Description: &models.OrderDescription{Text: strings.Repeat("x", 400)},
	}
	assert.Len(t, checkout.BuildDescription(order), 150)
}

func TestSanitizeDescription(t *testing.T) {
	assert.Equal(t, "Order Payment", checkout.SanitizeDescription(""))
	assert.Equal(t, "Summer Fest 2026", checkout.SanitizeDescription("Summer Fest 2026!"))
	assert.Equal(t, "bold ticket", checkout.SanitizeDescription("<b>bold</b> ticket"))
	assert.Equal(t, "VIP  GA", checkout.SanitizeDescription("VIP & GA"))

	long := checkout.SanitizeDescription(strings.Repeat("a", 50))
	assert.LessOrEqual(t, len(long), 20)
}

func TestShortIDFromExternalID(t *testing.T) {
	assert.Equal(t, "12345", checkout.ShortID("order-12345"))
	assert.Equal(t, "00042", checkout.ShortID("42"))
	// Only the last five digits matter, long ids must not overflow.
	assert.Equal(t, "67890", checkout.ShortID("9f86d081884c7d659a2feaa0c55ad015a1234567890"))
}

func TestShortIDAlwaysFiveDigits(t *testing.T) {
	inputs := []string{"", "x", "abc-def", "1", "999999999999999999999999", "b6a72c3e"}
	for _, in := range inputs {
		id := checkout.ShortID(in)
		assert.Len(t, id, 5, "input %q", in)
		for _, c := range id {
			assert.True(t, c >= '0' && c <= '9', "input %q produced %q", in, id)
		}
	}
}

func TestLanguage(t *testing.T) {
	assert.Equal(t, "EN", checkout.Language(nil))
	assert.Equal(t, "PT", checkout.Language(&models.RawOrder{Lang: "pt"}))

	order := &models.RawOrder{
		Description: &models.OrderDescription{
			BuyerInfo: &models.BuyerInfo{BuyerLanguage: "es"},
		},
	}
	assert.Equal(t, "ES", checkout.Language(order))
}

func TestNormalizeFullTuple(t *testing.T) {
	order := &models.RawOrder{
		ID:          "order-1",
		TotalAmount: 14000,
		Description: &models.OrderDescription{
			Title: "Summer Fest, 2026",
			BuyerInfo: &models.BuyerInfo{
				BuyerLanguage: "pt",
			},
		},
	}

	tx := checkout.Normalize(order, "txn-90210")

	assert.Equal(t, "90210", tx.ShortID)
	assert.Equal(t, "140.00", tx.Amount)
	assert.Equal(t, "Summer Fest 2026", tx.Description)
	assert.Equal(t, "PT", tx.Lang)
}

func TestNormalizeEmptyOrderStillDefaults(t *testing.T) {
	tx := checkout.Normalize(&models.RawOrder{}, "")

	assert.Len(t, tx.ShortID, 5)
	assert.Equal(t, "", tx.Amount)
	assert.Equal(t, "Order Payment", tx.Description)
	assert.Equal(t, "EN", tx.Lang)
}
