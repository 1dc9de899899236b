package checkout

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"ms-checkout/internal/models"
)

// The transaction context is round-tripped through the payment gateway
// as query parameters on the success URL: tid (short id), oid (order
// id), optionally eid (event id), plus one items[i][...] group per
// line item. The gateway echoes the query string back verbatim on
// redirect, which is the only state transport available.

var itemParamRe = regexp.MustCompile(`^items\[(\d+)\]\[(Eid|Ename|Eprice|Equantity|ESeatId)\]$`)

// EncodeSuccessURL appends the redirect context onto the success-page
// base URL. Item fields that are absent are omitted for that index,
// never zero-filled. Encoding is deterministic (sorted keys).
func EncodeSuccessURL(baseURL, shortID, orderID, eventID string, items []models.LineItem) string {
	params := url.Values{}
	params.Set("tid", shortID)
	params.Set("oid", orderID)
	if eventID != "" {
		params.Set("eid", eventID)
	}
	for i, item := range items {
		if item.ID != "" {
			params.Set(fmt.Sprintf("items[%d][Eid]", i), item.ID)
		}
		if item.Name != "" {
			params.Set(fmt.Sprintf("items[%d][Ename]", i), item.Name)
		}
		if item.Price != nil {
			params.Set(fmt.Sprintf("items[%d][Eprice]", i), rawString(item.Price))
		}
		if item.Quantity != nil {
			params.Set(fmt.Sprintf("items[%d][Equantity]", i), rawString(item.Quantity))
		}
		if item.Description != nil {
			params.Set(fmt.Sprintf("items[%d][ESeatId]", i), *item.Description)
		}
	}
	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}
	return baseURL + sep + params.Encode()
}

// RedirectContext is the decoded form of the landing-page query.
// RawItemGroups counts the item groups present before UUID filtering,
// so callers can tell "no items embedded" apart from "all embedded
// items were invalid".
type RedirectContext struct {
	ShortID       string
	OrderID       string
	EventID       string
	Items         []models.RedirectItem
	RawItemGroups int
}

// DecodeRedirectQuery parses tid/oid/eid and any embedded item groups
// back out of the landing-page query string. Items whose Eid is not a
// canonical UUID are discarded here, on the decode side only; the
// encoder forwards them untouched.
func DecodeRedirectQuery(query url.Values) RedirectContext {
	ctx := RedirectContext{
		ShortID: query.Get("tid"),
		OrderID: query.Get("oid"),
		EventID: query.Get("eid"),
	}

	grouped := map[int]*models.RedirectItem{}
	for key := range query {
		m := itemParamRe.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		item := grouped[idx]
		if item == nil {
			item = &models.RedirectItem{}
			grouped[idx] = item
		}
		val := query.Get(key)
		switch m[2] {
		case "Eid":
			item.ItemID = val
		case "Ename":
			item.Name = val
		case "Eprice":
			item.Price = val
		case "Equantity":
			item.Quantity = val
		case "ESeatId":
			item.SeatID = val
		}
	}

	ctx.RawItemGroups = len(grouped)

	indexes := make([]int, 0, len(grouped))
	for idx := range grouped {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	for _, idx := range indexes {
		item := grouped[idx]
		if !IsCanonicalUUID(item.ItemID) {
			continue
		}
		ctx.Items = append(ctx.Items, *item)
	}
	return ctx
}

// IsCanonicalUUID reports whether s is the canonical 8-4-4-4-12 hex
// textual form. uuid.Parse alone is too permissive (it accepts braced
// and un-hyphenated variants the downstream ticket lookup rejects).
func IsCanonicalUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
