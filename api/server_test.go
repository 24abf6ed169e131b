package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotecalc/core/pricing"
	"quotecalc/core/rates"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	table := rates.Builtin()
	require.NoError(t, table.Validate())
	return NewServer("test", table, pricing.DefaultConfig())
}

func postQuote(t *testing.T, server *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/quote", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func TestHandleQuote(t *testing.T) {
	server := newTestServer(t)

	rec := postQuote(t, server, `{
		"lines": [
			{"product": "desktop", "quantity": 10, "markup_percent": 15, "tax_percent": 13}
		]
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp QuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 1, resp.Totals.LineCount)
	assert.Equal(t, "CAD", resp.Totals.BaseCurrency)
	assert.Equal(t, "INR", resp.Totals.DisplayCurrency)
	require.Len(t, resp.Totals.Lines, 1)
	assert.Equal(t, "1-25", resp.Totals.Lines[0].Tier)
	assert.True(t, resp.Totals.Lines[0].LineResale.Equal(decimalFromString(t, "86.2868")))
	assert.True(t, resp.Totals.Lines[0].LineProfit.Equal(decimalFromString(t, "11.2548")))
}

func TestHandleQuoteWithDiscountAndFee(t *testing.T) {
	server := newTestServer(t)

	rec := postQuote(t, server, `{
		"lines": [
			{"product": "desktop", "quantity": 30, "markup_percent": 15, "tax_percent": 13},
			{"product": "vms", "quantity": 5, "markup_percent": 15, "tax_percent": 13}
		],
		"discount_percent": 10
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp QuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Totals.Subtotal.Equal(decimalFromString(t, "469.76925")))
	assert.True(t, resp.Totals.FeeAmount.Equal(decimalFromString(t, "12.260977425")))
	assert.True(t, resp.Totals.GrandTotal.Equal(decimalFromString(t, "435.053302425")))
}

func TestHandleQuoteEmptyCart(t *testing.T) {
	server := newTestServer(t)

	rec := postQuote(t, server, `{"lines": []}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp QuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Totals.LineCount)
	assert.True(t, resp.Totals.GrandTotal.IsZero())
}

func TestHandleQuoteInvalidJSON(t *testing.T) {
	server := newTestServer(t)

	rec := postQuote(t, server, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_JSON")
}

func TestHandleQuoteUnknownProduct(t *testing.T) {
	server := newTestServer(t)

	rec := postQuote(t, server, `{
		"lines": [{"product": "mainframe", "quantity": 1, "markup_percent": 15, "tax_percent": 13}]
	}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestHandleQuoteNegativeTax(t *testing.T) {
	server := newTestServer(t)

	rec := postQuote(t, server, `{
		"lines": [{"product": "desktop", "quantity": 1, "markup_percent": 15, "tax_percent": -13}]
	}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INPUT_ERROR")
}

func TestHandleProducts(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Products []ProductInfo `json:"products"`
		Count    int           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 6, resp.Count)
	byKind := map[string]ProductInfo{}
	for _, p := range resp.Products {
		byKind[p.Kind] = p
	}
	require.Contains(t, byKind, "desktop")
	assert.Equal(t, "spx", byKind["desktop"].Family)
	assert.Equal(t, []string{"1-25", "26-50", "51-100", "101-150", "150+"}, byKind["desktop"].Tiers)
	require.Contains(t, byKind, "xcel-advance-cloud")
	assert.Equal(t, "eset", byKind["xcel-advance-cloud"].Family)
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
