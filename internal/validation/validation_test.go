package validation

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func bindJSON(t *testing.T, body string, dst any) bool {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return BindAndValidate(c, dst, New()) == nil
}

func TestParcelsRequest_Valid(t *testing.T) {
	var req ParcelsRequest
	if !bindJSON(t, `{"items":[{"customId":"c-1","quantity":2}]}`, &req) {
		t.Fatal("expected valid request to bind")
	}
	if len(req.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(req.Items))
	}
	if q, _ := req.Items[0].Quantity.Int64(); q != 2 {
		t.Fatalf("quantity = %d, want 2", q)
	}
}

func TestParcelsRequest_EmptyItems(t *testing.T) {
	var req ParcelsRequest
	if bindJSON(t, `{"items":[]}`, &req) {
		t.Fatal("expected empty items to fail validation")
	}
}

func TestParcelsRequest_MalformedBody(t *testing.T) {
	var req ParcelsRequest
	if bindJSON(t, `{"items":`, &req) {
		t.Fatal("expected malformed body to fail")
	}
}

func TestCustomsRequest_Valid(t *testing.T) {
	var req CustomsRequest
	body := `{"items":[{"sku":"SKU-1","quantity":1}],"destinationCountry":"MX","submit":true}`
	if !bindJSON(t, body, &req) {
		t.Fatal("expected valid customs request to bind")
	}
	if req.DestinationCountry != "MX" {
		t.Fatalf("destinationCountry = %q", req.DestinationCountry)
	}
	if !req.Submit {
		t.Fatal("submit flag not bound")
	}
}

func TestCustomsRequest_BadCountry(t *testing.T) {
	var req CustomsRequest
	if bindJSON(t, `{"items":[{"sku":"SKU-1","quantity":1}],"destinationCountry":"MEX"}`, &req) {
		t.Fatal("expected 3-letter country to fail len=2 validation")
	}
}

func TestQuoteRequest_CurrencyCase(t *testing.T) {
	var req QuoteRequest
	if bindJSON(t, `{"items":[{"sku":"SKU-1","quantity":1}],"fromCurrency":"usd"}`, &req) {
		t.Fatal("expected lowercase currency to fail uppercase validation")
	}
	if !bindJSON(t, `{"items":[{"sku":"SKU-1","quantity":1}],"fromCurrency":"USD"}`, &req) {
		t.Fatal("expected uppercase currency to pass")
	}
}
