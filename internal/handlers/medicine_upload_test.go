package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestParseMultipartMedicineRequestNumberFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	_ = writer.WriteField("name", "Napa Extra")
	_ = writer.WriteField("price", "12.50")
	_ = writer.WriteField("wholesalePrice", "9.75")
	_ = writer.WriteField("minWholesaleQuantity", "50")
	_ = writer.WriteField("stock", "200")
	_ = writer.WriteField("discount", "5")
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/admin/api/medicines", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	parsed, err := parseMultipartMedicineRequest(c)
	if err != nil {
		t.Fatalf("parseMultipartMedicineRequest returned error: %v", err)
	}
	if !parsed.NameSet || parsed.Name != "Napa Extra" {
		t.Fatalf("expected name set, got %+v", parsed)
	}
	if !parsed.PriceSet || parsed.Price != 12.50 {
		t.Fatalf("expected price=12.50, got %+v", parsed)
	}
	if !parsed.WholesalePriceSet || parsed.WholesalePrice != 9.75 {
		t.Fatalf("expected wholesalePrice=9.75, got %+v", parsed)
	}
	if !parsed.MinWholesaleQuantitySet || parsed.MinWholesaleQuantity != 50 {
		t.Fatalf("expected minWholesaleQuantity=50, got %+v", parsed)
	}
	if !parsed.StockSet || parsed.Stock != 200 {
		t.Fatalf("expected stock=200, got %+v", parsed)
	}
	if !parsed.DiscountSet || parsed.Discount != 5 {
		t.Fatalf("expected discount=5, got %+v", parsed)
	}
	if parsed.ImageSet {
		t.Fatal("expected no image without an image part")
	}
}

func TestParseMultipartMedicineRequestRejectsBadNumber(t *testing.T) {
	gin.SetMode(gin.TestMode)
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	_ = writer.WriteField("price", "not-a-number")
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/admin/api/medicines", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	if _, err := parseMultipartMedicineRequest(c); err == nil {
		t.Fatal("expected error for non-numeric price")
	}
}

func TestParseMultipartMedicineRequestOmittedFieldsStayUnset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	_ = writer.WriteField("name", "Paracetamol")
	_ = writer.Close()

	req := httptest.NewRequest("PUT", "/admin/api/medicines/1", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	parsed, err := parseMultipartMedicineRequest(c)
	if err != nil {
		t.Fatalf("parseMultipartMedicineRequest returned error: %v", err)
	}
	if parsed.PriceSet || parsed.StockSet || parsed.WholesalePriceSet || parsed.DiscountSet || parsed.CategorySet {
		t.Fatalf("expected omitted fields to stay unset, got %+v", parsed)
	}
}
