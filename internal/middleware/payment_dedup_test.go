package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestMemoryDeduperFlagsDuplicates(t *testing.T) {
	d := newMemoryPaymentDeduper(time.Minute)
	ctx := context.Background()

	seen, err := d.Seen(ctx, "pay-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen {
		t.Fatal("first delivery must not be a duplicate")
	}

	seen, err = d.Seen(ctx, "pay-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !seen {
		t.Fatal("second delivery must be flagged")
	}

	seen, err = d.Seen(ctx, "pay-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen {
		t.Fatal("different payment ids must not collide")
	}
}

func TestMemoryDeduperExpires(t *testing.T) {
	d := newMemoryPaymentDeduper(10 * time.Millisecond)
	ctx := context.Background()

	if seen, _ := d.Seen(ctx, "pay-1"); seen {
		t.Fatal("first delivery must not be a duplicate")
	}
	time.Sleep(20 * time.Millisecond)
	if seen, _ := d.Seen(ctx, "pay-1"); seen {
		t.Fatal("expired entries must be forgotten")
	}
}

func TestNewPaymentDeduperWithoutRedis(t *testing.T) {
	d, err := NewPaymentDeduper("", "", 0, time.Minute)
	if err != nil {
		t.Fatalf("blank addr should fall back cleanly, got %v", err)
	}
	if _, ok := d.(*memoryPaymentDeduper); !ok {
		t.Fatalf("want in-memory fallback, got %T", d)
	}
}

func statusRequest(t *testing.T, e *echo.Echo, paymentID string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{}
	form.Set("PAYMENT_ID", paymentID)
	req := httptest.NewRequest(http.MethodPost, "/payment-status", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestPaymentStatusDedupShedsRepeatDeliveries(t *testing.T) {
	handled := 0
	e := echo.New()
	e.POST("/payment-status", func(c echo.Context) error {
		handled++
		return c.String(http.StatusOK, "handled")
	}, PaymentStatusDedup(newMemoryPaymentDeduper(time.Minute), func(c echo.Context) string {
		return c.FormValue("PAYMENT_ID")
	}))

	first := statusRequest(t, e, "pay-1")
	if first.Code != http.StatusOK || first.Body.String() != "handled" {
		t.Fatalf("first delivery: code %d body %q", first.Code, first.Body.String())
	}

	second := statusRequest(t, e, "pay-1")
	if second.Code != http.StatusOK {
		t.Fatalf("duplicates still need a 2xx, got %d", second.Code)
	}
	if second.Body.String() == "handled" {
		t.Fatal("duplicate delivery reached the handler")
	}
	if handled != 1 {
		t.Fatalf("handler ran %d times, want 1", handled)
	}

	// Requests without a payment id pass straight through.
	third := statusRequest(t, e, "")
	if third.Body.String() != "handled" {
		t.Fatal("requests without an id must not be deduped")
	}
}
