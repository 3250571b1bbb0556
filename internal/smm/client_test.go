package smm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Canyildiz1386/SultanPanelBot/internal/shop"
)

func panelServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(srv.Close)
	return srv
}

func TestServicesDecodesMixedTypes(t *testing.T) {
	srv := panelServer(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("bad form: %v", err)
		}
		if got := r.FormValue("key"); got != "secret" {
			t.Errorf("key = %q, want secret", got)
		}
		if got := r.FormValue("action"); got != "services" {
			t.Errorf("action = %q, want services", got)
		}
		// ids and numbers arrive as strings or numbers depending on the panel
		w.Write([]byte(`[
			{"service": 101, "name": "Followers", "category": "Instagram Followers", "rate": "1500.5", "min": "100", "max": 10000},
			{"service": "202", "name": "Views", "category": "YouTube Views", "rate": 900, "min": 50, "max": "50000"}
		]`))
	})

	client := NewClient(srv.URL, "secret")
	services, err := client.Services(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(services) != 2 {
		t.Fatalf("got %d services, want 2", len(services))
	}

	first := services[0]
	if string(first.ID) != "101" {
		t.Errorf("first id = %q, want 101", first.ID)
	}
	if float64(first.Rate) != 1500.5 {
		t.Errorf("first rate = %v, want 1500.5", first.Rate)
	}
	if int(first.Min) != 100 || int(first.Max) != 10000 {
		t.Errorf("first bounds = %d/%d, want 100/10000", first.Min, first.Max)
	}

	second := services[1]
	if string(second.ID) != "202" {
		t.Errorf("second id = %q, want 202", second.ID)
	}
	if int(second.Max) != 50000 {
		t.Errorf("second max = %d, want 50000", second.Max)
	}
}

func TestServicesPanelDown(t *testing.T) {
	srv := panelServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	client := NewClient(srv.URL, "secret")
	if _, err := client.Services(context.Background()); !errors.Is(err, shop.ErrCatalogUnavailable) {
		t.Fatalf("want ErrCatalogUnavailable, got %v", err)
	}
}

func TestServicesGarbagePayload(t *testing.T) {
	srv := panelServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance</html>"))
	})

	client := NewClient(srv.URL, "secret")
	if _, err := client.Services(context.Background()); !errors.Is(err, shop.ErrCatalogUnavailable) {
		t.Fatalf("want ErrCatalogUnavailable, got %v", err)
	}
}

func TestAddOrderReturnsPanelID(t *testing.T) {
	srv := panelServer(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("bad form: %v", err)
		}
		if got := r.FormValue("action"); got != "add" {
			t.Errorf("action = %q, want add", got)
		}
		if got := r.FormValue("service"); got != "42" {
			t.Errorf("service = %q, want 42", got)
		}
		if got := r.FormValue("quantity"); got != "500" {
			t.Errorf("quantity = %q, want 500", got)
		}
		w.Write([]byte(`{"order": "12345"}`))
	})

	client := NewClient(srv.URL, "secret")
	id, err := client.AddOrder(context.Background(), "42", "https://example.com/p", 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 12345 {
		t.Fatalf("order id = %d, want 12345", id)
	}
}

func TestAddOrderRejected(t *testing.T) {
	srv := panelServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "link is invalid"}`))
	})

	client := NewClient(srv.URL, "secret")
	if _, err := client.AddOrder(context.Background(), "42", "bad", 500); !errors.Is(err, shop.ErrPlacementRejected) {
		t.Fatalf("want ErrPlacementRejected, got %v", err)
	}
}

func TestAddOrderWithoutID(t *testing.T) {
	srv := panelServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	client := NewClient(srv.URL, "secret")
	if _, err := client.AddOrder(context.Background(), "42", "https://example.com/p", 500); !errors.Is(err, shop.ErrPlacementRejected) {
		t.Fatalf("want ErrPlacementRejected, got %v", err)
	}
}

func TestGetOrderStatus(t *testing.T) {
	srv := panelServer(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("bad form: %v", err)
		}
		if got := r.FormValue("order"); got != "12345" {
			t.Errorf("order = %q, want 12345", got)
		}
		w.Write([]byte(`{"status": "In progress", "start_count": "150", "remains": 350, "charge": "2.5", "currency": "USD"}`))
	})

	client := NewClient(srv.URL, "secret")
	st, err := client.GetOrderStatus(context.Background(), 12345)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Status != "In progress" {
		t.Errorf("status = %q, want In progress", st.Status)
	}
	if st.StartCount != 150 || st.Remains != 350 {
		t.Errorf("progress = %d/%d, want 150/350", st.StartCount, st.Remains)
	}
	if st.Currency != "USD" {
		t.Errorf("currency = %q, want USD", st.Currency)
	}
}

func TestGetOrderStatusDefaults(t *testing.T) {
	srv := panelServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	client := NewClient(srv.URL, "secret")
	st, err := client.GetOrderStatus(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Status != "Unknown" {
		t.Fatalf("status = %q, want Unknown", st.Status)
	}
	if st.StartCount != 0 || st.Remains != 0 {
		t.Fatalf("progress = %d/%d, want zeroes", st.StartCount, st.Remains)
	}
}
