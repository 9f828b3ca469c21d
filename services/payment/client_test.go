package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type providerStub struct {
	tokenCalls   int64
	invoiceCalls int64
	expiresIn    int64
	tokenDelay   time.Duration
}

func (p *providerStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token", func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&p.tokenCalls, 1)
		if user, pass, ok := r.BasicAuth(); !ok || user != "client" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if p.tokenDelay > 0 {
			time.Sleep(p.tokenDelay)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": fmt.Sprintf("token-%d", n),
			"expires_in":   p.expiresIn,
		})
	})
	mux.HandleFunc("/invoice", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&p.invoiceCalls, 1)
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"invoice_id": "inv-1",
			"qr_text":    "qr",
		})
	})
	mux.HandleFunc("/payment/check", func(w http.ResponseWriter, r *http.Request) {
		var req checkInvoiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		paid := 0.0
		count := 0
		if req.ObjectID == "inv-paid" {
			paid = 20
			count = 1
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"count":       count,
			"paid_amount": paid,
		})
	})
	return mux
}

func newTestClient(t *testing.T, stub *providerStub) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)
	client := NewClient(Options{
		BaseURL:      srv.URL,
		ClientID:     "client",
		ClientSecret: "secret",
		InvoiceCode:  "TEST_INVOICE",
		CallbackURL:  srv.URL + "/callback",
		HTTPClient:   srv.Client(),
	})
	return client, srv
}

func TestCreateInvoiceReusesToken(t *testing.T) {
	stub := &providerStub{expiresIn: 3600}
	client, _ := newTestClient(t, stub)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		inv, err := client.CreateInvoice(ctx, "appt-1", 20, "deposit")
		if err != nil {
			t.Fatalf("CreateInvoice: %v", err)
		}
		if inv.InvoiceID != "inv-1" {
			t.Fatalf("invoice id = %s", inv.InvoiceID)
		}
	}
	if got := atomic.LoadInt64(&stub.tokenCalls); got != 1 {
		t.Errorf("token endpoint hit %d times, want 1", got)
	}
	if got := atomic.LoadInt64(&stub.invoiceCalls); got != 3 {
		t.Errorf("invoice endpoint hit %d times, want 3", got)
	}
}

func TestTokenRefreshAfterExpiry(t *testing.T) {
	// expires_in below the refresh margin: every call needs a new token.
	stub := &providerStub{expiresIn: 1}
	client, _ := newTestClient(t, stub)
	ctx := context.Background()

	if _, err := client.CreateInvoice(ctx, "appt-1", 20, "deposit"); err != nil {
		t.Fatalf("first invoice: %v", err)
	}
	if _, err := client.CreateInvoice(ctx, "appt-1", 20, "deposit"); err != nil {
		t.Fatalf("second invoice: %v", err)
	}
	if got := atomic.LoadInt64(&stub.tokenCalls); got != 2 {
		t.Errorf("token endpoint hit %d times, want 2", got)
	}
}

func TestConcurrentRefreshCollapses(t *testing.T) {
	stub := &providerStub{expiresIn: 3600, tokenDelay: 50 * time.Millisecond}
	client, _ := newTestClient(t, stub)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := client.CreateInvoice(ctx, "appt-1", 20, "deposit"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent invoice: %v", err)
	}
	if got := atomic.LoadInt64(&stub.tokenCalls); got != 1 {
		t.Errorf("token endpoint hit %d times, want 1", got)
	}
}

func TestCheckInvoice(t *testing.T) {
	stub := &providerStub{expiresIn: 3600}
	client, _ := newTestClient(t, stub)
	ctx := context.Background()

	status, err := client.CheckInvoice(ctx, "inv-paid")
	if err != nil {
		t.Fatalf("CheckInvoice: %v", err)
	}
	if !status.Paid || status.PaidAmount != 20 {
		t.Errorf("status = %+v, want paid 20", status)
	}

	status, err = client.CheckInvoice(ctx, "inv-unpaid")
	if err != nil {
		t.Fatalf("CheckInvoice: %v", err)
	}
	if status.Paid {
		t.Errorf("unpaid invoice reported paid")
	}
}

func TestCreateInvoiceRejectsNonPositiveAmount(t *testing.T) {
	stub := &providerStub{expiresIn: 3600}
	client, _ := newTestClient(t, stub)

	if _, err := client.CreateInvoice(context.Background(), "appt-1", 0, "deposit"); err == nil {
		t.Fatal("expected error for zero amount")
	}
}
