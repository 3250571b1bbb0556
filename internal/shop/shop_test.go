package shop

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Canyildiz1386/SultanPanelBot/internal/models"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ── fakes ────────────────────────────────────────────────────────────

type fakeCatalog struct {
	mu          sync.Mutex
	svc         *CatalogService
	addErr      error
	nextOrderID int64
	addCalls    int
}

func (f *fakeCatalog) FindService(ctx context.Context, serviceID string) (*CatalogService, error) {
	if f.svc == nil || f.svc.ID != serviceID {
		return nil, nil
	}
	svc := *f.svc
	return &svc, nil
}

func (f *fakeCatalog) AddOrder(ctx context.Context, serviceID, link string, quantity int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls++
	if f.addErr != nil {
		return 0, f.addErr
	}
	f.nextOrderID++
	return f.nextOrderID, nil
}

type fakeWallet struct {
	mu      sync.Mutex
	balance decimal.Decimal
}

func (f *fakeWallet) Debit(numID int64, amount decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.balance.LessThan(amount) {
		return ErrInsufficientCredit
	}
	f.balance = f.balance.Sub(amount)
	return nil
}

func (f *fakeWallet) Refund(numID int64, amount decimal.Decimal) error {
	return f.Credit(numID, amount)
}

func (f *fakeWallet) Credit(numID int64, amount decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balance = f.balance.Add(amount)
	return nil
}

func (f *fakeWallet) Balance() decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balance
}

type fakeOrders struct {
	mu      sync.Mutex
	created []models.Order
	err     error
}

func (f *fakeOrders) Create(order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, *order)
	return nil
}

type fakePayments struct {
	mu sync.Mutex
	m  map[string]*models.Payment
}

func newFakePayments() *fakePayments {
	return &fakePayments{m: make(map[string]*models.Payment)}
}

func (f *fakePayments) Create(p *models.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.m[p.ID] = &cp
	return nil
}

func (f *fakePayments) FindByID(id string) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePayments) Confirm(id, refID, gateway string, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.m[id]
	if !ok {
		return false, ErrNotFound
	}
	if p.Status != models.PaymentStatusPending {
		return false, nil
	}
	p.Status = models.PaymentStatusConfirmed
	p.RefID = refID
	p.Gateway = gateway
	return true, nil
}

type fakeRates struct {
	rate    decimal.Decimal
	unit    int
	unitErr error
}

func (f *fakeRates) ConversionRate() (decimal.Decimal, error) { return f.rate, nil }

func (f *fakeRates) UnitCents() (int, error) {
	if f.unitErr != nil {
		return 0, f.unitErr
	}
	return f.unit, nil
}

// testEngine prices every unit at 0.01 credits and grants 10 credits per
// dollar, which keeps the arithmetic in the assertions readable.
func testEngine(catalog *fakeCatalog, wallet *fakeWallet, orders *fakeOrders, payments *fakePayments, rates *fakeRates) *Engine {
	price := func(ratePer1000 decimal.Decimal, quantity int, conversionRate decimal.Decimal, unitCents int) (decimal.Decimal, error) {
		if unitCents <= 0 {
			return decimal.Zero, ErrPricingNotConfigured
		}
		return decimal.NewFromInt(int64(quantity)).Div(decimal.NewFromInt(100)), nil
	}
	credits := func(amountUSD decimal.Decimal, unitCents int) (decimal.Decimal, error) {
		if unitCents <= 0 {
			return decimal.Zero, ErrPricingNotConfigured
		}
		return amountUSD.Mul(decimal.NewFromInt(10)), nil
	}
	discount := func(amountUSD decimal.Decimal, percent int) decimal.Decimal {
		if percent <= 0 || percent > 100 {
			return amountUSD
		}
		factor := decimal.NewFromInt(int64(100 - percent)).Div(decimal.NewFromInt(100))
		return amountUSD.Mul(factor)
	}
	return NewEngine(catalog, wallet, orders, payments, rates, price, credits, discount, zap.NewNop())
}

func testService() *CatalogService {
	return &CatalogService{
		ID:       "42",
		Name:     "Follower Pack",
		Category: "Instagram Followers",
		Rate:     d("1000"),
		Min:      100,
		Max:      10000,
	}
}

func testUser() *models.User {
	return &models.User{ID: 1, NumID: 777}
}

// ── order placement ──────────────────────────────────────────────────

func TestPlaceOrderDebitsAndPersists(t *testing.T) {
	catalog := &fakeCatalog{svc: testService()}
	wallet := &fakeWallet{balance: d("100")}
	orders := &fakeOrders{}

	engine := testEngine(catalog, wallet, orders, newFakePayments(), &fakeRates{rate: d("60000"), unit: 10})

	order, quote, err := engine.PlaceOrder(context.Background(), testUser(), "42", "https://example.com/p", 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.OrderID == 0 {
		t.Fatal("order should carry the panel-issued id")
	}
	if order.Status != models.OrderStatusPending {
		t.Fatalf("status = %q, want pending", order.Status)
	}
	if !quote.CreditCost.Equal(d("5")) {
		t.Fatalf("quote cost = %s, want 5", quote.CreditCost)
	}
	if !wallet.Balance().Equal(d("95")) {
		t.Fatalf("balance = %s, want 95", wallet.Balance())
	}
	if len(orders.created) != 1 {
		t.Fatalf("persisted %d orders, want 1", len(orders.created))
	}
}

func TestPlaceOrderRefundsOnRejection(t *testing.T) {
	catalog := &fakeCatalog{svc: testService(), addErr: ErrPlacementRejected}
	wallet := &fakeWallet{balance: d("100")}
	orders := &fakeOrders{}

	engine := testEngine(catalog, wallet, orders, newFakePayments(), &fakeRates{rate: d("60000"), unit: 10})

	_, _, err := engine.PlaceOrder(context.Background(), testUser(), "42", "https://example.com/p", 500)
	if !errors.Is(err, ErrPlacementRejected) {
		t.Fatalf("want ErrPlacementRejected, got %v", err)
	}
	if !wallet.Balance().Equal(d("100")) {
		t.Fatalf("balance after refund = %s, want 100", wallet.Balance())
	}
	if len(orders.created) != 0 {
		t.Fatal("rejected order must not be persisted")
	}
}

func TestPlaceOrderInsufficientCredit(t *testing.T) {
	catalog := &fakeCatalog{svc: testService()}
	wallet := &fakeWallet{balance: d("1")}
	orders := &fakeOrders{}

	engine := testEngine(catalog, wallet, orders, newFakePayments(), &fakeRates{rate: d("60000"), unit: 10})

	_, quote, err := engine.PlaceOrder(context.Background(), testUser(), "42", "https://example.com/p", 500)
	if !errors.Is(err, ErrInsufficientCredit) {
		t.Fatalf("want ErrInsufficientCredit, got %v", err)
	}
	if quote == nil || !quote.CreditCost.Equal(d("5")) {
		t.Fatal("the failed quote should still report the cost")
	}
	if catalog.addCalls != 0 {
		t.Fatal("the panel must not see an order the wallet cannot pay for")
	}
	if !wallet.Balance().Equal(d("1")) {
		t.Fatalf("balance = %s, want 1", wallet.Balance())
	}
}

func TestPlaceOrderQuantityBounds(t *testing.T) {
	catalog := &fakeCatalog{svc: testService()}
	wallet := &fakeWallet{balance: d("100")}

	engine := testEngine(catalog, wallet, &fakeOrders{}, newFakePayments(), &fakeRates{rate: d("60000"), unit: 10})

	for _, quantity := range []int{99, 10001} {
		_, _, err := engine.PlaceOrder(context.Background(), testUser(), "42", "https://example.com/p", quantity)
		if !errors.Is(err, ErrQuantityOutOfRange) {
			t.Fatalf("quantity %d: want ErrQuantityOutOfRange, got %v", quantity, err)
		}
	}
	if !wallet.Balance().Equal(d("100")) {
		t.Fatal("out-of-range quantities must not touch the wallet")
	}
}

func TestPlaceOrderUnknownService(t *testing.T) {
	engine := testEngine(&fakeCatalog{svc: testService()}, &fakeWallet{balance: d("100")},
		&fakeOrders{}, newFakePayments(), &fakeRates{rate: d("60000"), unit: 10})

	_, _, err := engine.PlaceOrder(context.Background(), testUser(), "404", "https://example.com/p", 500)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestPlaceOrderPricingNotConfigured(t *testing.T) {
	wallet := &fakeWallet{balance: d("100")}
	engine := testEngine(&fakeCatalog{svc: testService()}, wallet,
		&fakeOrders{}, newFakePayments(), &fakeRates{rate: d("60000"), unitErr: ErrPricingNotConfigured})

	_, _, err := engine.PlaceOrder(context.Background(), testUser(), "42", "https://example.com/p", 500)
	if !errors.Is(err, ErrPricingNotConfigured) {
		t.Fatalf("want ErrPricingNotConfigured, got %v", err)
	}
	if !wallet.Balance().Equal(d("100")) {
		t.Fatal("an unpriceable order must not touch the wallet")
	}
}

func TestConcurrentPlacementsNeverOverspend(t *testing.T) {
	catalog := &fakeCatalog{svc: testService()}
	// 7 credits: each 500-unit order costs 5, so only one can win.
	wallet := &fakeWallet{balance: d("7")}
	orders := &fakeOrders{}

	engine := testEngine(catalog, wallet, orders, newFakePayments(), &fakeRates{rate: d("60000"), unit: 10})

	var wg sync.WaitGroup
	results := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := engine.PlaceOrder(context.Background(), testUser(), "42", "https://example.com/p", 500)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	placed := 0
	for err := range results {
		if err == nil {
			placed++
		} else if !errors.Is(err, ErrInsufficientCredit) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if placed != 1 {
		t.Fatalf("placed %d orders from a 7-credit balance, want 1", placed)
	}
	if wallet.Balance().Sign() < 0 {
		t.Fatalf("balance went negative: %s", wallet.Balance())
	}
}

// ── top-ups ──────────────────────────────────────────────────────────

func TestStartTopUpFreezesDiscountedAmountAndCredits(t *testing.T) {
	payments := newFakePayments()
	engine := testEngine(&fakeCatalog{}, &fakeWallet{}, &fakeOrders{}, payments,
		&fakeRates{rate: d("60000"), unit: 10})

	p, err := engine.StartTopUp(testUser(), d("10"), "SPRING", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.AmountUSD.Equal(d("8")) {
		t.Fatalf("charged amount = %s, want 8", p.AmountUSD)
	}
	if !p.Credits.Equal(d("80")) {
		t.Fatalf("credits = %s, want 80 for the charged amount", p.Credits)
	}
	if p.Status != models.PaymentStatusPending {
		t.Fatalf("status = %q, want pending", p.Status)
	}
	if p.ID == "" {
		t.Fatal("payment needs an id to hand to the processor")
	}
	if p.Gateway != "" {
		t.Fatalf("gateway = %q, must stay unset until a webhook confirms", p.Gateway)
	}
}

func TestStartTopUpRejectsNonPositiveAmounts(t *testing.T) {
	engine := testEngine(&fakeCatalog{}, &fakeWallet{}, &fakeOrders{}, newFakePayments(),
		&fakeRates{rate: d("60000"), unit: 10})

	for _, amount := range []string{"0", "-3"} {
		if _, err := engine.StartTopUp(testUser(), d(amount), "", 0); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("amount %s: want ErrInvalidInput, got %v", amount, err)
		}
	}
}

func TestConfirmTopUpCreditsOnce(t *testing.T) {
	payments := newFakePayments()
	wallet := &fakeWallet{}
	engine := testEngine(&fakeCatalog{}, wallet, &fakeOrders{}, payments,
		&fakeRates{rate: d("60000"), unit: 10})

	p, err := engine.StartTopUp(testUser(), d("5"), "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	confirmed, credited, err := engine.ConfirmTopUp(p.ID, "batch-1", "perfectmoney")
	if err != nil {
		t.Fatalf("first confirmation failed: %v", err)
	}
	if !credited {
		t.Fatal("first confirmation should credit")
	}
	if !wallet.Balance().Equal(d("50")) {
		t.Fatalf("balance = %s, want 50", wallet.Balance())
	}
	if confirmed.Gateway != "perfectmoney" {
		t.Fatalf("gateway = %q, want the processor that confirmed", confirmed.Gateway)
	}

	stored, err := payments.FindByID(p.ID)
	if err != nil {
		t.Fatalf("lookup after confirmation: %v", err)
	}
	if stored.Gateway != "perfectmoney" {
		t.Fatalf("stored gateway = %q, want perfectmoney", stored.Gateway)
	}

	// Duplicate webhook, even from the other processor: no second grant.
	_, credited, err = engine.ConfirmTopUp(p.ID, "payeer:dup", "payeer")
	if err != nil {
		t.Fatalf("duplicate confirmation errored: %v", err)
	}
	if credited {
		t.Fatal("duplicate confirmation must not credit again")
	}
	if !wallet.Balance().Equal(d("50")) {
		t.Fatalf("balance after duplicate = %s, want 50", wallet.Balance())
	}
	if stored, err = payments.FindByID(p.ID); err != nil || stored.Gateway != "perfectmoney" {
		t.Fatalf("duplicate must not overwrite the gateway: %q, %v", stored.Gateway, err)
	}
}

func TestConfirmTopUpUnknownPayment(t *testing.T) {
	engine := testEngine(&fakeCatalog{}, &fakeWallet{}, &fakeOrders{}, newFakePayments(),
		&fakeRates{rate: d("60000"), unit: 10})

	if _, _, err := engine.ConfirmTopUp("missing", "ref", "payeer"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestIsLocalError(t *testing.T) {
	for _, err := range []error{ErrInvalidInput, ErrQuantityOutOfRange, ErrInsufficientCredit} {
		if !IsLocalError(err) {
			t.Fatalf("%v should be a local error", err)
		}
	}
	if IsLocalError(ErrCatalogUnavailable) {
		t.Fatal("catalog unavailability is not a local error")
	}
}
