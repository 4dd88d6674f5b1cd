package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/splitnest/splitnest/internal/auth"
	"github.com/splitnest/splitnest/internal/ledger"
	"github.com/splitnest/splitnest/internal/middleware"
	"github.com/splitnest/splitnest/internal/models"
	"github.com/splitnest/splitnest/internal/report"
	"github.com/splitnest/splitnest/internal/storage/sqlite"
	"github.com/splitnest/splitnest/pkg/api"
)

// testAuthInterceptor returns a Connect interceptor that sets a fixed user ID
// in the context, bypassing JWT validation.
func testAuthInterceptor(userID string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			ctx = context.WithValue(ctx, middleware.UserIDKey, userID)
			return next(ctx, req)
		}
	}
}

// setupTestServer creates a test server with a temp SQLite database, seeded
// with three users. Expense calls are authenticated as "alice".
func setupTestServer(t *testing.T) (*api.AuthServiceClient, *api.ExpenseServiceClient, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	for _, name := range []string{"alice", "bob", "charlie"} {
		user := &models.User{
			ID:           name,
			Name:         strings.ToUpper(name[:1]) + name[1:],
			Email:        name + "@example.com",
			MobileNumber: "555-0100",
			PasswordHash: "unused",
			CreatedAt:    1,
		}
		if err := store.CreateUser(context.Background(), user); err != nil {
			t.Fatalf("failed to seed user %s: %v", name, err)
		}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("test-secret-key-for-service-tests", time.Hour)

	authSvc := NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store, logger)
	authPath, authHandler := api.NewAuthServiceHandler(authSvc,
		connect.WithInterceptors(middleware.OptionalAuth(jwtManager)))

	expenseSvc := NewExpenseService(ledger.New(store), nil, report.TextSink{}, logger)
	expensePath, expenseHandler := api.NewExpenseServiceHandler(expenseSvc,
		connect.WithInterceptors(testAuthInterceptor("alice")))

	mux := http.NewServeMux()
	mux.Handle(authPath, authHandler)
	mux.Handle(expensePath, expenseHandler)

	server := httptest.NewServer(mux)

	authClient := api.NewAuthServiceClient(http.DefaultClient, server.URL)
	expenseClient := api.NewExpenseServiceClient(http.DefaultClient, server.URL)

	cleanup := func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	}

	return authClient, expenseClient, cleanup
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func decRef(t *testing.T, s string) *decimal.Decimal {
	d := mustDec(t, s)
	return &d
}

func TestRegisterAndLogin(t *testing.T) {
	authClient, _, cleanup := setupTestServer(t)
	defer cleanup()

	registerResp, err := authClient.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Name:         "Dana",
		Email:        "dana@example.com",
		MobileNumber: "555-0104",
		Password:     "correct-horse-battery",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if registerResp.Msg.Token == "" {
		t.Error("expected non-empty token from Register")
	}
	if registerResp.Msg.User.ID == "" {
		t.Error("expected non-empty user ID from Register")
	}

	loginResp, err := authClient.Login(context.Background(), connect.NewRequest(&api.LoginRequest{
		Email:    "dana@example.com",
		Password: "correct-horse-battery",
	}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if loginResp.Msg.User.ID != registerResp.Msg.User.ID {
		t.Errorf("login returned user %s, registered %s", loginResp.Msg.User.ID, registerResp.Msg.User.ID)
	}
	if loginResp.Msg.Token == "" {
		t.Error("expected non-empty token from Login")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	authClient, _, cleanup := setupTestServer(t)
	defer cleanup()

	req := &api.RegisterRequest{
		Name:         "Dana",
		Email:        "dana@example.com",
		MobileNumber: "555-0104",
		Password:     "correct-horse-battery",
	}
	if _, err := authClient.Register(context.Background(), connect.NewRequest(req)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := authClient.Register(context.Background(), connect.NewRequest(req))
	if err == nil {
		t.Fatal("expected error for duplicate email")
	}
	if connect.CodeOf(err) != connect.CodeAlreadyExists {
		t.Errorf("expected CodeAlreadyExists, got %v", connect.CodeOf(err))
	}
}

func TestRegister_WeakPassword(t *testing.T) {
	authClient, _, cleanup := setupTestServer(t)
	defer cleanup()

	_, err := authClient.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Name:         "Dana",
		Email:        "dana@example.com",
		MobileNumber: "555-0104",
		Password:     "short",
	}))
	if err == nil {
		t.Fatal("expected error for weak password")
	}
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("expected CodeInvalidArgument, got %v", connect.CodeOf(err))
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	authClient, _, cleanup := setupTestServer(t)
	defer cleanup()

	if _, err := authClient.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Name:         "Dana",
		Email:        "dana@example.com",
		MobileNumber: "555-0104",
		Password:     "correct-horse-battery",
	})); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := authClient.Login(context.Background(), connect.NewRequest(&api.LoginRequest{
		Email:    "dana@example.com",
		Password: "wrong-password!",
	}))
	if err == nil {
		t.Fatal("expected error for wrong password")
	}
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("expected CodeUnauthenticated, got %v", connect.CodeOf(err))
	}
}

func TestGetUser(t *testing.T) {
	authClient, _, cleanup := setupTestServer(t)
	defer cleanup()

	registerResp, err := authClient.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Name:         "Dana",
		Email:        "dana@example.com",
		MobileNumber: "555-0104",
		Password:     "correct-horse-battery",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	token := registerResp.Msg.Token
	danaID := registerResp.Msg.User.ID

	t.Run("by id with token", func(t *testing.T) {
		req := connect.NewRequest(&api.GetUserRequest{UserID: danaID})
		req.Header().Set("Authorization", "Bearer "+token)

		resp, err := authClient.GetUser(context.Background(), req)
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if resp.Msg.User.ID != danaID {
			t.Errorf("user ID = %s, want %s", resp.Msg.User.ID, danaID)
		}
		if resp.Msg.User.Name != "Dana" {
			t.Errorf("user name = %s, want Dana", resp.Msg.User.Name)
		}
		if resp.Msg.User.Email != "dana@example.com" {
			t.Errorf("user email = %s", resp.Msg.User.Email)
		}
	})

	t.Run("empty id resolves to caller", func(t *testing.T) {
		req := connect.NewRequest(&api.GetUserRequest{})
		req.Header().Set("Authorization", "Bearer "+token)

		resp, err := authClient.GetUser(context.Background(), req)
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if resp.Msg.User.ID != danaID {
			t.Errorf("user ID = %s, want %s", resp.Msg.User.ID, danaID)
		}
	})

	t.Run("without token", func(t *testing.T) {
		_, err := authClient.GetUser(context.Background(), connect.NewRequest(&api.GetUserRequest{UserID: danaID}))
		if err == nil {
			t.Fatal("expected error without a token")
		}
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Errorf("expected CodeUnauthenticated, got %v", connect.CodeOf(err))
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		req := connect.NewRequest(&api.GetUserRequest{UserID: "no-such-user"})
		req.Header().Set("Authorization", "Bearer "+token)

		_, err := authClient.GetUser(context.Background(), req)
		if err == nil {
			t.Fatal("expected error for unknown user")
		}
		if connect.CodeOf(err) != connect.CodeNotFound {
			t.Errorf("expected CodeNotFound, got %v", connect.CodeOf(err))
		}
	})
}

func TestCreateExpense_EqualSplit(t *testing.T) {
	_, client, cleanup := setupTestServer(t)
	defer cleanup()

	resp, err := client.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		Description: "Dinner",
		Amount:      mustDec(t, "100.00"),
		SplitType:   "EQUAL",
		Shares: []api.ShareEntry{
			{UserID: "alice"},
			{UserID: "bob"},
			{UserID: "charlie"},
		},
	}))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	expense := resp.Msg.Expense
	if expense.ID == "" {
		t.Error("expected non-empty expense ID")
	}
	if expense.PaidByID != "alice" {
		t.Errorf("expected payer alice, got %s", expense.PaidByID)
	}
	if len(expense.Shares) != 3 {
		t.Fatalf("expected 3 shares, got %d", len(expense.Shares))
	}

	// First participant absorbs the extra cent.
	want := []string{"33.34", "33.33", "33.33"}
	sum := decimal.Zero
	for i, share := range expense.Shares {
		if got := share.Share.StringFixed(2); got != want[i] {
			t.Errorf("share %d: expected %s, got %s", i, want[i], got)
		}
		sum = sum.Add(share.Share)
	}
	if !sum.Equal(expense.Amount) {
		t.Errorf("shares sum to %s, amount is %s", sum, expense.Amount)
	}
}

func TestCreateExpense_ExactSplit(t *testing.T) {
	_, client, cleanup := setupTestServer(t)
	defer cleanup()

	resp, err := client.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		Description: "Groceries",
		Amount:      mustDec(t, "1250.00"),
		SplitType:   "EXACT",
		Shares: []api.ShareEntry{
			{UserID: "bob", Share: decRef(t, "370.00")},
			{UserID: "charlie", Share: decRef(t, "880.00")},
		},
	}))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	shares := resp.Msg.Expense.Shares
	if len(shares) != 2 {
		t.Fatalf("expected 2 shares, got %d", len(shares))
	}
	if got := shares[0].Share.StringFixed(2); got != "370.00" {
		t.Errorf("bob's share: expected 370.00, got %s", got)
	}
	if got := shares[1].Share.StringFixed(2); got != "880.00" {
		t.Errorf("charlie's share: expected 880.00, got %s", got)
	}
}

func TestCreateExpense_PercentageSplit(t *testing.T) {
	_, client, cleanup := setupTestServer(t)
	defer cleanup()

	resp, err := client.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		Description: "Rent",
		Amount:      mustDec(t, "1200.00"),
		SplitType:   "PERCENTAGE",
		Shares: []api.ShareEntry{
			{UserID: "alice", Percentage: decRef(t, "50")},
			{UserID: "bob", Percentage: decRef(t, "25")},
			{UserID: "charlie", Percentage: decRef(t, "25")},
		},
	}))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	want := []string{"600.00", "300.00", "300.00"}
	for i, share := range resp.Msg.Expense.Shares {
		if got := share.Share.StringFixed(2); got != want[i] {
			t.Errorf("share %d: expected %s, got %s", i, want[i], got)
		}
		if share.Percentage == nil {
			t.Errorf("share %d: expected percentage to be set", i)
		}
	}
}

func TestCreateExpense_ExactMismatch(t *testing.T) {
	_, client, cleanup := setupTestServer(t)
	defer cleanup()

	_, err := client.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		Description: "Groceries",
		Amount:      mustDec(t, "100.00"),
		SplitType:   "EXACT",
		Shares: []api.ShareEntry{
			{UserID: "bob", Share: decRef(t, "30.00")},
			{UserID: "charlie", Share: decRef(t, "30.00")},
		},
	}))
	if err == nil {
		t.Fatal("expected error for mismatched exact shares")
	}
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("expected CodeInvalidArgument, got %v", connect.CodeOf(err))
	}
}

func TestCreateExpense_UnknownParticipant(t *testing.T) {
	_, client, cleanup := setupTestServer(t)
	defer cleanup()

	_, err := client.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		Description: "Dinner",
		Amount:      mustDec(t, "100.00"),
		SplitType:   "EQUAL",
		Shares: []api.ShareEntry{
			{UserID: "alice"},
			{UserID: "mallory"},
		},
	}))
	if err == nil {
		t.Fatal("expected error for unknown participant")
	}
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("expected CodeInvalidArgument, got %v", connect.CodeOf(err))
	}
}

func TestListExpensesForUser(t *testing.T) {
	_, client, cleanup := setupTestServer(t)
	defer cleanup()

	for _, desc := range []string{"Dinner", "Taxi"} {
		_, err := client.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
			Description: desc,
			Amount:      mustDec(t, "90.00"),
			SplitType:   "EQUAL",
			Shares: []api.ShareEntry{
				{UserID: "alice"},
				{UserID: "bob"},
				{UserID: "charlie"},
			},
		}))
		if err != nil {
			t.Fatalf("CreateExpense %s failed: %v", desc, err)
		}
	}

	resp, err := client.ListExpensesForUser(context.Background(), connect.NewRequest(&api.ListExpensesForUserRequest{
		UserID: "bob",
	}))
	if err != nil {
		t.Fatalf("ListExpensesForUser failed: %v", err)
	}

	if len(resp.Msg.Expenses) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(resp.Msg.Expenses))
	}

	first := resp.Msg.Expenses[0]
	if first.Expense.Description != "Dinner" {
		t.Errorf("expected first entry to be Dinner, got %s", first.Expense.Description)
	}
	if got := first.Share.Share.StringFixed(2); got != "30.00" {
		t.Errorf("expected share 30.00, got %s", got)
	}
	if first.Expense.PaidByName != "Alice" {
		t.Errorf("expected payer name Alice, got %q", first.Expense.PaidByName)
	}
}

func TestListAllExpenses(t *testing.T) {
	_, client, cleanup := setupTestServer(t)
	defer cleanup()

	_, err := client.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		Description: "Dinner",
		Amount:      mustDec(t, "60.00"),
		SplitType:   "EQUAL",
		Shares: []api.ShareEntry{
			{UserID: "alice"},
			{UserID: "bob"},
		},
	}))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	resp, err := client.ListAllExpenses(context.Background(), connect.NewRequest(&api.ListAllExpensesRequest{}))
	if err != nil {
		t.Fatalf("ListAllExpenses failed: %v", err)
	}

	if len(resp.Msg.Expenses) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(resp.Msg.Expenses))
	}
	expense := resp.Msg.Expenses[0]
	if expense.PaidByName != "Alice" {
		t.Errorf("expected payer name Alice, got %q", expense.PaidByName)
	}
	if len(expense.Shares) != 2 {
		t.Errorf("expected 2 shares, got %d", len(expense.Shares))
	}
}

func TestDownloadBalanceReport(t *testing.T) {
	_, client, cleanup := setupTestServer(t)
	defer cleanup()

	_, err := client.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		Description: "Dinner",
		Amount:      mustDec(t, "90.00"),
		SplitType:   "EQUAL",
		Shares: []api.ShareEntry{
			{UserID: "alice"},
			{UserID: "bob"},
			{UserID: "charlie"},
		},
	}))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	resp, err := client.DownloadBalanceReport(context.Background(), connect.NewRequest(&api.DownloadBalanceReportRequest{}))
	if err != nil {
		t.Fatalf("DownloadBalanceReport failed: %v", err)
	}

	if resp.Msg.Filename != "balance-sheet.txt" {
		t.Errorf("expected filename balance-sheet.txt, got %s", resp.Msg.Filename)
	}
	if !strings.HasPrefix(resp.Msg.ContentType, "text/plain") {
		t.Errorf("expected text/plain content type, got %s", resp.Msg.ContentType)
	}
	for _, want := range []string{"Dinner", "30.00", "Alice"} {
		if !strings.Contains(resp.Msg.Content, want) {
			t.Errorf("report missing %q:\n%s", want, resp.Msg.Content)
		}
	}
}
