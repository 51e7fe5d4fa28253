// internal/api/api_integration_test.go
package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "simple-split/internal"
)

// testApp is the global application instance for testing.
var testApp *app.Application

// testServer is the httptest server.
var testServer *httptest.Server

// TestMain wires the application against a real Postgres instance. The suite
// only runs when TEST_DB_HOST is set; unit coverage lives in the service and
// algorithm packages.
func TestMain(m *testing.M) {
	if os.Getenv("TEST_DB_HOST") == "" {
		fmt.Fprintln(os.Stderr, "TEST_DB_HOST not set; skipping API integration tests")
		os.Exit(0)
	}
	setupEnvVars()

	testApp = app.NewApplication()
	if err := testApp.Initialize(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize test application: %v\n", err)
		os.Exit(1)
	}

	testServer = httptest.NewServer(testApp.HTTPHandler)
	defer testServer.Close()

	code := m.Run()

	if err := testApp.Shutdown(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to shutdown test application: %v\n", err)
		os.Exit(1)
	}

	os.Exit(code)
}

func setupEnvVars() {
	os.Setenv("DB_HOST", os.Getenv("TEST_DB_HOST"))
	if os.Getenv("DB_NAME") == "" {
		os.Setenv("DB_NAME", "splitdb_test")
	}
	if os.Getenv("DB_SSLMODE") == "" {
		os.Setenv("DB_SSLMODE", "disable")
	}
}

// clearDatabase truncates all tables so each test starts clean. Order is
// irrelevant with CASCADE but listed child-first for readability.
func clearDatabase(t *testing.T) {
	tables := []string{"transactions", "receivables", "debts", "expenses", "memberships", "groups", "wallets", "users"}
	for _, table := range tables {
		_, err := testApp.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE;", table))
		require.NoError(t, err, "Failed to truncate table %s", table)
	}
}

// doJSON sends a JSON request as the given user and decodes the response body.
func doJSON(t *testing.T, method, path string, userID int64, body interface{}, out interface{}) int {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, testServer.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		req.Header.Set("X-User-ID", fmt.Sprintf("%d", userID))
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func createUser(t *testing.T, name, email string) int64 {
	var user struct {
		ID int64 `json:"id"`
	}
	code := doJSON(t, http.MethodPost, "/api/users", 0, map[string]string{
		"name":  name,
		"email": email,
	}, &user)
	require.Equal(t, http.StatusCreated, code)
	require.NotZero(t, user.ID)
	return user.ID
}

func addFunds(t *testing.T, userID int64, amount string) {
	code := doJSON(t, http.MethodPost, "/api/user/wallet/add-funds", userID, map[string]interface{}{
		"amount": amount,
	}, nil)
	require.Equal(t, http.StatusOK, code)
}

func TestExpenseToSettlementFlow(t *testing.T) {
	clearDatabase(t)

	alice := createUser(t, "Alice", "alice@example.com")
	bob := createUser(t, "Bob", "bob@example.com")
	carol := createUser(t, "Carol", "carol@example.com")

	// Group with all three members.
	var group struct {
		ID int64 `json:"id"`
	}
	code := doJSON(t, http.MethodPost, "/api/groups", alice, map[string]string{
		"name": "trip",
	}, &group)
	require.Equal(t, http.StatusCreated, code)
	for _, email := range []string{"bob@example.com", "carol@example.com"} {
		code = doJSON(t, http.MethodPost, fmt.Sprintf("/api/groups/%d/members", group.ID), alice, map[string]string{
			"email": email,
		}, nil)
		require.Equal(t, http.StatusCreated, code)
	}

	// Alice pays 150 for dinner; an equal split leaves Bob and Carol owing 50 each.
	code = doJSON(t, http.MethodPost, fmt.Sprintf("/api/groups/%d/expenses", group.ID), alice, map[string]interface{}{
		"description": "dinner",
		"amount":      "150.00",
	}, nil)
	require.Equal(t, http.StatusCreated, code)

	var debts struct {
		ToPay []struct {
			ID     int64           `json:"id"`
			Amount decimal.Decimal `json:"amount"`
		} `json:"debts_to_pay"`
	}
	code = doJSON(t, http.MethodGet, "/api/debts", bob, nil, &debts)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, debts.ToPay, 1)
	assert.True(t, debts.ToPay[0].Amount.Equal(decimal.RequireFromString("50.00")))

	// Bob cannot pay on an empty wallet.
	debtID := debts.ToPay[0].ID
	code = doJSON(t, http.MethodPost, fmt.Sprintf("/api/debts/%d/pay", debtID), bob, nil, nil)
	assert.Equal(t, http.StatusPaymentRequired, code)

	// Funded, the payment goes through and Alice confirms it.
	addFunds(t, bob, "60.00")
	code = doJSON(t, http.MethodPost, fmt.Sprintf("/api/debts/%d/pay", debtID), bob, nil, nil)
	require.Equal(t, http.StatusOK, code)
	code = doJSON(t, http.MethodPost, fmt.Sprintf("/api/debts/%d/confirm", debtID), alice, nil, nil)
	require.Equal(t, http.StatusOK, code)

	// Alice received the payment; Bob kept the change.
	var summary struct {
		WalletBalance decimal.Decimal `json:"wallet_balance"`
	}
	code = doJSON(t, http.MethodGet, "/api/insights/summary", alice, nil, &summary)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, summary.WalletBalance.Equal(decimal.RequireFromString("50.00")))
	code = doJSON(t, http.MethodGet, "/api/insights/summary", bob, nil, &summary)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, summary.WalletBalance.Equal(decimal.RequireFromString("10.00")))

	_ = carol // Carol's 50.00 debt stays pending.
}

func TestMarketplaceFlow(t *testing.T) {
	clearDatabase(t)

	debtor := createUser(t, "Dan", "dan@example.com")
	seller := createUser(t, "Sue", "sue@example.com")
	buyer := createUser(t, "Bea", "bea@example.com")

	var group struct {
		ID int64 `json:"id"`
	}
	code := doJSON(t, http.MethodPost, "/api/groups", seller, map[string]string{"name": "flat"}, &group)
	require.Equal(t, http.StatusCreated, code)
	code = doJSON(t, http.MethodPost, fmt.Sprintf("/api/groups/%d/members", group.ID), seller, map[string]string{
		"email": "dan@example.com",
	}, nil)
	require.Equal(t, http.StatusCreated, code)

	// Sue fronts 200, Dan owes 100.
	code = doJSON(t, http.MethodPost, fmt.Sprintf("/api/groups/%d/expenses", group.ID), seller, map[string]interface{}{
		"description": "rent share",
		"amount":      "200.00",
	}, nil)
	require.Equal(t, http.StatusCreated, code)

	var debts struct {
		ToReceive []struct {
			ID int64 `json:"id"`
		} `json:"debts_to_receive"`
	}
	code = doJSON(t, http.MethodGet, "/api/debts", seller, nil, &debts)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, debts.ToReceive, 1)

	// Sue lists the claim at a discount and Bea buys it.
	var listing struct {
		ID string `json:"id"`
	}
	code = doJSON(t, http.MethodPost, "/api/marketplace/sell", seller, map[string]interface{}{
		"debt_id":       debts.ToReceive[0].ID,
		"selling_price": "80.00",
	}, &listing)
	require.Equal(t, http.StatusCreated, code)

	addFunds(t, buyer, "80.00")
	code = doJSON(t, http.MethodPost, "/api/marketplace/buy/"+listing.ID, buyer, nil, nil)
	require.Equal(t, http.StatusOK, code)

	// The claim now belongs to Bea; Sue holds the sale proceeds.
	code = doJSON(t, http.MethodGet, "/api/debts", buyer, nil, &debts)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, debts.ToReceive, 1)

	var summary struct {
		WalletBalance decimal.Decimal `json:"wallet_balance"`
	}
	code = doJSON(t, http.MethodGet, "/api/insights/summary", seller, nil, &summary)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, summary.WalletBalance.Equal(decimal.RequireFromString("80.00")))

	_ = debtor
}
