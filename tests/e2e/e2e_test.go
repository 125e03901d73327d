//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"
)

type registerResponse struct {
	UserID int64 `json:"user_id"`
}

type loginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	UserID    int64  `json:"user_id"`
	FirstName string `json:"first_name"`
}

type productResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	OwnerID  int64   `json:"owner_id"`
}

type cartLineResponse struct {
	ProductID    int64   `json:"product_id"`
	Quantity     int     `json:"quantity"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
}

type cartResponse struct {
	Data []cartLineResponse `json:"data"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestE2ESmoke(t *testing.T) {
	baseURL := envOrDefault("MERCATO_BASE_URL", "http://localhost:8080")
	client := &http.Client{Timeout: 10 * time.Second}

	suffix := fmt.Sprintf("%d", time.Now().UnixNano())
	sellerEmail := fmt.Sprintf("seller-%s@example.com", suffix)
	buyerEmail := fmt.Sprintf("buyer-%s@example.com", suffix)
	password := "correct horse battery"

	// Seller registers, logs in and lists a product.
	registerUser(t, client, baseURL, "Ada", "Seller", sellerEmail, password)
	sellerToken := login(t, client, baseURL, sellerEmail, password)
	product := createProduct(t, client, baseURL, sellerToken, "E2E Gadget "+suffix, 9.99, 10)

	// The product is publicly visible.
	fetched := getProduct(t, client, baseURL, product.ID)
	if fetched.Name != product.Name {
		t.Fatalf("product name = %q, want %q", fetched.Name, product.Name)
	}

	// Buyer registers and logs in.
	registerUser(t, client, baseURL, "Bert", "Buyer", buyerEmail, password)
	buyerToken := login(t, client, baseURL, buyerEmail, password)

	// Two concurrent adds of the same product accumulate quantity.
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, _, err := addToCart(client, baseURL, buyerToken, product.ID, 2)
			if err != nil {
				t.Errorf("concurrent cart add: %v", err)
				return
			}
			if status != http.StatusCreated {
				t.Errorf("cart add status = %d, want %d", status, http.StatusCreated)
			}
		}()
	}
	wg.Wait()

	cart := viewCart(t, client, baseURL, buyerToken)
	if len(cart.Data) != 1 {
		t.Fatalf("cart has %d lines, want 1", len(cart.Data))
	}
	if cart.Data[0].Quantity != 4 {
		t.Fatalf("cart quantity = %d, want 4", cart.Data[0].Quantity)
	}

	// The buyer cannot delete the seller's product, and the failure is
	// indistinguishable from a missing product.
	buyerDelete := deleteProduct(t, client, baseURL, buyerToken, product.ID)
	missingDelete := deleteProduct(t, client, baseURL, buyerToken, 999999999)
	if buyerDelete != http.StatusNotFound || missingDelete != http.StatusNotFound {
		t.Fatalf("non-owner delete = %d, missing delete = %d, want both %d",
			buyerDelete, missingDelete, http.StatusNotFound)
	}

	// Removing the line empties the cart.
	removeCartLine(t, client, baseURL, buyerToken, product.ID)
	cart = viewCart(t, client, baseURL, buyerToken)
	if len(cart.Data) != 0 {
		t.Fatalf("cart has %d lines after removal, want 0", len(cart.Data))
	}

	// Seller deletes the product; adding it afterwards fails.
	if status := deleteProduct(t, client, baseURL, sellerToken, product.ID); status != http.StatusNoContent {
		t.Fatalf("owner delete status = %d, want %d", status, http.StatusNoContent)
	}
	status, errResp, err := addToCart(client, baseURL, buyerToken, product.ID, 1)
	if err != nil {
		t.Fatalf("add deleted product: %v", err)
	}
	if status != http.StatusNotFound {
		t.Fatalf("add deleted product status = %d, want %d", status, http.StatusNotFound)
	}
	if errResp.Error.Code != "NOT_FOUND" {
		t.Fatalf("add deleted product code = %q, want NOT_FOUND", errResp.Error.Code)
	}
}

func TestE2EAuthRejections(t *testing.T) {
	baseURL := envOrDefault("MERCATO_BASE_URL", "http://localhost:8080")
	client := &http.Client{Timeout: 10 * time.Second}

	req, err := http.NewRequest(http.MethodGet, baseURL+"/cart", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer not-a-token")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}

	var errResp errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if errResp.Error.Message != "invalid token" {
		t.Fatalf("message = %q, want %q", errResp.Error.Message, "invalid token")
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func registerUser(t *testing.T, client *http.Client, baseURL, first, last, email, password string) int64 {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"first_name": first,
		"last_name":  last,
		"email":      email,
		"password":   password,
		"address":    "2 Test Lane",
	})

	resp, err := client.Post(baseURL+"/register", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", resp.StatusCode, readBody(t, resp))
	}

	var out registerResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return out.UserID
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})

	resp, err := client.Post(baseURL+"/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", resp.StatusCode, readBody(t, resp))
	}

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if out.TokenType != "bearer" {
		t.Fatalf("token_type = %q, want bearer", out.TokenType)
	}
	return out.Token
}

func createProduct(t *testing.T, client *http.Client, baseURL, token, name string, price float64, quantity int) productResponse {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("name", name)
	_ = mw.WriteField("description", "created by the smoke test")
	_ = mw.WriteField("price", strconv.FormatFloat(price, 'f', 2, 64))
	_ = mw.WriteField("quantity", strconv.Itoa(quantity))
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/products", &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create product status = %d, body = %s", resp.StatusCode, readBody(t, resp))
	}

	var out productResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode product response: %v", err)
	}
	return out
}

func getProduct(t *testing.T, client *http.Client, baseURL string, id int64) productResponse {
	t.Helper()

	resp, err := client.Get(fmt.Sprintf("%s/products/%d", baseURL, id))
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get product status = %d, body = %s", resp.StatusCode, readBody(t, resp))
	}

	var out productResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode product response: %v", err)
	}
	return out
}

func deleteProduct(t *testing.T, client *http.Client, baseURL, token string, id int64) int {
	t.Helper()

	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/products/%d", baseURL, id), nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("delete product: %v", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode
}

// addToCart avoids testing.T so it is safe to call from spawned
// goroutines.
func addToCart(client *http.Client, baseURL, token string, productID int64, quantity int) (int, errorResponse, error) {
	var errResp errorResponse

	body, err := json.Marshal(map[string]any{
		"product_id": productID,
		"quantity":   quantity,
	})
	if err != nil {
		return 0, errResp, fmt.Errorf("marshal body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/cart", bytes.NewReader(body))
	if err != nil {
		return 0, errResp, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, errResp, fmt.Errorf("add to cart: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
	} else {
		io.Copy(io.Discard, resp.Body)
	}
	return resp.StatusCode, errResp, nil
}

func viewCart(t *testing.T, client *http.Client, baseURL, token string) cartResponse {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, baseURL+"/cart", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("view cart: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("view cart status = %d, body = %s", resp.StatusCode, readBody(t, resp))
	}

	var out cartResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode cart response: %v", err)
	}
	return out
}

func removeCartLine(t *testing.T, client *http.Client, baseURL, token string, productID int64) {
	t.Helper()

	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/cart/%d", baseURL, productID), nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("remove cart line: %v", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("remove cart line status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "<unreadable>"
	}
	return string(b)
}
