package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"purse/internal/core"
)

type requestIDKey struct{}

type errorResponse struct {
	Error string `json:"error"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

const maxBodyBytes = 1 << 16

// parseAmountBody reads `{"amount": ...}` from the request body. The amount
// may be a JSON number or a string like "350.00" or "R$ 350.00".
func parseAmountBody(r *http.Request) (float64, error) {
	var payload struct {
		Amount json.RawMessage `json:"amount"`
	}

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(&payload); err != nil {
		return 0, errors.New("invalid request body")
	}
	if len(payload.Amount) == 0 {
		return 0, errors.New("amount is required")
	}

	amount, err := decodeAmount(payload.Amount)
	if err != nil {
		return 0, err
	}
	if err := core.ValidateAmount(amount); err != nil {
		return 0, fmt.Errorf("invalid amount: %w", err)
	}
	return amount, nil
}

func decodeAmount(raw json.RawMessage) (float64, error) {
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num, nil
	}

	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return 0, errors.New("amount must be a number or a string")
	}

	str = strings.TrimSpace(str)
	str = strings.TrimSpace(strings.TrimPrefix(str, core.CurrencyPrefix))
	num, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, errors.New("amount is not a valid number")
	}
	return num, nil
}

// writeJSON serializes v with the right headers. Encoding failures are only
// logged; the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
