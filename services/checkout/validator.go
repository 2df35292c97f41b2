package checkout

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	// stripe allows 50 keys, two are reserved for type and amount
	maxMetadataKeys        = 48
	maxMetadataKeyLength   = 40
	maxMetadataValueLength = 500

	// largest amount a single checkout line can carry
	defaultMaxDonation = 999999.99
)

// Validate checks the shape of a purchase request. It has no side effects.
func Validate(req CheckoutRequest, policy Policy) (ValidatedRequest, error) {
	if req.Type == "" {
		return ValidatedRequest{}, newFailure(ErrInvalidRequest, "Type is required", nil)
	}

	err := validateMetadata(req.Metadata)
	if err != nil {
		return ValidatedRequest{}, err
	}

	switch Kind(req.Type) {
	case KindTicket:
		return ValidatedRequest{
			Kind:     KindTicket,
			Metadata: req.Metadata,
		}, nil

	case KindDonation:
		amount, err := parseAmount(req.Amount)
		if err != nil || amount < policy.MinDonation || amount > maxDonation(policy) {
			return ValidatedRequest{}, newFailure(ErrInvalidAmount, "Valid donation amount is required", err)
		}
		return ValidatedRequest{
			Kind:     KindDonation,
			Amount:   amount,
			Metadata: req.Metadata,
		}, nil

	default:
		return ValidatedRequest{}, newFailure(ErrInvalidRequest, `Invalid type. Must be "ticket" or "donation"`, nil)
	}
}

func parseAmount(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, strconv.ErrSyntax
	}

	var amount float64
	err := json.Unmarshal(raw, &amount)
	if err != nil {
		var text string
		if json.Unmarshal(raw, &text) != nil {
			return 0, err
		}
		amount, err = strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return 0, err
		}
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, strconv.ErrRange
	}
	return amount, nil
}

func maxDonation(policy Policy) float64 {
	if policy.MaxDonation <= 0 {
		return defaultMaxDonation
	}
	return policy.MaxDonation
}

func validateMetadata(metadata map[string]string) error {
	if len(metadata) > maxMetadataKeys {
		return newFailure(ErrInvalidRequest, "Too many metadata entries", nil)
	}
	for key, value := range metadata {
		if key == "" || len(key) > maxMetadataKeyLength || len(value) > maxMetadataValueLength {
			return newFailure(ErrInvalidRequest, "Invalid metadata entry", nil)
		}
	}
	return nil
}
