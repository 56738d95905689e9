package calculator

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/mamadbah2/onionprice/internal/domain/models"
)

func referenceResult() models.CalculationResult {
	return Compute(models.CalculationInput{
		Name:           "Pak Budi",
		SwatLength:     10,
		CeblokPerMeter: 2,
		SwatWidth:      1,
		TotalSwat:      3,
		MarketPrice:    12000,
	}, time.Date(2024, time.March, 1, 10, 15, 30, 0, time.UTC))
}

func TestValidateResult(t *testing.T) {
	testCases := []struct {
		id        string
		mutate    func(*models.CalculationResult)
		expectErr bool
	}{
		{id: "computed result", mutate: func(*models.CalculationResult) {}},
		{id: "negative buy price is finite", mutate: func(r *models.CalculationResult) { r.BuyA = -1500 }},
		{id: "infinite kilo", mutate: func(r *models.CalculationResult) { r.Kilo = math.Inf(1) }, expectErr: true},
		{id: "negative infinite difference", mutate: func(r *models.CalculationResult) { r.DifferenceB = math.Inf(-1) }, expectErr: true},
		{id: "NaN market value", mutate: func(r *models.CalculationResult) { r.MarketValue = math.NaN() }, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			r := referenceResult()
			tc.mutate(&r)
			err := ValidateResult(r)
			if (err != nil) != tc.expectErr {
				t.Fatalf("err = %v, expectErr %v", err, tc.expectErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestComputeOverflowIsRejected(t *testing.T) {
	r := Compute(models.CalculationInput{
		Name:           "A",
		SwatLength:     1e200,
		CeblokPerMeter: 1e200,
		SwatWidth:      1,
		TotalSwat:      1,
		MarketPrice:    12000,
	}, time.Time{})

	if err := ValidateResult(r); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for overflowed figures, got %v", err)
	}
}

func TestVerifyResult(t *testing.T) {
	testCases := []struct {
		id       string
		mutate   func(*models.CalculationResult)
		expected error
	}{
		{id: "computed result", mutate: func(*models.CalculationResult) {}},
		{id: "different timestamp", mutate: func(r *models.CalculationResult) { r.Timestamp = "2023-01-01T00:00:00.000Z" }},
		{id: "tampered kilo", mutate: func(r *models.CalculationResult) { r.Kilo = -42 }, expected: ErrResultMismatch},
		{id: "tampered quintal", mutate: func(r *models.CalculationResult) { r.Quintal = 999 }, expected: ErrResultMismatch},
		{id: "inputs changed after compute", mutate: func(r *models.CalculationResult) { r.MarketPrice = 13000 }, expected: ErrResultMismatch},
		{id: "non-positive input", mutate: func(r *models.CalculationResult) { r.TotalSwat = 0 }, expected: ErrInvalidInput},
		{
			id: "overflowing inputs",
			mutate: func(r *models.CalculationResult) {
				r.SwatLength = 1e200
				r.CeblokPerMeter = 1e200
			},
			expected: ErrInvalidInput,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			r := referenceResult()
			tc.mutate(&r)
			err := VerifyResult(r)
			if tc.expected == nil {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			if !errors.Is(err, tc.expected) {
				t.Fatalf("expected %v, got %v", tc.expected, err)
			}
		})
	}
}
