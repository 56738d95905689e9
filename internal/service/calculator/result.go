package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/mamadbah2/onionprice/internal/domain/models"
)

// ErrResultMismatch is returned when a submitted result carries figures that Compute does not
// produce for its inputs. Its text is shown to the operator verbatim.
var ErrResultMismatch = errors.New("Hasil tidak sesuai dengan input")

func derivedFields(result models.CalculationResult) []numericField {
	return []numericField{
		{"kilo", result.Kilo},
		{"quintal", result.Quintal},
		{"tindak", result.Tindak},
		{"marketValue", result.MarketValue},
		{"buyA", result.BuyA},
		{"buyB", result.BuyB},
		{"differenceA", result.DifferenceA},
		{"differenceB", result.DifferenceB},
	}
}

// ValidateResult rejects results whose derived figures overflowed to a non-finite value.
func ValidateResult(result models.CalculationResult) error {
	for _, f := range derivedFields(result) {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s: %w", f.label, ErrInvalidInput)
		}
	}
	return nil
}

// VerifyResult checks that result holds exactly what Compute derives from its inputs.
func VerifyResult(result models.CalculationResult) error {
	input := result.Input()
	if err := Validate(input); err != nil {
		return err
	}

	expected := Compute(input, result.CreatedAt())
	if err := ValidateResult(expected); err != nil {
		return err
	}

	submitted := derivedFields(result)
	for i, f := range derivedFields(expected) {
		if submitted[i].value != f.value {
			return fmt.Errorf("%s: %w", f.label, ErrResultMismatch)
		}
	}
	return nil
}
