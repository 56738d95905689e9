package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mamadbah2/onionprice/internal/domain/models"
)

// ErrInvalidInput is returned when a field is blank, non-numeric, non-finite or not positive.
// Its text is shown to the operator verbatim.
var ErrInvalidInput = errors.New("Isi semua input dengan nilai lebih dari 0")

type numericField struct {
	label string
	value float64
}

// ParseInput converts a raw calculator form into validated measurements.
func ParseInput(req models.CalculationRequest) (models.CalculationInput, error) {
	input := models.CalculationInput{Name: strings.TrimSpace(req.Name)}

	targets := []struct {
		label string
		raw   string
		dst   *float64
	}{
		{"swatLength", req.SwatLength.String(), &input.SwatLength},
		{"ceblokPerMeter", req.CeblokPerMeter.String(), &input.CeblokPerMeter},
		{"swatWidth", req.SwatWidth.String(), &input.SwatWidth},
		{"totalSwat", req.TotalSwat.String(), &input.TotalSwat},
		{"marketPrice", req.MarketPrice.String(), &input.MarketPrice},
	}

	for _, target := range targets {
		value, err := strconv.ParseFloat(strings.TrimSpace(target.raw), 64)
		if err != nil {
			return models.CalculationInput{}, fmt.Errorf("%s: %w", target.label, ErrInvalidInput)
		}
		*target.dst = value
	}

	if err := Validate(input); err != nil {
		return models.CalculationInput{}, err
	}

	return input, nil
}

// Validate checks measurements that are already numeric.
func Validate(input models.CalculationInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("name: %w", ErrInvalidInput)
	}

	for _, f := range []numericField{
		{"swatLength", input.SwatLength},
		{"ceblokPerMeter", input.CeblokPerMeter},
		{"swatWidth", input.SwatWidth},
		{"totalSwat", input.TotalSwat},
		{"marketPrice", input.MarketPrice},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value <= 0 {
			return fmt.Errorf("%s: %w", f.label, ErrInvalidInput)
		}
	}

	return nil
}
