package calculator

import (
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/onionprice/internal/domain/models"
)

const (
	kiloPerUnit     = 25
	kiloPerQuintal  = 100
	tindakDivisor   = 2
	categoryAMargin = 9000
	categoryBMargin = 7000
)

// Service computes pricing figures from validated field measurements.
type Service struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewService constructs a calculator service using the wall clock.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		logger: logger,
		now:    time.Now,
	}
}

// Compute derives a result stamped with the current instant. The input must already have
// passed Validate.
func (s *Service) Compute(input models.CalculationInput) models.CalculationResult {
	result := Compute(input, s.now())
	s.logger.Debug("calculation computed",
		zap.String("name", result.Name),
		zap.Float64("kilo", result.Kilo),
		zap.Float64("market_price", result.MarketPrice))
	return result
}

// Compute is the pure derivation behind Service.Compute. No rounding happens here.
func Compute(input models.CalculationInput, at time.Time) models.CalculationResult {
	kilo := input.CeblokPerMeter * input.SwatLength * input.SwatWidth * input.TotalSwat * kiloPerUnit

	return models.CalculationResult{
		Name:           input.Name,
		SwatLength:     input.SwatLength,
		CeblokPerMeter: input.CeblokPerMeter,
		SwatWidth:      input.SwatWidth,
		TotalSwat:      input.TotalSwat,
		MarketPrice:    input.MarketPrice,

		Kilo:        kilo,
		Quintal:     kilo / kiloPerQuintal,
		Tindak:      input.SwatLength / tindakDivisor,
		MarketValue: kilo * input.MarketPrice,
		BuyA:        kilo * (input.MarketPrice - categoryAMargin),
		BuyB:        kilo * (input.MarketPrice - categoryBMargin),
		DifferenceA: kilo * categoryAMargin,
		DifferenceB: kilo * categoryBMargin,

		Timestamp: at.UTC().Format(models.TimestampLayout),
	}
}
