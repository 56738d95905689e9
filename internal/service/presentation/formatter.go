package presentation

import (
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mamadbah2/onionprice/internal/domain/models"
)

const (
	// Amounts are shown in thousands: the last three digits move behind the decimal comma.
	displayDivisor = 1000
	currencySymbol = "Rp"
	dateLayout     = "02/01/2006 15.04.05"
)

// Formatter renders results the way the calculator shows them to farmers.
// Nothing it produces is ever stored or fed back into a calculation.
type Formatter struct {
	tag      language.Tag
	location *time.Location
	logger   *zap.Logger
}

// NewFormatter builds an Indonesian formatter showing dates in loc.
func NewFormatter(loc *time.Location, logger *zap.Logger) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Formatter{tag: language.Indonesian, location: loc, logger: logger}
}

// Format renders every figure of a result.
func (f *Formatter) Format(result models.CalculationResult) models.CalculationView {
	p := message.NewPrinter(f.tag)

	return models.CalculationView{
		Name:        result.Name,
		CreatedAt:   f.formatTimestamp(result),
		MarketPrice: rupiah(p, result.MarketPrice),
		Kilo:        number(p, result.Kilo/displayDivisor),
		Quintal:     number(p, result.Quintal/displayDivisor),
		Tindak:      number(p, result.Tindak),
		MarketValue: rupiah(p, result.MarketValue/displayDivisor),
		BuyA:        rupiah(p, result.BuyA/displayDivisor),
		BuyB:        rupiah(p, result.BuyB/displayDivisor),
		DifferenceA: rupiah(p, result.DifferenceA/displayDivisor),
		DifferenceB: rupiah(p, result.DifferenceB/displayDivisor),
	}
}

// FormatAll renders a list of results keeping its order.
func (f *Formatter) FormatAll(results []models.CalculationResult) []models.CalculationResponse {
	out := make([]models.CalculationResponse, 0, len(results))
	for _, result := range results {
		out = append(out, models.CalculationResponse{Result: result, View: f.Format(result)})
	}
	return out
}

func (f *Formatter) formatTimestamp(result models.CalculationResult) string {
	createdAt := result.CreatedAt()
	if createdAt.IsZero() {
		f.logger.Debug("result has unparsable timestamp", zap.String("timestamp", result.Timestamp))
		return result.Timestamp
	}
	return createdAt.In(f.location).Format(dateLayout)
}

func number(p *message.Printer, value float64) string {
	return p.Sprintf("%.2f", value)
}

func rupiah(p *message.Printer, value float64) string {
	if value < 0 {
		return "-" + currencySymbol + " " + number(p, math.Abs(value))
	}
	return currencySymbol + " " + number(p, value)
}
