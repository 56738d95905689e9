package models

import "time"

// TimestampLayout is the ISO-8601 layout used for CalculationResult timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// CalculationInput captures the field measurements submitted for one calculation.
type CalculationInput struct {
	Name           string
	SwatLength     float64
	CeblokPerMeter float64
	SwatWidth      float64
	TotalSwat      float64
	MarketPrice    float64
}

// CalculationResult is the immutable record produced by the calculator and kept in history.
type CalculationResult struct {
	Name           string  `json:"name" bson:"name"`
	SwatLength     float64 `json:"swatLength" bson:"swat_length"`
	CeblokPerMeter float64 `json:"ceblokPerMeter" bson:"ceblok_per_meter"`
	SwatWidth      float64 `json:"swatWidth" bson:"swat_width"`
	TotalSwat      float64 `json:"totalSwat" bson:"total_swat"`
	MarketPrice    float64 `json:"marketPrice" bson:"market_price"`

	Kilo        float64 `json:"kilo" bson:"kilo"`
	Quintal     float64 `json:"quintal" bson:"quintal"`
	Tindak      float64 `json:"tindak" bson:"tindak"`
	MarketValue float64 `json:"marketValue" bson:"market_value"`
	BuyA        float64 `json:"buyA" bson:"buy_a"`
	BuyB        float64 `json:"buyB" bson:"buy_b"`
	DifferenceA float64 `json:"differenceA" bson:"difference_a"`
	DifferenceB float64 `json:"differenceB" bson:"difference_b"`

	Timestamp string `json:"timestamp" bson:"timestamp"`
}

// Input returns the measurements the result was computed from.
func (r CalculationResult) Input() CalculationInput {
	return CalculationInput{
		Name:           r.Name,
		SwatLength:     r.SwatLength,
		CeblokPerMeter: r.CeblokPerMeter,
		SwatWidth:      r.SwatWidth,
		TotalSwat:      r.TotalSwat,
		MarketPrice:    r.MarketPrice,
	}
}

// CreatedAt parses the record timestamp. Unparsable timestamps yield the zero time.
func (r CalculationResult) CreatedAt() time.Time {
	t, err := time.Parse(time.RFC3339Nano, r.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// CalculationView holds the locale-formatted strings rendered for a result.
type CalculationView struct {
	Name        string `json:"name"`
	CreatedAt   string `json:"createdAt"`
	MarketPrice string `json:"marketPrice"`
	Kilo        string `json:"kilo"`
	Quintal     string `json:"quintal"`
	Tindak      string `json:"tindak"`
	MarketValue string `json:"marketValue"`
	BuyA        string `json:"buyA"`
	BuyB        string `json:"buyB"`
	DifferenceA string `json:"differenceA"`
	DifferenceB string `json:"differenceB"`
}
