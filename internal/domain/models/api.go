package models

import "encoding/json"

// CalculationRequest is the raw calculator form as submitted over HTTP or the CLI.
// Numeric fields stay unparsed until boundary validation.
type CalculationRequest struct {
	Name           string      `json:"name"`
	SwatLength     json.Number `json:"swatLength"`
	CeblokPerMeter json.Number `json:"ceblokPerMeter"`
	SwatWidth      json.Number `json:"swatWidth"`
	TotalSwat      json.Number `json:"totalSwat"`
	MarketPrice    json.Number `json:"marketPrice"`
}

// CalculationResponse pairs a computed result with its rendered view.
type CalculationResponse struct {
	Result CalculationResult `json:"result"`
	View   CalculationView   `json:"view"`
}

// HistoryResponse lists saved results newest first.
type HistoryResponse struct {
	Items   []CalculationResponse `json:"items"`
	Message string                `json:"message,omitempty"`
}

// DeleteResponse reports whether a history entry was removed.
type DeleteResponse struct {
	Deleted bool   `json:"deleted"`
	Message string `json:"message,omitempty"`
}

// MessageResponse carries a human-readable notice.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries a human-readable failure.
type ErrorResponse struct {
	Error string `json:"error"`
}
