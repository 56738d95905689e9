package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/onionprice/internal/domain/models"
	"github.com/mamadbah2/onionprice/internal/repository/history"
	"github.com/mamadbah2/onionprice/internal/service/calculator"
	"github.com/mamadbah2/onionprice/internal/service/presentation"
)

// Operator-facing notices.
const (
	msgSaved             = "Hasil berhasil disimpan"
	msgSaveFailed        = "Hasil gagal disimpan"
	msgNothingToSave     = "Tidak ada hasil untuk disimpan"
	msgEmptyHistory      = "Tidak ada riwayat perhitungan"
	msgItemDeleted       = "Item dihapus"
	msgItemNotFound      = "Item tidak ditemukan"
	msgDeleteFailed      = "Item gagal dihapus"
	msgClearFailed       = "Riwayat gagal dihapus"
	msgHistoryCleared    = "Riwayat dihapus"
	msgConfirmRequired   = "Konfirmasi diperlukan: tambahkan confirm=true"
	msgInvalidIndex      = "Indeks tidak valid"
	msgHistoryUnreadable = "Riwayat tidak dapat dimuat"
)

// Calculator computes a result from validated input.
type Calculator interface {
	Compute(input models.CalculationInput) models.CalculationResult
}

// CalculationHandler exposes the calculator and its history over HTTP.
type CalculationHandler struct {
	calc      Calculator
	history   history.Repository
	formatter *presentation.Formatter
	logger    *zap.Logger
}

// NewCalculationHandler constructs the HTTP handler adapter.
func NewCalculationHandler(calc Calculator, repo history.Repository, formatter *presentation.Formatter, logger *zap.Logger) *CalculationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if formatter == nil {
		formatter = presentation.NewFormatter(nil, logger)
	}
	return &CalculationHandler{calc: calc, history: repo, formatter: formatter, logger: logger}
}

// Calculate validates the submitted form and returns the computed result without saving it.
func (h *CalculationHandler) Calculate(c *gin.Context) {
	var req models.CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("invalid calculation payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: calculator.ErrInvalidInput.Error()})
		return
	}

	input, err := calculator.ParseInput(req)
	if err != nil {
		h.logger.Debug("calculation input rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: calculator.ErrInvalidInput.Error()})
		return
	}

	result := h.calc.Compute(input)
	if err := calculator.ValidateResult(result); err != nil {
		h.logger.Debug("calculation overflowed", zap.Error(err))
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: calculator.ErrInvalidInput.Error()})
		return
	}

	c.JSON(http.StatusOK, models.CalculationResponse{Result: result, View: h.formatter.Format(result)})
}

// Save appends a previously computed result to the history. The figures must be the ones
// Compute derives from the submitted inputs.
func (h *CalculationHandler) Save(c *gin.Context) {
	var result models.CalculationResult
	if err := c.ShouldBindJSON(&result); err != nil {
		h.logger.Debug("invalid save payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msgNothingToSave})
		return
	}

	if result.CreatedAt().IsZero() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msgNothingToSave})
		return
	}

	if err := calculator.VerifyResult(result); err != nil {
		h.logger.Debug("save result rejected", zap.Error(err))
		message := calculator.ErrInvalidInput.Error()
		if errors.Is(err, calculator.ErrResultMismatch) {
			message = calculator.ErrResultMismatch.Error()
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: message})
		return
	}

	if err := h.history.Append(c.Request.Context(), result); err != nil {
		h.logger.Error("failed saving result", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: msgSaveFailed})
		return
	}

	c.JSON(http.StatusCreated, models.MessageResponse{Message: msgSaved})
}

// List returns the saved results, newest first.
func (h *CalculationHandler) List(c *gin.Context) {
	items, err := h.history.ListAllSortedByRecency(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: msgHistoryUnreadable})
		return
	}

	resp := models.HistoryResponse{Items: h.formatter.FormatAll(items)}
	if len(items) == 0 {
		resp.Message = msgEmptyHistory
	}
	c.JSON(http.StatusOK, resp)
}

// Delete removes the entry at the given position of the newest-first list. The caller must
// confirm with confirm=true.
func (h *CalculationHandler) Delete(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msgInvalidIndex})
		return
	}

	if !confirmed(c) {
		c.JSON(http.StatusPreconditionFailed, models.ErrorResponse{Error: msgConfirmRequired})
		return
	}

	deleted, err := h.history.DeleteAt(c.Request.Context(), index)
	if err != nil {
		h.logger.Error("failed deleting history entry", zap.Int("index", index), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: msgDeleteFailed})
		return
	}

	if !deleted {
		c.JSON(http.StatusNotFound, models.DeleteResponse{Deleted: false, Message: msgItemNotFound})
		return
	}

	c.JSON(http.StatusOK, models.DeleteResponse{Deleted: true, Message: msgItemDeleted})
}

// Clear empties the history. The caller must confirm with confirm=true.
func (h *CalculationHandler) Clear(c *gin.Context) {
	if !confirmed(c) {
		c.JSON(http.StatusPreconditionFailed, models.ErrorResponse{Error: msgConfirmRequired})
		return
	}

	if err := h.history.ClearAll(c.Request.Context()); err != nil {
		h.logger.Error("failed clearing history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: msgClearFailed})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: msgHistoryCleared})
}

func confirmed(c *gin.Context) bool {
	ok, err := strconv.ParseBool(c.Query("confirm"))
	return err == nil && ok
}
