package valueobject

import (
	"math"

	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

// MaxPrice ограничивает сумму сверху, чтобы не переполнить NUMERIC(12,2).
const MaxPrice = 9_999_999_999.99

// NewPrice проверяет цену и округляет её до копеек.
func NewPrice(amount float64) (float64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, apperror.New(apperror.ErrCodeValidation, "некорректная цена")
	}
	if amount <= 0 {
		return 0, apperror.New(apperror.ErrCodeValidation, "цена должна быть положительной")
	}
	if amount > MaxPrice {
		return 0, apperror.New(apperror.ErrCodeValidation, "цена слишком большая")
	}
	return math.Round(amount*100) / 100, nil
}
