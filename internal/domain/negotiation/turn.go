package negotiation

import (
	"github.com/google/uuid"
	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

// AllowedTarget возвращает единственный отклик, на который actor может ответить:
// самый поздний из его собственных откликов и откликов противоположной стороны.
// При равном времени побеждает тот, что дальше в ветке.
func AllowedTarget(thread Thread, actor entity.Actor) (*entity.Response, bool) {
	opposite := actor.Role.Opposite()
	if opposite == "" {
		return nil, false
	}

	var target *entity.Response
	for _, r := range thread {
		if r.RespondentID != actor.UserID && r.RespondentRole != opposite {
			continue
		}
		if target == nil || !r.CreatedAt.Before(target.CreatedAt) {
			target = r
		}
	}
	return target, target != nil
}

// ValidateTarget проверяет, что встречное предложение адресовано допустимому отклику.
func ValidateTarget(thread Thread, actor entity.Actor, targetID uuid.UUID) (*entity.Response, error) {
	allowed, ok := AllowedTarget(thread, actor)
	if !ok {
		return nil, apperror.New(apperror.ErrCodePolicyViolation, "у вас нет права отвечать в этой ветке")
	}
	if allowed.ID != targetID {
		return nil, apperror.ErrStaleTarget
	}
	return allowed, nil
}
