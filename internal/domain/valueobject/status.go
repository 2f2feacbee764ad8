package valueobject

import (
	"strings"

	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

type PostStatus string

const (
	PostStatusOpen   PostStatus = "OPEN"
	PostStatusClosed PostStatus = "CLOSED"
)

func (s PostStatus) IsValid() bool {
	return s == PostStatusOpen || s == PostStatusClosed
}

// CanTransitionTo разрешает только OPEN -> CLOSED.
func (s PostStatus) CanTransitionTo(next PostStatus) bool {
	return s == PostStatusOpen && next == PostStatusClosed
}

type DealStatus string

const (
	DealStatusOpen     DealStatus = "OPEN"
	DealStatusFinished DealStatus = "FINISHED"
)

func (s DealStatus) IsValid() bool {
	return s == DealStatusOpen || s == DealStatusFinished
}

func (s DealStatus) CanTransitionTo(next DealStatus) bool {
	return s == DealStatusOpen && next == DealStatusFinished
}

type ReviewStatus string

const (
	ReviewStatusReview   ReviewStatus = "REVIEW"
	ReviewStatusApproved ReviewStatus = "APPROVED"
	ReviewStatusDenied   ReviewStatus = "DENIED"
)

func (s ReviewStatus) IsTerminal() bool {
	return s == ReviewStatusApproved || s == ReviewStatusDenied
}

// Decision - решение модератора по заявке на проверку.
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionDenied   Decision = "denied"
)

func ParseDecision(value string) (Decision, error) {
	switch Decision(strings.ToLower(value)) {
	case DecisionApproved:
		return DecisionApproved, nil
	case DecisionDenied:
		return DecisionDenied, nil
	}
	return "", apperror.New(apperror.ErrCodePolicyViolation, "решение должно быть approved или denied")
}

func (d Decision) Status() ReviewStatus {
	if d == DecisionApproved {
		return ReviewStatusApproved
	}
	return ReviewStatusDenied
}

// ComplaintStatusNew - начальная метка жалобы. Дальнейшие метки задаёт модератор.
const ComplaintStatusNew = "NEW"

const (
	MinFeedbackScore = 1
	MaxFeedbackScore = 5
)

func ValidateFeedbackScore(score int) error {
	if score < MinFeedbackScore || score > MaxFeedbackScore {
		return apperror.New(apperror.ErrCodeValidation, "оценка должна быть от 1 до 5")
	}
	return nil
}
