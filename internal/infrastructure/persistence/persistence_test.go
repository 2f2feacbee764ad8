package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/repository"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

func TestComplaintListQuery_NoFilter(t *testing.T) {
	query, args := complaintListQuery(repository.ComplaintFilter{})
	assert.Equal(t, "SELECT "+complaintColumns+" FROM complaints ORDER BY created_at DESC", query)
	assert.Empty(t, args)
}

func TestComplaintListQuery_AllFilters(t *testing.T) {
	moderatorID := uuid.New()
	query, args := complaintListQuery(repository.ComplaintFilter{
		Scope:         repository.ComplaintScopeMine,
		ModeratorID:   moderatorID,
		Status:        "in_progress",
		PlaintiffRole: valueobject.RoleTeacher,
		Ascending:     true,
	})
	assert.Contains(t, query, "WHERE moderator_id = $1 AND LOWER(status) = LOWER($2) AND plaintiff_role = $3")
	assert.Contains(t, query, "ORDER BY created_at ASC")
	assert.Equal(t, []any{moderatorID, "in_progress", "teacher"}, args)
}

func TestComplaintListQuery_Unassigned(t *testing.T) {
	query, args := complaintListQuery(repository.ComplaintFilter{Scope: repository.ComplaintScopeUnassigned, Status: "NEW"})
	assert.Contains(t, query, "WHERE moderator_id IS NULL AND LOWER(status) = LOWER($1)")
	assert.Equal(t, []any{"NEW"}, args)
}

func TestOpenPostsQuery_Defaults(t *testing.T) {
	query, args := openPostsQuery(repository.PostFilter{})
	assert.Equal(t, "SELECT "+postColumns+" FROM posts WHERE status = 'OPEN' ORDER BY created_at DESC, id DESC", query)
	assert.Empty(t, args)
}

func TestOpenPostsQuery_AllFilters(t *testing.T) {
	priceMin, priceMax := 100.0, 500.0
	query, args := openPostsQuery(repository.PostFilter{
		Institution: "МГУ",
		SubjectArea: "История",
		PriceMin:    &priceMin,
		PriceMax:    &priceMax,
		SortBy:      repository.PostSortByPrice,
		Ascending:   true,
		Limit:       20,
		Offset:      40,
	})
	assert.Contains(t, query, "WHERE status = 'OPEN' AND LOWER(institution) = LOWER($1) AND LOWER(subject_area) = LOWER($2) AND price >= $3 AND price <= $4")
	assert.Contains(t, query, "ORDER BY price ASC, created_at ASC, id ASC LIMIT $5 OFFSET $6")
	assert.Equal(t, []any{"МГУ", "История", 100.0, 500.0, 20, 40}, args)
}

func TestPQCode(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pq.Error{Code: pqUniqueViolation})
	assert.Equal(t, pqUniqueViolation, pqCode(wrapped))
	assert.Equal(t, "", pqCode(errors.New("boom")))
	assert.Equal(t, "", pqCode(nil))
}

func TestDBError_IsDatabaseError(t *testing.T) {
	err := dbError(errors.New("connection reset"), "не удалось создать пост")
	assert.Equal(t, apperror.ErrCodeDatabaseError, apperror.CodeOf(err))
}

func TestRowConversions(t *testing.T) {
	now := time.Now()
	prev := uuid.New()

	resp := responseRow{
		ID:             uuid.New(),
		RespondentRole: "student",
		PrevResponseID: uuid.NullUUID{UUID: prev, Valid: true},
		CreatedAt:      now,
	}.toEntity()
	require.NotNil(t, resp.PrevResponseID)
	assert.Equal(t, prev, *resp.PrevResponseID)
	assert.Equal(t, valueobject.RoleStudent, resp.RespondentRole)
	assert.Equal(t, time.UTC, resp.CreatedAt.Location())

	root := responseRow{ID: uuid.New(), RespondentRole: "teacher"}.toEntity()
	assert.True(t, root.IsRoot())

	teacher := userRow{Role: "teacher", Description: sql.NullString{String: "алгебра", Valid: true}}.toEntity()
	require.NotNil(t, teacher.Teacher)
	assert.Equal(t, "алгебра", teacher.Description())
	assert.Nil(t, userRow{Role: "student"}.toEntity().Teacher)

	deal := dealRow{Status: "FINISHED", Feedback: 4, FinishedAt: sql.NullTime{Time: now, Valid: true}}.toEntity()
	require.NotNil(t, deal.FinishedAt)
	assert.True(t, deal.IsFinished())
	assert.True(t, deal.HasFeedback())

	item := profileErrorRow{Role: "teacher", Status: "REVIEW"}.toEntity()
	assert.True(t, item.IsNewAccount())
	post := postErrorRow{PostID: uuid.NullUUID{UUID: uuid.New(), Valid: true}}.toEntity()
	assert.True(t, post.ExistingPost())
}

func TestUserDescription(t *testing.T) {
	student := entity.NewUser("Иван Петров", "ivan@example.org", "hash", "+79990000000", "4111111111111111", valueobject.RoleStudent, "")
	assert.False(t, userDescription(student).Valid)

	teacher := entity.NewUser("Анна Иванова", "anna@example.org", "hash", "+79990000001", "4111111111111111", valueobject.RoleTeacher, "физика")
	assert.Equal(t, sql.NullString{String: "физика", Valid: true}, userDescription(teacher))
}
