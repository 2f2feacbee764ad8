package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/docexchange-backend/internal/config"
	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/valueobject"
	"github.com/ignatzorin/docexchange-backend/internal/http/router"
	"github.com/ignatzorin/docexchange-backend/internal/infrastructure/contactinfo"
	"github.com/ignatzorin/docexchange-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/docexchange-backend/internal/interface/http/handler"
	"github.com/ignatzorin/docexchange-backend/internal/service"
	"github.com/ignatzorin/docexchange-backend/internal/usecase/account"
	"github.com/ignatzorin/docexchange-backend/internal/usecase/complaint"
	"github.com/ignatzorin/docexchange-backend/internal/usecase/deal"
	"github.com/ignatzorin/docexchange-backend/internal/usecase/moderation"
	"github.com/ignatzorin/docexchange-backend/internal/usecase/negotiation"
	"github.com/ignatzorin/docexchange-backend/internal/usecase/post"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	store  *memory.Store
	tokens *service.TokenManager
}

func newTestServer(t *testing.T, rateLimit int64) *testServer {
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	store.SeedCatalog()
	tokens := service.NewTokenManager("router-test-secret-router-test-secret", time.Hour)
	hasher := service.NewBcryptHasher(bcrypt.MinCost)
	scanner := contactinfo.NewScanner()

	registerUC := account.NewRegisterUseCase(store.Users(), store.ProfileErrors(), scanner, hasher, tokens)
	editProfileUC := account.NewEditProfileUseCase(store.Users(), store.ProfileErrors(), scanner, hasher)
	createPostUC := post.NewCreatePostUseCase(store.Posts(), store.Catalog(), store.PostErrors(), scanner)
	editPostUC := post.NewEditPostUseCase(store.Posts(), store.Catalog(), store.PostErrors(), scanner)

	cfg := &config.Config{
		Env:             "test",
		StorageDriver:   config.StorageDriverMemory,
		AllowedOrigins:  []string{"http://localhost:3000"},
		RateLimitLimit:  rateLimit,
		RateLimitPeriod: time.Minute,
	}
	handlers := router.Handlers{
		Account: handler.NewAccountHandler(
			registerUC,
			account.NewLoginUseCase(store.Users(), hasher, tokens),
			account.NewGetProfileUseCase(store.Users()),
			editProfileUC,
			account.NewDeleteAccountUseCase(store.Users()),
		),
		Text: handler.NewTextHandler(scanner),
		Post: handler.NewPostHandler(
			createPostUC,
			editPostUC,
			post.NewRaisePriceUseCase(store.Posts()),
			post.NewDeletePostUseCase(store.Posts(), store.Deals()),
			post.NewGetPostUseCase(store.Posts()),
			post.NewListMyPostsUseCase(store.Posts()),
			post.NewListOpenPostsUseCase(store.Posts()),
		),
		Negotiation: handler.NewNegotiationHandler(
			negotiation.NewRespondToPostUseCase(store.Posts(), store.Responses()),
			negotiation.NewCounterOfferUseCase(store.Posts(), store.Responses()),
			negotiation.NewListPostThreadsUseCase(store.Posts(), store.Responses()),
			negotiation.NewListTeacherThreadsUseCase(store.Responses()),
		),
		Deal: handler.NewDealHandler(
			deal.NewCreateDealUseCase(store.Posts(), store.Responses(), store.Deals()),
			deal.NewFinishDealUseCase(store.Deals()),
			deal.NewLeaveFeedbackUseCase(store.Deals()),
			deal.NewListMyDealsUseCase(store.Deals()),
			deal.NewTeacherRatingUseCase(store.Users(), store.Deals()),
		),
		Complaint: handler.NewComplaintHandler(
			complaint.NewCreateComplaintUseCase(store.Deals(), store.Complaints()),
			complaint.NewGetMyComplaintUseCase(store.Complaints()),
			complaint.NewListComplaintsUseCase(store.Complaints()),
			complaint.NewAssignComplaintUseCase(store.Complaints()),
			complaint.NewUpdateComplaintStatusUseCase(store.Complaints()),
			complaint.NewDeleteComplaintUseCase(store.Complaints()),
			complaint.NewFileDocumentComplaintUseCase(store.Documents(), store.DocumentComplaints()),
			complaint.NewListDocumentComplaintsUseCase(store.DocumentComplaints()),
			complaint.NewDeleteDocumentComplaintUseCase(store.DocumentComplaints()),
		),
		Moderation: handler.NewModerationHandler(
			moderation.NewListProfileErrorsUseCase(store.ProfileErrors()),
			moderation.NewDecideProfileErrorUseCase(store.ProfileErrors(), registerUC, editProfileUC),
			moderation.NewListPostErrorsUseCase(store.PostErrors()),
			moderation.NewDecidePostErrorUseCase(store.PostErrors(), createPostUC, editPostUC),
		),
		Health: handler.NewHealthHandler(config.StorageDriverMemory, nil),
	}

	return &testServer{
		t:      t,
		engine: router.SetupRouter(cfg, handlers, tokens),
		store:  store,
		tokens: tokens,
	}
}

func (s *testServer) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

type authData struct {
	User struct {
		ID   uuid.UUID `json:"id"`
		Role string    `json:"role"`
	} `json:"user"`
	AccessToken string `json:"access_token"`
}

func (s *testServer) register(role, email, phone, description string) authData {
	s.t.Helper()
	status, env := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"full_name":        "Пользователь " + role,
		"email":            email,
		"password":         "Secret123",
		"phone_number":     phone,
		"bank_card_number": "4111 1111 1111 1111",
		"role":             role,
		"description":      description,
	})
	require.Equal(s.t, http.StatusCreated, status)
	return decode[authData](s.t, env)
}

func (s *testServer) moderatorToken() string {
	s.t.Helper()
	mod := entity.NewUser("Модератор", "mod@example.org", "hash", "+79990000000", "4111111111111111", valueobject.RoleModerator, "")
	require.NoError(s.t, s.store.Users().Create(s.t.Context(), mod))
	token, err := s.tokens.Issue(mod)
	require.NoError(s.t, err)
	return token
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, 100)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"storage":"memory"`)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t, 100)

	status, env := s.do(http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	status, _ = s.do(http.MethodGet, "/api/users/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestInvalidUUIDParam(t *testing.T) {
	s := newTestServer(t, 100)
	student := s.register("student", "s@example.org", "+79160000001", "")

	status, env := s.do(http.MethodGet, "/api/posts/not-a-uuid", student.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestRegister_FlaggedProfileGoesToModeration(t *testing.T) {
	s := newTestServer(t, 100)

	status, env := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"full_name":        "Иван Петров",
		"email":            "ivan@example.org",
		"password":         "Secret123",
		"phone_number":     "+79161234567",
		"bank_card_number": "4111 1111 1111 1111",
		"role":             "teacher",
		"description":      "пишите в телеграм",
	})
	require.Equal(t, http.StatusAccepted, status)
	accepted := decode[struct {
		ReviewID uuid.UUID `json:"review_id"`
		Status   string    `json:"status"`
	}](t, env)
	assert.Equal(t, "REVIEW", accepted.Status)

	mod := s.moderatorToken()

	status, env = s.do(http.MethodGet, "/api/moderation/profile-errors", mod, nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, string(env.Data), "4111")
	assert.NotContains(t, string(env.Data), "password")

	path := "/api/moderation/profile-errors/" + accepted.ReviewID.String() + "/decision"
	status, env = s.do(http.MethodPost, path, mod, map[string]string{"decision": "maybe"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "POLICY_VIOLATION", env.Error.Code)

	status, _ = s.do(http.MethodPost, path, mod, map[string]string{"decision": "approved"})
	require.Equal(t, http.StatusOK, status)

	status, env = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ivan@example.org", "password": "Secret123"})
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, decode[authData](t, env).AccessToken)

	status, env = s.do(http.MethodPost, path, mod, map[string]string{"decision": "approved"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestModerationRejectsParties(t *testing.T) {
	s := newTestServer(t, 100)
	teacher := s.register("teacher", "t@example.org", "+79160000002", "Преподаю физику")

	status, env := s.do(http.MethodGet, "/api/moderation/post-errors", teacher.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)
}

func TestDeleteMe(t *testing.T) {
	s := newTestServer(t, 100)
	teacher := s.register("teacher", "t@example.org", "+79160000002", "Преподаю физику")
	student := s.register("student", "s@example.org", "+79160000001", "")

	status, _ := s.do(http.MethodPost, "/api/posts", student.AccessToken, map[string]any{
		"work_type":    "реферат",
		"subject_area": "Физика",
		"institution":  "МГУ",
		"description":  "Реферат по оптике",
		"price":        500,
	})
	require.Equal(t, http.StatusCreated, status)

	status, env := s.do(http.MethodDelete, "/api/users/me", student.AccessToken, nil)
	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	status, _ = s.do(http.MethodDelete, "/api/users/me", teacher.AccessToken, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, env = s.do(http.MethodGet, "/api/users/me", teacher.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	status, _ = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "t@example.org", "password": "Secret123"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestNegotiationDealFeedbackFlow(t *testing.T) {
	s := newTestServer(t, 100)
	student := s.register("student", "s@example.org", "+79160000001", "")
	teacher := s.register("teacher", "t@example.org", "+79160000002", "Преподаю математику")

	status, env := s.do(http.MethodPost, "/api/posts", student.AccessToken, map[string]any{
		"work_type":    "курсовая работа",
		"subject_area": "Математика",
		"institution":  "МГУ",
		"description":  "Нужна курсовая по линейной алгебре",
		"price":        1000,
	})
	require.Equal(t, http.StatusCreated, status)
	created := decode[struct {
		ID       uuid.UUID `json:"id"`
		WorkType string    `json:"work_type"`
		Status   string    `json:"status"`
	}](t, env)
	assert.Equal(t, "Курсовая работа", created.WorkType)
	assert.Equal(t, "OPEN", created.Status)
	postPath := "/api/posts/" + created.ID.String()

	// Преподаватель находит пост в ленте открытых.
	status, env = s.do(http.MethodGet, "/api/posts?institution="+url.QueryEscape("мгу")+"&sort=price&order=asc", teacher.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)
	feed := decode[[]struct {
		ID uuid.UUID `json:"id"`
	}](t, env)
	require.Len(t, feed, 1)
	assert.Equal(t, created.ID, feed[0].ID)

	status, env = s.do(http.MethodGet, "/api/posts?price_min=500&price_max=100", teacher.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	status, _ = s.do(http.MethodGet, "/api/posts?limit=abc", teacher.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// Студент не может откликнуться на пост.
	status, _ = s.do(http.MethodPost, postPath+"/responses", student.AccessToken, map[string]any{"price": 900})
	assert.Equal(t, http.StatusForbidden, status)

	status, env = s.do(http.MethodPost, postPath+"/responses", teacher.AccessToken, map[string]any{"price": 1500})
	require.Equal(t, http.StatusCreated, status)
	root := decode[struct {
		ID             uuid.UUID `json:"id"`
		RespondentRole string    `json:"respondent_role"`
	}](t, env)
	assert.Equal(t, "TEACHER", root.RespondentRole)

	status, env = s.do(http.MethodPost, "/api/responses/"+root.ID.String()+"/counter-offers", student.AccessToken, map[string]any{"price": 1200})
	require.Equal(t, http.StatusCreated, status)
	counter := decode[struct {
		ID uuid.UUID `json:"id"`
	}](t, env)

	// Ход по устаревшему отклику.
	status, env = s.do(http.MethodPost, "/api/responses/"+root.ID.String()+"/counter-offers", student.AccessToken, map[string]any{"price": 1100})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "POLICY_VIOLATION", env.Error.Code)

	status, env = s.do(http.MethodGet, postPath+"/threads", student.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)
	threads := decode[[]struct {
		TeacherID uuid.UUID `json:"teacher_id"`
		Responses []struct {
			ID uuid.UUID `json:"id"`
		} `json:"responses"`
	}](t, env)
	require.Len(t, threads, 1)
	assert.Equal(t, teacher.User.ID, threads[0].TeacherID)
	require.Len(t, threads[0].Responses, 2)
	assert.Equal(t, counter.ID, threads[0].Responses[1].ID)

	// Сделка создаётся только по отклику преподавателя.
	status, _ = s.do(http.MethodPost, "/api/deals", student.AccessToken, map[string]string{"response_id": counter.ID.String()})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = s.do(http.MethodPost, "/api/deals", student.AccessToken, map[string]string{"response_id": root.ID.String()})
	require.Equal(t, http.StatusCreated, status)
	d := decode[struct {
		ID       uuid.UUID `json:"id"`
		Price    float64   `json:"price"`
		Status   string    `json:"status"`
		Feedback *int      `json:"feedback"`
	}](t, env)
	assert.Equal(t, 1500.0, d.Price)
	assert.Equal(t, "OPEN", d.Status)
	assert.Nil(t, d.Feedback)
	dealPath := "/api/deals/" + d.ID.String()

	status, env = s.do(http.MethodGet, postPath, student.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"status":"CLOSED"`)

	status, env = s.do(http.MethodGet, "/api/posts", teacher.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(env.Data))

	status, env = s.do(http.MethodPost, dealPath+"/feedback", student.AccessToken, map[string]int{"score": 5})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "POLICY_VIOLATION", env.Error.Code)

	status, _ = s.do(http.MethodPatch, dealPath+"/finish", teacher.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = s.do(http.MethodPatch, dealPath+"/finish", student.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = s.do(http.MethodPost, dealPath+"/feedback", student.AccessToken, map[string]int{"score": 4})
	require.Equal(t, http.StatusOK, status)
	status, env = s.do(http.MethodPost, dealPath+"/feedback", student.AccessToken, map[string]int{"score": 5})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	status, env = s.do(http.MethodGet, "/api/teachers/"+teacher.User.ID.String()+"/rating", "", nil)
	require.Equal(t, http.StatusOK, status)
	rating := decode[struct {
		Rating float64 `json:"rating"`
		Votes  int     `json:"votes"`
	}](t, env)
	assert.InDelta(t, 4.0, rating.Rating, 1e-9)
	assert.Equal(t, 1, rating.Votes)

	// Жалоба по сделке и её разбор модератором.
	status, _ = s.do(http.MethodPost, dealPath+"/complaints", teacher.AccessToken, map[string]string{"message": "Не выходит на связь"})
	require.Equal(t, http.StatusCreated, status)
	status, _ = s.do(http.MethodPost, dealPath+"/complaints", teacher.AccessToken, map[string]string{"message": "Повторно"})
	assert.Equal(t, http.StatusConflict, status)

	mod := s.moderatorToken()
	status, env = s.do(http.MethodGet, "/api/moderation/complaints?plaintiff_role=teacher", mod, nil)
	require.Equal(t, http.StatusOK, status)
	complaints := decode[[]struct {
		ID     uuid.UUID `json:"id"`
		Status string    `json:"status"`
	}](t, env)
	require.Len(t, complaints, 1)
	assert.Equal(t, "NEW", complaints[0].Status)

	complaintPath := "/api/moderation/complaints/" + complaints[0].ID.String()
	status, _ = s.do(http.MethodPost, complaintPath+"/assign", mod, nil)
	require.Equal(t, http.StatusOK, status)
	status, env = s.do(http.MethodPatch, complaintPath+"/status", mod, map[string]string{"status": "IN_PROGRESS"})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"status":"IN_PROGRESS"`)
	status, _ = s.do(http.MethodDelete, complaintPath, mod, nil)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestValidateContactIsPublic(t *testing.T) {
	s := newTestServer(t, 100)

	status, env := s.do(http.MethodPost, "/api/text/validate-contact", "", map[string]string{"text": "мой номер +7 916 123-45-67"})
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"contains_contact_info":true}`, string(env.Data))

	status, env = s.do(http.MethodPost, "/api/text/validate-contact", "", map[string]string{"text": "Нужна помощь с курсовой"})
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"contains_contact_info":false}`, string(env.Data))
}

func TestAuthRoutesAreRateLimited(t *testing.T) {
	s := newTestServer(t, 2)
	body := map[string]string{"email": "nobody@example.org", "password": "Secret123"}

	for i := 0; i < 2; i++ {
		status, _ := s.do(http.MethodPost, "/api/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, status)
	}

	status, env := s.do(http.MethodPost, "/api/auth/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "RATE_LIMITED", env.Error.Code)
}
