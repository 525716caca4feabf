package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/skillbridge-sg/skillbridge-backend/internal/domain"
	"github.com/skillbridge-sg/skillbridge-backend/internal/usecase/auth"
)

type memUserRepo struct {
	users  map[int]*domain.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int]*domain.User)}
}

func (r *memUserRepo) Create(ctx context.Context, u *domain.User) error {
	for _, existing := range r.users {
		if existing.Phone == u.Phone {
			return domain.ErrUserAlreadyExists
		}
	}
	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id int) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) UpdateRole(ctx context.Context, id int, role domain.Role) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

type memSessionRepo struct {
	sessions map[string]*domain.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (r *memSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	r.sessions[s.Token] = s
	return nil
}

func (r *memSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	s, ok := r.sessions[token]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return s, nil
}

func (r *memSessionRepo) DeleteByToken(ctx context.Context, token string) error {
	delete(r.sessions, token)
	return nil
}

func (r *memSessionRepo) DeleteExpired(ctx context.Context) (int, error) { return 0, nil }

type nullProfileRepo struct{}

func (nullProfileRepo) Create(ctx context.Context, p *domain.Profile) error { return nil }
func (nullProfileRepo) GetByUserID(ctx context.Context, userID int) (*domain.Profile, error) {
	return nil, domain.ErrProfileNotFound
}
func (nullProfileRepo) Update(ctx context.Context, p *domain.Profile) error { return nil }
func (nullProfileRepo) UpdateCredibility(ctx context.Context, userID, score int) error {
	return nil
}
func (nullProfileRepo) GetPublicProfiles(ctx context.Context, excludeUserID, limit, offset int) ([]*domain.Profile, error) {
	return nil, nil
}

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestRouter(t *testing.T) (*gin.Engine, *auth.AuthUseCase, *memUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userRepo := newMemUserRepo()
	authUseCase := auth.NewAuthUseCase(userRepo, nullProfileRepo{}, newMemSessionRepo(), testSecret, 60)

	router := gin.New()
	router.GET("/guarded",
		AuthMiddleware(authUseCase),
		RequireModerator(authUseCase),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return router, authUseCase, userRepo
}

func registerUser(t *testing.T, uc *auth.AuthUseCase, phone string) (int, string) {
	t.Helper()
	resp, err := uc.Register(context.Background(), &auth.RegisterRequest{
		Phone:    phone,
		Password: "correct horse",
		FullName: "Test User",
	}, "test", "127.0.0.1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return resp.User.ID, resp.Token
}

func TestRequireModeratorAllowsModerator(t *testing.T) {
	router, uc, userRepo := newTestRouter(t)
	id, token := registerUser(t, uc, "+6591234567")
	if err := userRepo.UpdateRole(context.Background(), id, domain.RoleModerator); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("moderator got %d, want 200", w.Code)
	}
}

func TestRequireModeratorRejectsRegularUser(t *testing.T) {
	router, uc, _ := newTestRouter(t)
	_, token := registerUser(t, uc, "+6598765432")

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("regular user got %d, want 403", w.Code)
	}
}

func TestRequireModeratorRejectsAnonymous(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous got %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareRejectsRevokedToken(t *testing.T) {
	router, uc, _ := newTestRouter(t)
	_, token := registerUser(t, uc, "+6581112222")

	if err := uc.Logout(context.Background(), token); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("revoked token got %d, want 401", w.Code)
	}
}
