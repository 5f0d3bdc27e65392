package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"resumekit/internal/auth"
	"resumekit/internal/database"
)

// newDeadRedis 返回一个连不上任何服务的客户端。
// 限流/锁定路径的 Redis 错误按放行处理，登录流程应照常完成。
func newDeadRedis(t *testing.T) *redis.Client {
	t.Helper()
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
}

func newAuthTestHandler(t *testing.T) *AuthHandler {
	t.Helper()
	db := newTestDB(t)
	service, err := auth.NewAuthService("test-secret", 15*time.Minute, 24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return &AuthHandler{
		db:                    db,
		authService:           service,
		redis:                 newDeadRedis(t),
		loginRateLimitPerHour: 10,
		loginLockThreshold:    5,
		loginLockTTL:          15 * time.Minute,
	}
}

func TestRegisterIssuesToken(t *testing.T) {
	h := newAuthTestHandler(t)

	body := gin.H{"email": "ada@example.com", "name": "Ada", "password": "longenough"}
	c, w := newResumeTestContext(t, http.MethodPost, "/v1/auth/register", body, 0)
	h.Register(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}

	var resp tokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.AccessToken == "" {
		t.Fatal("register must issue an access token")
	}
	if resp.User.Email != "ada@example.com" || resp.User.Name != "Ada" {
		t.Fatalf("user = %+v", resp.User)
	}

	claims, err := h.authService.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token invalid: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Fatalf("token user = %d, response user = %d", claims.UserID, resp.User.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h := newAuthTestHandler(t)

	body := gin.H{"email": "dup@example.com", "name": "Dup", "password": "longenough"}
	c, w := newResumeTestContext(t, http.MethodPost, "/v1/auth/register", body, 0)
	h.Register(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("first register status = %d", w.Code)
	}

	// 邮箱大小写不敏感。
	body["email"] = "DUP@example.com"
	c, w = newResumeTestContext(t, http.MethodPost, "/v1/auth/register", body, 0)
	h.Register(c)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate register status = %d, want 409", w.Code)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	h := newAuthTestHandler(t)

	body := gin.H{"email": "a@b.c", "name": "A", "password": "short"}
	c, w := newResumeTestContext(t, http.MethodPost, "/v1/auth/register", body, 0)
	h.Register(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestLogin(t *testing.T) {
	h := newAuthTestHandler(t)

	hashed, err := auth.HashPassword("correct-horse")
	if err != nil {
		t.Fatal(err)
	}
	user := database.User{Email: "ada@example.com", Name: "Ada", PasswordHash: hashed}
	if err := h.db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}

	c, w := newResumeTestContext(t, http.MethodPost, "/v1/auth/login", gin.H{"email": "ada@example.com", "password": "correct-horse"}, 0)
	h.Login(c)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d body=%s", w.Code, w.Body.String())
	}

	var resp tokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.AccessToken == "" || resp.User.ID != user.ID {
		t.Fatalf("resp = %+v", resp)
	}

	c, w = newResumeTestContext(t, http.MethodPost, "/v1/auth/login", gin.H{"email": "ada@example.com", "password": "wrong"}, 0)
	h.Login(c)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d, want 401", w.Code)
	}

	c, w = newResumeTestContext(t, http.MethodPost, "/v1/auth/login", gin.H{"email": "ghost@example.com", "password": "whatever"}, 0)
	h.Login(c)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user status = %d, want 401", w.Code)
	}
}

func TestMe(t *testing.T) {
	h := newAuthTestHandler(t)

	user := database.User{Email: "ada@example.com", Name: "Ada", PasswordHash: "x"}
	if err := h.db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}

	c, w := newResumeTestContext(t, http.MethodGet, "/v1/auth/me", nil, user.ID)
	h.Me(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var resp userResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Email != "ada@example.com" {
		t.Fatalf("resp = %+v", resp)
	}
}
