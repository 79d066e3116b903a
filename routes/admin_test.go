package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/firdaus0729/nurse/models"
	"github.com/firdaus0729/nurse/utils"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// buildRBACApp wires the admin routes behind the real JWT verifier and role
// middlewares, the way main.go does.
func buildRBACApp(t *testing.T) *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	app := iris.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.StaffMiddleware)
	{
		admin.Get("/chat", AdminListConversations)
		admin.Get("/users", utils.AdminOnlyMiddleware, AdminListUsers)
	}

	mustBuild(t, app)
	return app
}

// signTestToken returns a signed JWT with the given staff role
func signTestToken(role string) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, _ := signer.Sign(utils.AccessToken{ID: 1, Role: role})
	return string(token)
}

func TestAdminUsersRBAC(t *testing.T) {
	setupTestDB(t)
	app := buildRBACApp(t)

	// No token -> rejected by the verifier
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", resp.Code)
	}

	// NURSE role -> 403 on admin-only routes
	req2 := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req2.Header.Set("Authorization", "Bearer "+signTestToken(models.RoleNurse))
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for nurse role, got %d", resp2.Code)
	}

	// ADMIN role -> 200 (empty list OK)
	req3 := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req3.Header.Set("Authorization", "Bearer "+signTestToken(models.RoleAdmin))
	resp3 := httptest.NewRecorder()
	app.ServeHTTP(resp3, req3)
	if resp3.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin role, got %d", resp3.Code)
	}
}

func TestNurseCanAccessStaffRoutes(t *testing.T) {
	setupTestDB(t)
	app := buildRBACApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/chat", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(models.RoleNurse))
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for nurse on staff route, got %d", resp.Code)
	}
}
