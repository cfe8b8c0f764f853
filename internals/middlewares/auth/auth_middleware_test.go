package auth

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voc_backend/internals/clients"
	helper "voc_backend/internals/helpers"
)

type stubUserClient struct {
	userID int64
	err    error
}

func (s *stubUserClient) ParseToken(context.Context, string) (int64, error) {
	return s.userID, s.err
}

func (s *stubUserClient) GetCustomerByID(context.Context, int64) (*clients.Customer, error) {
	return nil, nil
}

func (s *stubUserClient) GetManagerByID(context.Context, int64) (*clients.Manager, error) {
	return nil, nil
}

func (s *stubUserClient) GetManagersByIDs(context.Context, []int64) (map[int64]*clients.Manager, error) {
	return nil, nil
}

func (s *stubUserClient) GetCustomersByIDs(context.Context, []int64) (map[int64]*clients.Customer, error) {
	return nil, nil
}

func (s *stubUserClient) ManagerExists(context.Context, int64) (bool, error) { return false, nil }

func (s *stubUserClient) CustomerExists(context.Context, int64) (bool, error) { return false, nil }

func newAuthApp(users clients.UserClient) *fiber.App {
	app := fiber.New()
	app.Get("/", RequireAuth(users), func(c *fiber.Ctx) error {
		p, err := FromContext(c)
		if err != nil {
			return helper.JsonError(c, err)
		}
		return helper.Success(c, p.UserID)
	})
	return app
}

func TestRequireAuthMissingHeader(t *testing.T) {
	app := newAuthApp(&stubUserClient{userID: 5})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	app := newAuthApp(&stubUserClient{userID: 5})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Basic abc123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthResolvesPrincipal(t *testing.T) {
	app := newAuthApp(&stubUserClient{userID: 5})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer some-opaque-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"data":5`)
}

func TestRequireAuthRemoteRejection(t *testing.T) {
	app := newAuthApp(&stubUserClient{err: helper.ErrInvalidToken})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer expired-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthLowercaseScheme(t *testing.T) {
	app := newAuthApp(&stubUserClient{userID: 5})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(fiber.HeaderAuthorization, "bearer some-opaque-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestValidateTokenExpiry(t *testing.T) {
	fresh := jwt.MapClaims{"exp": float64(time.Now().Add(time.Hour).Unix())}
	assert.NoError(t, validateTokenExpiry(fresh, 30*time.Second))

	stale := jwt.MapClaims{"exp": float64(time.Now().Add(-time.Hour).Unix())}
	assert.ErrorIs(t, validateTokenExpiry(stale, 30*time.Second), helper.ErrInvalidToken)

	// Within leeway.
	skewed := jwt.MapClaims{"exp": float64(time.Now().Add(-10 * time.Second).Unix())}
	assert.NoError(t, validateTokenExpiry(skewed, 30*time.Second))

	// No exp claim is left to the remote check.
	assert.NoError(t, validateTokenExpiry(jwt.MapClaims{}, 30*time.Second))
}
