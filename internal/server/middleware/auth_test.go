package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/mamadbah2/dairybook/internal/config"
	"github.com/mamadbah2/dairybook/internal/domain/models"
	"github.com/mamadbah2/dairybook/internal/repository/mongodb"
	"github.com/mamadbah2/dairybook/internal/server/middleware"
	"github.com/mamadbah2/dairybook/internal/service/auth"
)

type fakeUsers struct {
	user models.User
}

func (f *fakeUsers) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	return &user, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if email != f.user.Email {
		return nil, mongodb.ErrNotFound
	}
	u := f.user
	return &u, nil
}

func (f *fakeUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	if id != f.user.ID.Hex() {
		return nil, mongodb.ErrNotFound
	}
	u := f.user
	return &u, nil
}

func newTestStack(t *testing.T) (*gin.Engine, *auth.Service, *models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	passkeyHash, err := bcrypt.GenerateFromPassword([]byte("4321"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		ID:          primitive.NewObjectID(),
		Email:       "bess@farm.test",
		FarmName:    "Bess Dairy",
		PasskeyHash: string(passkeyHash),
	}
	svc := auth.NewService(&fakeUsers{user: user}, config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	}, nil)

	r := gin.New()
	authed := r.Group("", middleware.RequireAuth(svc, nil))
	authed.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"farm_id": middleware.FarmID(c)})
	})
	authed.DELETE("/thing", middleware.RequirePasskey(svc, nil), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	return r, svc, &user
}

func TestRequireAuth(t *testing.T) {
	r, svc, user := newTestStack(t)

	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				require.Contains(t, w.Body.String(), user.ID.Hex())
			}
		})
	}
}

func TestRequirePasskey(t *testing.T) {
	r, svc, user := newTestStack(t)

	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	tests := []struct {
		name    string
		passkey string
		want    int
	}{
		{"missing passkey", "", http.StatusForbidden},
		{"wrong passkey", "0000", http.StatusForbidden},
		{"right passkey", "4321", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/thing", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			if tt.passkey != "" {
				req.Header.Set(middleware.PasskeyHeader, tt.passkey)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tt.want, w.Code)
		})
	}
}
