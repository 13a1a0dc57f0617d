package auth_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcsolar/pos/internal/auth"
)

func TestLoginAndValidate(t *testing.T) {
	svc := auth.NewService("test-secret", "1234", time.Hour)

	token, err := svc.Login("jbaptiste", "1234")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "jbaptiste", claims.Username)
	assert.Equal(t, "jbaptiste", claims.Subject)
}

func TestLogin_Rejections(t *testing.T) {
	svc := auth.NewService("test-secret", "1234", time.Hour)

	tests := []struct {
		name     string
		username string
		pin      string
	}{
		{name: "WrongPIN", username: "jbaptiste", pin: "0000"},
		{name: "EmptyUsername", username: "", pin: "1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(tt.username, tt.pin)
			assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		})
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	issuer := auth.NewService("secret-a", "1234", time.Hour)
	verifier := auth.NewService("secret-b", "1234", time.Hour)

	token, err := issuer.Login("jbaptiste", "1234")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidate_Garbage(t *testing.T) {
	svc := auth.NewService("test-secret", "1234", time.Hour)

	_, err := svc.Validate("not-a-token")
	assert.True(t, errors.Is(err, auth.ErrInvalidToken))
}

func TestMiddleware(t *testing.T) {
	svc := auth.NewService("test-secret", "1234", time.Hour)

	token, err := svc.Login("mpierre", "1234")
	require.NoError(t, err)

	var gotUser string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = auth.UserFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := auth.Middleware(svc)(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "ValidToken", header: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "MissingHeader", header: "", wantStatus: http.StatusUnauthorized},
		{name: "NotBearer", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "BadToken", header: "Bearer garbage", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUser = ""

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "mpierre", gotUser)
			}
		})
	}
}
