package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cryptocube/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const (
	testIssuer = "cryptocube"
	testSecret = "test-secret"
)

func mintToken(t *testing.T, issuer, secret, subject string, ttl time.Duration) string {
	t.Helper()
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestWithAuth(t *testing.T) {
	svc := auth.NewService(nil, testIssuer, []byte(testSecret), time.Hour, nil)

	var gotUserID string
	handler := WithAuth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserID(r)
		assert.True(t, ok)
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantUserID string
	}{
		{
			name:       "ValidToken",
			authHeader: "Bearer " + mintToken(t, testIssuer, testSecret, "user-123", time.Hour),
			wantStatus: http.StatusOK,
			wantUserID: "user-123",
		},
		{
			name:       "MissingHeader",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "NotBearer",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "ExpiredToken",
			authHeader: "Bearer " + mintToken(t, testIssuer, testSecret, "user-123", -time.Minute),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "WrongSecret",
			authHeader: "Bearer " + mintToken(t, testIssuer, "other-secret", "user-123", time.Hour),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "WrongIssuer",
			authHeader: "Bearer " + mintToken(t, "somewhere-else", testSecret, "user-123", time.Hour),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID = ""
			req := httptest.NewRequest(http.MethodGet, "/v1/account", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantUserID, gotUserID)
			}
		})
	}
}
