package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		allowedOrigins []string
		requestOrigin  string
		method         string
		expectedOrigin string
		expectedCreds  string
		expectedStatus int
	}{
		{
			name:           "wildcard allows any origin without credentials",
			allowedOrigins: []string{"*"},
			requestOrigin:  "https://app.learnsphere.io",
			method:         http.MethodGet,
			expectedOrigin: "*",
			expectedCreds:  "",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "listed origin echoed with credentials",
			allowedOrigins: []string{"https://app.learnsphere.io"},
			requestOrigin:  "https://app.learnsphere.io",
			method:         http.MethodGet,
			expectedOrigin: "https://app.learnsphere.io",
			expectedCreds:  "true",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unlisted origin gets no allow header",
			allowedOrigins: []string{"https://app.learnsphere.io"},
			requestOrigin:  "https://evil.example.com",
			method:         http.MethodGet,
			expectedOrigin: "",
			expectedCreds:  "",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "preflight short-circuits",
			allowedOrigins: []string{"*"},
			requestOrigin:  "https://app.learnsphere.io",
			method:         http.MethodOptions,
			expectedOrigin: "*",
			expectedCreds:  "",
			expectedStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := CORSMiddleware(tt.allowedOrigins)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(tt.method, "/api/v1/network/status", nil)
			req.Header.Set("Origin", tt.requestOrigin)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.expectedCreds, rec.Header().Get("Access-Control-Allow-Credentials"))
			assert.Equal(t, allowedMethods, rec.Header().Get("Access-Control-Allow-Methods"))
		})
	}
}
