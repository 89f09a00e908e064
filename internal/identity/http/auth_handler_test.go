package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/taskmanager/internal/errors"
	"github.com/allisson/taskmanager/internal/identity/domain"
	"github.com/allisson/taskmanager/internal/identity/http/dto"
	"github.com/allisson/taskmanager/internal/identity/usecase"
)

func setupAuthRouter(useCase usecase.IdentityUseCase) *gin.Engine {
	handler := NewAuthHandler(useCase, createTestLogger())
	router := gin.New()
	router.POST("/api/v1/auth/register", handler.RegisterHandler)
	router.POST("/api/v1/auth/login", handler.LoginHandler)
	return router
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func testAuthOutput() *usecase.AuthOutput {
	return &usecase.AuthOutput{
		Identity: &domain.Identity{
			ID:        1,
			Username:  "alice",
			Email:     "alice@example.com",
			Phone:     "+15550100",
			CreatedAt: time.Now(),
		},
		Token:     "signed-token",
		ExpiresAt: time.Now().Add(8 * time.Hour),
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	mockUseCase := &mockIdentityUseCase{}
	router := setupAuthRouter(mockUseCase)

	expectedInput := usecase.RegisterInput{
		Username: "alice",
		Password: "secret1",
		Email:    "alice@example.com",
		Phone:    "+15550100",
	}
	mockUseCase.On("Register", mock.Anything, expectedInput).Return(testAuthOutput(), nil).Once()

	recorder := postJSON(router, "/api/v1/auth/register", dto.RegisterRequest{
		Username: "alice",
		Password: "secret1",
		Email:    "alice@example.com",
		Phone:    "+15550100",
	})

	assert.Equal(t, http.StatusCreated, recorder.Code)

	var response dto.AuthResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "signed-token", response.Token)
	assert.Equal(t, "alice", response.User.Username)
	assert.Equal(t, int64(1), response.User.ID)

	mockUseCase.AssertExpectations(t)
}

func TestAuthHandler_Register_MalformedJSON(t *testing.T) {
	mockUseCase := &mockIdentityUseCase{}
	router := setupAuthRouter(mockUseCase)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
		bytes.NewReader([]byte(`{"username": `)))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	mockUseCase.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestAuthHandler_Register_ValidationError(t *testing.T) {
	mockUseCase := &mockIdentityUseCase{}
	router := setupAuthRouter(mockUseCase)

	mockUseCase.On("Register", mock.Anything, mock.AnythingOfType("usecase.RegisterInput")).
		Return(nil, apperrors.Wrap(apperrors.ErrInvalidInput, "password: too short")).Once()

	recorder := postJSON(router, "/api/v1/auth/register", dto.RegisterRequest{
		Username: "alice",
		Password: "x",
		Email:    "alice@example.com",
		Phone:    "+15550100",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	mockUseCase := &mockIdentityUseCase{}
	router := setupAuthRouter(mockUseCase)

	mockUseCase.On("Register", mock.Anything, mock.AnythingOfType("usecase.RegisterInput")).
		Return(nil, domain.ErrIdentityAlreadyExists).Once()

	recorder := postJSON(router, "/api/v1/auth/register", dto.RegisterRequest{
		Username: "alice",
		Password: "secret1",
		Email:    "alice@example.com",
		Phone:    "+15550100",
	})

	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	mockUseCase := &mockIdentityUseCase{}
	router := setupAuthRouter(mockUseCase)

	expectedInput := usecase.LoginInput{Username: "alice", Password: "secret1"}
	mockUseCase.On("Login", mock.Anything, expectedInput).Return(testAuthOutput(), nil).Once()

	recorder := postJSON(router, "/api/v1/auth/login", dto.LoginRequest{
		Username: "alice",
		Password: "secret1",
	})

	assert.Equal(t, http.StatusOK, recorder.Code)

	var response dto.AuthResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "signed-token", response.Token)
	assert.False(t, response.ExpiresAt.IsZero())

	mockUseCase.AssertExpectations(t)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mockUseCase := &mockIdentityUseCase{}
	router := setupAuthRouter(mockUseCase)

	mockUseCase.On("Login", mock.Anything, mock.AnythingOfType("usecase.LoginInput")).
		Return(nil, domain.ErrInvalidCredentials).Once()

	recorder := postJSON(router, "/api/v1/auth/login", dto.LoginRequest{
		Username: "alice",
		Password: "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "unauthorized", response["error"])
}

func TestAuthHandler_ResponseOmitsCredentialMaterial(t *testing.T) {
	mockUseCase := &mockIdentityUseCase{}
	router := setupAuthRouter(mockUseCase)

	output := testAuthOutput()
	output.Identity.Credential = domain.Credential{
		PasswordHash: []byte("hash-bytes"),
		PasswordKey:  []byte("key-bytes"),
	}
	mockUseCase.On("Login", mock.Anything, mock.AnythingOfType("usecase.LoginInput")).
		Return(output, nil).Once()

	recorder := postJSON(router, "/api/v1/auth/login", dto.LoginRequest{
		Username: "alice",
		Password: "secret1",
	})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "password")
	assert.NotContains(t, recorder.Body.String(), "hash")
}
