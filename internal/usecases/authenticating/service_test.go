package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-risk-analytics/internal/config"
	"github.com/vfg2006/sales-risk-analytics/internal/domain"
	"github.com/vfg2006/sales-risk-analytics/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T, enabled bool) *Service {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3nh@F0rte"), bcrypt.MinCost)
	require.NoError(t, err)

	return NewService(config.Auth{
		Enabled:           enabled,
		Secret:            "segredo-de-teste",
		AdminUser:         "admin",
		AdminPasswordHash: string(hash),
		TokenTTL:          time.Hour,
	})
}

func TestService_LoginUser(t *testing.T) {
	service := newTestService(t, true)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
		wantCode string
	}{
		{name: "credenciais corretas", username: "admin", password: "s3nh@F0rte"},
		{name: "usuário ignora maiúsculas e espaços", username: "  ADMIN ", password: "s3nh@F0rte"},
		{name: "senha incorreta", username: "admin", password: "errada", wantErr: ErrInvalidCredentials, wantCode: apiErrors.ErrInvalidCredentials},
		{name: "usuário desconhecido", username: "joao", password: "s3nh@F0rte", wantErr: ErrInvalidCredentials, wantCode: apiErrors.ErrInvalidCredentials},
		{name: "dados ausentes", username: "", password: "", wantErr: ErrMissingRequiredData, wantCode: apiErrors.ErrMissingRequiredData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response, err := service.LoginUser(tt.username, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.wantCode, CodeOf(err))
				assert.Nil(t, response)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, response.Token)

			claims, err := service.ValidateToken(response.Token)
			require.NoError(t, err)
			assert.Equal(t, "admin", claims.UserName)
			assert.Equal(t, domain.RoleAdmin, claims.UserRoleID)
			assert.Equal(t, response.ExpiresAt, claims.ExpiresAt.Unix())
		})
	}
}

func TestService_LoginUser_Disabled(t *testing.T) {
	service := newTestService(t, false)

	_, err := service.LoginUser("admin", "s3nh@F0rte")

	assert.ErrorIs(t, err, ErrAuthDisabled)
	assert.False(t, service.Enabled())
}

func TestService_ValidateToken(t *testing.T) {
	service := newTestService(t, true)

	t.Run("token expirado", func(t *testing.T) {
		response, err := service.LoginUser("admin", "s3nh@F0rte")
		require.NoError(t, err)

		service.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { service.now = time.Now }()

		_, err = service.ValidateToken(response.Token)
		assert.ErrorIs(t, err, ErrExpiredToken)
		assert.True(t, IsTokenError(err))
	})

	t.Run("assinado com outro segredo", func(t *testing.T) {
		claims := domain.Claims{
			UserName:   "admin",
			UserRoleID: domain.RoleAdmin,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("outro"))
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Equal(t, apiErrors.ErrInvalidToken, CodeOf(err))
	})

	t.Run("token malformado", func(t *testing.T) {
		_, err := service.ValidateToken("nao-e-um-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
