package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pregao-api/internal/application/auth"
	"github.com/jhoicas/pregao-api/internal/application/dto"
	"github.com/jhoicas/pregao-api/internal/domain"
	"github.com/jhoicas/pregao-api/internal/infrastructure/memory"
	"github.com/jhoicas/pregao-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

func newAuthFixture(t *testing.T) (*auth.AuthUseCase, *memory.Repositories) {
	t.Helper()
	repos := memory.NewRepositories()
	require.NoError(t, repos.Seed())
	uc := auth.NewAuthUseCase(repos.Users, repos.Companies, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 15,
		Issuer:     "pregao-api",
	})
	return uc, repos
}

func TestRegisterUser_CreaConHashYRolPorDefecto(t *testing.T) {
	uc, repos := newAuthFixture(t)

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Email:     "nuevo@pregao.com",
		Password:  "pregao123",
		CompanyID: "c1",
	})
	require.NoError(t, err)
	assert.Equal(t, "vendedor", out.Role, "sin rol explícito se asigna vendedor")
	assert.Equal(t, "active", out.Status)
	assert.Equal(t, "nuevo@pregao.com", out.Name, "sin nombre se usa el email")

	stored, err := repos.Users.GetByID(out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "pregao123", stored.PasswordHash, "la contraseña nunca se guarda en claro")
}

func TestRegisterUser_Errores(t *testing.T) {
	uc, _ := newAuthFixture(t)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "", Password: "x", CompanyID: "c1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Email ya registrado en la misma empresa.
	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "admin@pregao.com", Password: "pregao123", CompanyID: "c1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "x@pregao.com", Password: "pregao123", CompanyID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "y@pregao.com", Password: "pregao123", CompanyID: "c1", Role: "superusuario"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El token del login lleva la identidad completa: usuario, empresa y rol.
func TestLogin_TokenConClaims(t *testing.T) {
	uc, _ := newAuthFixture(t)

	out, err := uc.Login(dto.LoginRequest{Email: "gestor@pregao.com", Password: "pregao123"})
	require.NoError(t, err)
	assert.Equal(t, "u8", out.User.ID)
	assert.Equal(t, "gestor_grupo", out.User.Role)

	ident, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u8", ident.UserID)
	assert.Equal(t, "c1", ident.CompanyID)
	assert.Equal(t, "gestor_grupo", ident.Role)
}

func TestLogin_Errores(t *testing.T) {
	uc, repos := newAuthFixture(t)

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@pregao.com", Password: "pregao123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(dto.LoginRequest{Email: "admin@pregao.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Usuario suspendido: credenciales correctas pero acceso denegado.
	u, err := repos.Users.GetByID("u2")
	require.NoError(t, err)
	u.Status = "suspended"
	require.NoError(t, repos.Users.Update(u))
	_, err = uc.Login(dto.LoginRequest{Email: "seller1@pregao.com", Password: "pregao123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
