package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Ventory-api/internal/application/dto"
	"github.com/jhoicas/Ventory-api/internal/domain/entity"
	"github.com/jhoicas/Ventory-api/pkg/jwt"
)

// fakeUserRepo repositorio de usuarios en memoria.
type fakeUserRepo struct {
	byID map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{byID: map[string]*entity.User{}}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	copied := *u
	r.byID[u.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, companyID, email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.CompanyID == companyID && u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, entity.ErrNotFound
}

func testJWTCfg() JWTConfig {
	return JWTConfig{Secret: "secreto-de-prueba", ExpMinutes: 60, Issuer: "ventory-test"}
}

func seedUser(t *testing.T, password string, active bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{
		ID:           "u1",
		CompanyID:    "co",
		Email:        "ana@acme.cl",
		Name:         "Ana",
		PasswordHash: string(hash),
		Role:         entity.RoleManager,
		IsActive:     active,
	}
}

func TestRegister_CreaUsuarioConHashYRolPorDefecto(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUseCase(repo, testJWTCfg())

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		CompanyID: "co",
		Email:     "nuevo@acme.cl",
		Password:  "clave-segura",
		Name:      "Nuevo",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, entity.RoleOperator, out.Role, "sin rol explícito se asigna operator")
	assert.True(t, out.IsActive)

	stored, err := repo.GetByEmail(context.Background(), "co", "nuevo@acme.cl")
	require.NoError(t, err)
	assert.NotEqual(t, "clave-segura", stored.PasswordHash, "la password nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("clave-segura")))
}

func TestRegister_EmailDuplicadoEnLaEmpresa(t *testing.T) {
	repo := newFakeUserRepo(seedUser(t, "clave-segura", true))
	uc := NewUseCase(repo, testJWTCfg())

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		CompanyID: "co",
		Email:     "ana@acme.cl",
		Password:  "otra-clave",
		Name:      "Ana Bis",
	})
	assert.ErrorIs(t, err, entity.ErrEmailAlreadyExists)
}

func TestRegister_MismoEmailEnOtraEmpresaEsValido(t *testing.T) {
	repo := newFakeUserRepo(seedUser(t, "clave-segura", true))
	uc := NewUseCase(repo, testJWTCfg())

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		CompanyID: "otra",
		Email:     "ana@acme.cl",
		Password:  "clave-segura",
		Name:      "Ana",
		Role:      entity.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "otra", out.CompanyID)
	assert.Equal(t, entity.RoleAdmin, out.Role)
}

func TestLogin_CredencialesValidasEmiteTokenConClaims(t *testing.T) {
	cfg := testJWTCfg()
	repo := newFakeUserRepo(seedUser(t, "clave-segura", true))
	uc := NewUseCase(repo, cfg)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@acme.cl", Password: "clave-segura"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "ana@acme.cl", out.User.Email)

	sess, err := jwt.Parse(cfg.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", sess.UserID)
	assert.Equal(t, "co", sess.CompanyID)
	assert.Equal(t, entity.RoleManager, sess.Role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	repo := newFakeUserRepo(seedUser(t, "clave-segura", true))
	uc := NewUseCase(repo, testJWTCfg())

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@acme.cl", Password: "equivocada"})
	assert.ErrorIs(t, err, entity.ErrUnauthorized)
}

func TestLogin_EmailInexistenteDevuelveElMismoError(t *testing.T) {
	uc := NewUseCase(newFakeUserRepo(), testJWTCfg())

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@acme.cl", Password: "lo-que-sea"})
	assert.ErrorIs(t, err, entity.ErrUnauthorized,
		"usuario inexistente y password errada no se distinguen")
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo := newFakeUserRepo(seedUser(t, "clave-segura", false))
	uc := NewUseCase(repo, testJWTCfg())

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@acme.cl", Password: "clave-segura"})
	assert.ErrorIs(t, err, entity.ErrForbidden)
}
