package auth_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/zhihern080614/mochibay-backend/internal/application/auth"
	"github.com/zhihern080614/mochibay-backend/internal/application/dto"
	"github.com/zhihern080614/mochibay-backend/internal/domain"
	"github.com/zhihern080614/mochibay-backend/internal/domain/entity"
	pkgjwt "github.com/zhihern080614/mochibay-backend/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

// memUsers implementación en memoria de repository.UserRepository.
type memUsers struct {
	mu    sync.Mutex
	users map[string]*entity.User // por email
}

func newMemUsers() *memUsers { return &memUsers{users: map[string]*entity.User{}} }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	m.users[u.Email] = &cp
	return nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) List(_ context.Context) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memUsers) UpdateRole(_ context.Context, email, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return domain.ErrNotFound
	}
	u.Role = role
	return nil
}

func newUseCase(repo *memUsers) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret: testSecret,
		TTL:    8 * time.Hour,
		Issuer: "mochibay-test",
	}).WithBcryptCost(bcrypt.MinCost)
}

func validRegister() dto.RegisterRequest {
	return dto.RegisterRequest{Name: "A", Email: "a@x.com", UserClass: "C1", Phone: "555", Password: "pw"}
}

func TestRegister_LuegoLogin(t *testing.T) {
	repo := newMemUsers()
	uc := newUseCase(repo)
	ctx := context.Background()

	reg, err := uc.Register(ctx, validRegister())
	require.NoError(t, err)
	assert.NotEmpty(t, reg.UserID)

	stored, _ := repo.FindByEmail(ctx, "a@x.com")
	require.NotNil(t, stored)
	assert.NotEqual(t, "pw", stored.PasswordHash, "el password nunca se guarda en claro")
	assert.Equal(t, entity.RoleUser, stored.Role)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "A", out.Name)
	assert.Equal(t, entity.RoleUser, out.Role)

	claims, err := pkgjwt.Verify(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, claims.UserID)
	assert.Equal(t, "555", claims.Phone)
	assert.Equal(t, "C1", claims.UserClass)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), claims.ExpiresAtTime(), 5*time.Second)
}

func TestRegister_EmailNormalizado(t *testing.T) {
	repo := newMemUsers()
	uc := newUseCase(repo)
	in := validRegister()
	in.Email = "  A@X.com "

	_, err := uc.Register(context.Background(), in)
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "a@x.COM", Password: "pw"})
	assert.NoError(t, err)
}

func TestRegister_CamposFaltantes(t *testing.T) {
	uc := newUseCase(newMemUsers())
	mutations := map[string]func(*dto.RegisterRequest){
		"name":       func(r *dto.RegisterRequest) { r.Name = "" },
		"email":      func(r *dto.RegisterRequest) { r.Email = " " },
		"user_class": func(r *dto.RegisterRequest) { r.UserClass = "" },
		"phone":      func(r *dto.RegisterRequest) { r.Phone = "" },
		"password":   func(r *dto.RegisterRequest) { r.Password = "" },
	}
	for field, mutate := range mutations {
		t.Run(field, func(t *testing.T) {
			in := validRegister()
			mutate(&in)
			_, err := uc.Register(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := newMemUsers()
	uc := newUseCase(repo)
	ctx := context.Background()

	_, err := uc.Register(ctx, validRegister())
	require.NoError(t, err)

	again := validRegister()
	again.Name = "Otro"
	_, err = uc.Register(ctx, again)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	list, _ := repo.List(ctx)
	require.Len(t, list, 1, "no debe haber escritura parcial")
	assert.Equal(t, "A", list[0].Name)
}

func TestLogin_MismoErrorParaEmailYPassword(t *testing.T) {
	uc := newUseCase(newMemUsers())
	ctx := context.Background()
	_, err := uc.Register(ctx, validRegister())
	require.NoError(t, err)

	_, errPass := uc.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "wrong"})
	_, errEmail := uc.Login(ctx, dto.LoginRequest{Email: "nadie@x.com", Password: "pw"})

	assert.ErrorIs(t, errPass, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errEmail, domain.ErrInvalidCredentials)
	assert.Equal(t, errPass.Error(), errEmail.Error())
}

func TestLogin_CamposFaltantes(t *testing.T) {
	uc := newUseCase(newMemUsers())

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "a@x.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateAdminYSetRole(t *testing.T) {
	repo := newMemUsers()
	uc := newUseCase(repo)
	ctx := context.Background()

	in := validRegister()
	in.Email = "root@x.com"
	id, err := uc.CreateAdmin(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "root@x.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Role)

	_, err = uc.Register(ctx, validRegister())
	require.NoError(t, err)
	require.NoError(t, uc.SetRole(ctx, "a@x.com", entity.RoleAdmin))
	u, _ := repo.FindByEmail(ctx, "a@x.com")
	assert.Equal(t, entity.RoleAdmin, u.Role)

	assert.ErrorIs(t, uc.SetRole(ctx, "a@x.com", "superuser"), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.SetRole(ctx, "nadie@x.com", entity.RoleAdmin), domain.ErrNotFound)
}
