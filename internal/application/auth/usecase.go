package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zhihern080614/mochibay-backend/internal/application/dto"
	"github.com/zhihern080614/mochibay-backend/internal/domain"
	"github.com/zhihern080614/mochibay-backend/internal/domain/entity"
	"github.com/zhihern080614/mochibay-backend/internal/domain/repository"
	"github.com/zhihern080614/mochibay-backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// AuthUseCase casos de uso de autenticación: registro, login y gestión de admins.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	cost     int
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, cost: bcrypt.DefaultCost}
}

// WithBcryptCost ajusta el costo de bcrypt (los tests usan bcrypt.MinCost).
func (uc *AuthUseCase) WithBcryptCost(cost int) *AuthUseCase {
	uc.cost = cost
	return uc
}

// Register crea un usuario con rol "user": valida, hashea password con bcrypt y persiste.
// Devuelve domain.ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	user, err := uc.newUser(in, entity.RoleUser)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{Message: "User registered successfully!", UserID: user.ID}, nil
}

// CreateAdmin registra directamente un usuario con rol admin (solo desde la CLI de operación).
func (uc *AuthUseCase) CreateAdmin(ctx context.Context, in dto.RegisterRequest) (string, error) {
	user, err := uc.newUser(in, entity.RoleAdmin)
	if err != nil {
		return "", err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return "", err
	}
	return user.ID, nil
}

// SetRole cambia el rol de un usuario existente.
func (uc *AuthUseCase) SetRole(ctx context.Context, email, role string) error {
	email = normalizeEmail(email)
	if email == "" || !entity.ValidRole(role) {
		return domain.Invalid("email y un rol válido (user, admin) son requeridos")
	}
	return uc.userRepo.UpdateRole(ctx, email, role)
}

// Login verifica email/password y emite un token de sesión.
// Email desconocido y password incorrecto devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.Invalid("Please provide email and password.")
	}
	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// misma latencia que un password incorrecto
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(in.Password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	token, err := jwt.Issue(uc.jwtCfg.Secret, jwt.Claims{
		UserID:    user.ID,
		Name:      user.Name,
		Role:      user.Role,
		Phone:     user.Phone,
		UserClass: user.UserClass,
	}, uc.jwtCfg.TTL, uc.jwtCfg.Issuer)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Message: "Login successful!",
		Token:   token,
		Name:    user.Name,
		Role:    user.Role,
	}, nil
}

func (uc *AuthUseCase) newUser(in dto.RegisterRequest, role string) (*entity.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	userClass := strings.TrimSpace(in.UserClass)
	phone := strings.TrimSpace(in.Phone)
	if name == "" || email == "" || userClass == "" || phone == "" || in.Password == "" {
		return nil, domain.Invalid("All fields are required.")
	}
	if len(in.Password) > 72 {
		return nil, domain.Invalid("password must be at most 72 bytes")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, err
	}
	return &entity.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		UserClass:    userClass,
		Phone:        phone,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var (
	dummyOnce sync.Once
	dummy     []byte
)

func dummyHash() []byte {
	dummyOnce.Do(func() {
		dummy, _ = bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	})
	return dummy
}
