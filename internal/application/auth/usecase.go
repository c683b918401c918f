package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/colhetron/separacao-api/internal/application/dto"
	"github.com/colhetron/separacao-api/internal/domain"
	"github.com/colhetron/separacao-api/internal/domain/entity"
	"github.com/colhetron/separacao-api/internal/domain/repository"
	"github.com/colhetron/separacao-api/pkg/jwt"
	"github.com/colhetron/separacao-api/pkg/logger"
)

// Validade do código de recuperação enviado por e-mail.
const recoveryCodeTTL = 15 * time.Minute

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Mailer porto para envio do código de recuperação por e-mail.
type Mailer interface {
	SendRecoveryCode(to, code string) error
}

// AuthUseCase casos de uso de autenticação: registro, login e recuperação de senha.
type AuthUseCase struct {
	userRepo     repository.UserRepository
	recoveryRepo repository.RecoveryCodeRepository
	mailer       Mailer
	jwtCfg       JWTConfig
	log          *logger.Logger
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	recoveryRepo repository.RecoveryCodeRepository,
	mailer Mailer,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		recoveryRepo: recoveryRepo,
		mailer:       mailer,
		jwtCfg:       jwtCfg,
		log:          log,
	}
}

// RegisterUser cria um usuário: hasheia a senha com bcrypt e persiste.
// Devolve ErrEmailAlreadyExists se o e-mail já estiver registrado.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.FindByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	role := in.Role
	if role == "" {
		role = entity.RoleOperador
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, gera JWT e retorna token + usuário.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// RequestRecovery gera um código de 6 dígitos, persiste com expiração e envia por e-mail.
// E-mail inexistente não devolve erro para não revelar quais contas existem.
func (uc *AuthUseCase) RequestRecovery(in dto.RequestRecoveryRequest) error {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return err
	}
	if user == nil {
		uc.log.Debug().Str("email", in.Email).Msg("recuperação solicitada para e-mail desconhecido")
		return nil
	}
	code, err := generateCode()
	if err != nil {
		return err
	}
	now := time.Now()
	rc := &entity.RecoveryCode{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: now.Add(recoveryCodeTTL),
		Used:      false,
		CreatedAt: now,
	}
	if err := uc.recoveryRepo.Create(rc); err != nil {
		return err
	}
	if err := uc.mailer.SendRecoveryCode(user.Email, code); err != nil {
		return fmt.Errorf("enviar código de recuperação: %w", err)
	}
	return nil
}

// ResetPassword troca a senha mediante código válido; o código é marcado como usado.
func (uc *AuthUseCase) ResetPassword(in dto.ResetPasswordRequest) error {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrInvalidRecoveryCode // mesma resposta para não revelar contas
	}
	rc, err := uc.recoveryRepo.FindValid(user.ID, in.Code)
	if err != nil {
		return err
	}
	if rc == nil {
		return domain.ErrInvalidRecoveryCode
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := uc.userRepo.UpdatePassword(user.ID, string(hash)); err != nil {
		return err
	}
	return uc.recoveryRepo.MarkUsed(rc.ID)
}

// generateCode gera um código numérico de 6 dígitos com crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
