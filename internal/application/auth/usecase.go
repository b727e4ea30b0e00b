package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/backroom/internal/application/dto"
	"github.com/tu-usuario/backroom/internal/application/ports"
	"github.com/tu-usuario/backroom/internal/domain"
	"github.com/tu-usuario/backroom/internal/domain/repository"
	"github.com/tu-usuario/backroom/pkg/jwt"
	"github.com/tu-usuario/backroom/pkg/logger"
)

const otpTTL = 10 * time.Minute

// otpMessage copia del mensaje que recibe el usuario por WhatsApp.
const otpMessage = "🔐 Your Backroom verification code is: *%s*\n\nThis code expires in 10 minutes.\n\nIf you didn't request this, please ignore this message."

// JWTConfig configuración para generación de tokens del dashboard.
type JWTConfig struct {
	Secret  string
	ExpDays int
	Issuer  string
}

// UseCase login del dashboard por OTP: el código viaja por WhatsApp (gratis,
// mismo canal que el inventario) y se guarda solo su hash bcrypt con TTL.
type UseCase struct {
	users     repository.UserRepository
	otps      ports.OTPStore
	messenger ports.Messenger
	jwtCfg    JWTConfig
	log       *logger.Logger
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(users repository.UserRepository, otps ports.OTPStore, messenger ports.Messenger, jwtCfg JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{users: users, otps: otps, messenger: messenger, jwtCfg: jwtCfg, log: log}
}

// RequestOTP genera un código de 6 dígitos, guarda su hash y lo envía por
// WhatsApp. El código en claro nunca se persiste.
func (uc *UseCase) RequestOTP(ctx context.Context, phone string) error {
	if phone == "" {
		return domain.ErrInvalidInput
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generar OTP: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashear OTP: %w", err)
	}
	if err := uc.otps.Put(ctx, phone, string(hash), otpTTL); err != nil {
		return fmt.Errorf("guardar OTP: %w", err)
	}
	if err := uc.messenger.SendMessage(ctx, phone, fmt.Sprintf(otpMessage, code)); err != nil {
		return fmt.Errorf("enviar OTP: %w", err)
	}

	uc.log.Info().Str("phone", phone).Msg("OTP enviado")
	return nil
}

// VerifyOTP canjea el código: compara contra el hash (consumido atómicamente,
// un solo intento por código) y, si coincide, hace upsert del usuario y emite
// el token del dashboard.
func (uc *UseCase) VerifyOTP(ctx context.Context, phone, code string) (*dto.LoginResponse, error) {
	if phone == "" || code == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := uc.otps.Take(ctx, phone)
	if err != nil {
		return nil, err
	}
	if hash == "" {
		return nil, domain.ErrOTPMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)); err != nil {
		return nil, domain.ErrOTPMismatch
	}

	user, err := uc.users.UpsertByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, phone, uc.jwtCfg.Issuer, uc.jwtCfg.ExpDays)
	if err != nil {
		return nil, fmt.Errorf("emitir token: %w", err)
	}

	uc.log.Info().Str("phone", phone).Msg("login verificado")
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:           user.ID,
			Phone:        user.Phone,
			BusinessName: user.BusinessName,
		},
	}, nil
}

// generateCode produce un código de 6 dígitos con crypto/rand (100000-999999).
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
