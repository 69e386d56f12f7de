package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"quizforge/config"
	"quizforge/internal/dto"
	"quizforge/internal/model"
	"quizforge/internal/repository"
)

// AuthService handles registration and session token issuance. Login failures
// are indistinguishable between unknown email and wrong password so accounts
// cannot be enumerated.
type AuthService interface {
	Register(req dto.RegisterDTO) (*dto.AccountResponseDTO, error)
	Login(req dto.LoginDTO) (*dto.TokenResponseDTO, error)
	GetAccount(accountID uint) (*dto.AccountResponseDTO, error)
}

type authService struct {
	accountRepo repository.AccountRepository
	cfg         *config.Config
}

func NewAuthService(accountRepo repository.AccountRepository, cfg *config.Config) AuthService {
	return &authService{accountRepo: accountRepo, cfg: cfg}
}

func (s *authService) Register(req dto.RegisterDTO) (*dto.AccountResponseDTO, error) {
	taken, err := s.accountRepo.ExistsByEmail(req.Email)
	if err != nil {
		log.Error().Err(err).Msg("Register: failed to check email uniqueness")
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("Register: failed to hash password")
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account := model.Account{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.accountRepo.Create(&account); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Register: failed to create account")
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	var resp dto.AccountResponseDTO
	if err := copier.Copy(&resp, &account); err != nil {
		return nil, fmt.Errorf("error preparing account response: %w", err)
	}
	log.Info().Uint("accountID", account.ID).Msg("Account registered")
	return &resp, nil
}

func (s *authService) Login(req dto.LoginDTO) (*dto.TokenResponseDTO, error) {
	account, err := s.accountRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		log.Error().Err(err).Msg("Login: failed to look up account")
		return nil, fmt.Errorf("error looking up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.Auth.JWTTTLHours) * time.Hour)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(account.ID), 10),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Auth.JWTSecret))
	if err != nil {
		log.Error().Err(err).Uint("accountID", account.ID).Msg("Login: failed to sign token")
		return nil, fmt.Errorf("error signing session token: %w", err)
	}

	log.Info().Uint("accountID", account.ID).Msg("Account logged in")
	return &dto.TokenResponseDTO{Token: signed, ExpiresAt: expiresAt}, nil
}

func (s *authService) GetAccount(accountID uint) (*dto.AccountResponseDTO, error) {
	account, err := s.accountRepo.FindByID(accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching account %d: %w", accountID, err)
	}
	var resp dto.AccountResponseDTO
	if err := copier.Copy(&resp, account); err != nil {
		return nil, fmt.Errorf("error preparing account response: %w", err)
	}
	return &resp, nil
}
