package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ripu1821/mobile-auth-service/internal/domain"
	"github.com/ripu1821/mobile-auth-service/internal/observability"
	"github.com/ripu1821/mobile-auth-service/internal/repository"
	"github.com/ripu1821/mobile-auth-service/internal/security"
)

var (
	ErrInvalidOtp  = errors.New("invalid otp")
	ErrUserDeleted = errors.New("user is deleted")
	// ErrAccessDenied is deliberately generic: refresh failures must not
	// reveal whether the session, the ciphertext or the comparison failed.
	ErrAccessDenied = errors.New("access denied")
)

type DeviceDetails struct {
	DeviceUniqueID  string `json:"device_unique_id"`
	DeviceTokenFCM  string `json:"device_token_fcm"`
	DeviceModel     string `json:"device_model"`
	OperatingSystem string `json:"operating_system"`
	OSVersion       string `json:"os_version"`
	AppVersion      string `json:"app_version"`
}

type SignUpInput struct {
	MobileNumber string  `json:"mobile_number"`
	Email        *string `json:"email,omitempty"`
	Name         string  `json:"name"`
}

type VerifyOtpInput struct {
	MobileNumber  string        `json:"mobile_number"`
	OTP           string        `json:"otp"`
	DeviceDetails DeviceDetails `json:"device_details"`
}

type VerifyOtpResult struct {
	User  *domain.User     `json:"user"`
	Token domain.TokenPair `json:"token"`
}

type AuthServiceInterface interface {
	SignUp(ctx context.Context, input SignUpInput) (*domain.User, error)
	VerifyOtp(ctx context.Context, input VerifyOtpInput) (*VerifyOtpResult, error)
	Logout(ctx context.Context, deviceUniqueID, accessToken string) (*domain.DeviceSession, error)
	RefreshTokens(ctx context.Context, deviceUniqueID, refreshToken string) (domain.TokenPair, error)
}

// AuthService coordinates the user directory, device sessions, token
// issuance, refresh-token encryption and the revocation blacklist.
type AuthService struct {
	users         repository.UserRepository
	sessions      repository.DeviceSessionRepository
	tokens        *security.TokenManager
	blacklist     TokenBlacklist
	otp           OTPVerifier
	encryptionKey string
	defaultRegion string
	now           func() time.Time
}

func NewAuthService(
	users repository.UserRepository,
	sessions repository.DeviceSessionRepository,
	tokens *security.TokenManager,
	blacklist TokenBlacklist,
	otp OTPVerifier,
	encryptionKey string,
	defaultRegion string,
) *AuthService {
	return &AuthService{
		users:         users,
		sessions:      sessions,
		tokens:        tokens,
		blacklist:     blacklist,
		otp:           otp,
		encryptionKey: encryptionKey,
		defaultRegion: defaultRegion,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// SignUp registers a new user by mobile number. No token is issued here;
// the caller logs in through VerifyOtp afterwards.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*domain.User, error) {
	mobile, err := security.NormalizeMobileNumber(input.MobileNumber, s.defaultRegion)
	if err != nil {
		observability.RecordAuthEvent(ctx, "signup", "invalid_phone")
		return nil, err
	}

	if _, err := s.users.FindByMobileNumber(mobile); err == nil {
		observability.RecordAuthEvent(ctx, "signup", "conflict")
		return nil, repository.ErrDuplicateMobileNumber
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		observability.RecordAuthEvent(ctx, "signup", "error")
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	user := &domain.User{
		MobileNumber: mobile,
		Email:        input.Email,
		Name:         input.Name,
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateMobileNumber) || errors.Is(err, repository.ErrDuplicateEmail) {
			observability.RecordAuthEvent(ctx, "signup", "conflict")
			return nil, err
		}
		observability.RecordAuthEvent(ctx, "signup", "error")
		return nil, fmt.Errorf("create user: %w", err)
	}
	observability.RecordAuthEvent(ctx, "signup", "success")
	return user, nil
}

// VerifyOtp logs a user in on a device: it checks the OTP, issues a token
// pair, encrypts the refresh token and upserts the device session keyed by
// device_unique_id. Tokens are computed before the session write, so a
// failed write discards them with nothing external mutated.
func (s *AuthService) VerifyOtp(ctx context.Context, input VerifyOtpInput) (*VerifyOtpResult, error) {
	mobile, err := security.NormalizeMobileNumber(input.MobileNumber, s.defaultRegion)
	if err != nil {
		observability.RecordAuthEvent(ctx, "verify_otp", "invalid_phone")
		return nil, err
	}

	user, err := s.users.FindByMobileNumber(mobile)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			observability.RecordAuthEvent(ctx, "verify_otp", "user_not_found")
			return nil, err
		}
		observability.RecordAuthEvent(ctx, "verify_otp", "error")
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user.IsDeleted {
		observability.RecordAuthEvent(ctx, "verify_otp", "user_deleted")
		return nil, ErrUserDeleted
	}

	ok, err := s.otp.Verify(ctx, mobile, input.OTP)
	if err != nil {
		observability.RecordAuthEvent(ctx, "verify_otp", "error")
		return nil, fmt.Errorf("verify otp: %w", err)
	}
	if !ok {
		observability.RecordAuthEvent(ctx, "verify_otp", "invalid_otp")
		return nil, ErrInvalidOtp
	}

	pair, err := s.tokens.IssueTokenPair(ctx, user.ID, input.DeviceDetails.DeviceUniqueID)
	if err != nil {
		observability.RecordAuthEvent(ctx, "verify_otp", "error")
		return nil, err
	}
	ciphertext, err := security.EncryptData(pair.RefreshToken, s.encryptionKey)
	if err != nil {
		observability.RecordAuthEvent(ctx, "verify_otp", "error")
		return nil, err
	}

	lastLogin := s.now()
	session := &domain.DeviceSession{
		UserID:          user.ID,
		DeviceUniqueID:  input.DeviceDetails.DeviceUniqueID,
		DeviceTokenFCM:  input.DeviceDetails.DeviceTokenFCM,
		DeviceModel:     input.DeviceDetails.DeviceModel,
		OperatingSystem: input.DeviceDetails.OperatingSystem,
		OSVersion:       input.DeviceDetails.OSVersion,
		AppVersion:      input.DeviceDetails.AppVersion,
		IsLogin:         true,
		LastLogin:       &lastLogin,
		RefreshToken:    ciphertext,
	}
	if _, err := s.sessions.UpsertByDeviceID(session); err != nil {
		observability.RecordAuthEvent(ctx, "verify_otp", "error")
		return nil, fmt.Errorf("upsert device session: %w", err)
	}

	observability.RecordAuthEvent(ctx, "verify_otp", "success")
	return &VerifyOtpResult{User: user, Token: pair}, nil
}

// Logout stamps last_logout on the device session and blacklists the access
// token so it is rejected for the rest of its signed lifetime.
func (s *AuthService) Logout(ctx context.Context, deviceUniqueID, accessToken string) (*domain.DeviceSession, error) {
	session, err := s.sessions.MarkLoggedOut(deviceUniqueID, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrDeviceSessionNotFound) {
			observability.RecordAuthEvent(ctx, "logout", "not_found")
			return nil, err
		}
		observability.RecordAuthEvent(ctx, "logout", "error")
		return nil, fmt.Errorf("mark logged out: %w", err)
	}
	if err := s.blacklist.Add(ctx, accessToken); err != nil {
		observability.RecordAuthEvent(ctx, "logout", "error")
		return nil, err
	}
	observability.RecordAuthEvent(ctx, "logout", "success")
	return session, nil
}

// RefreshTokens rotates the refresh token for a device. The presented token
// must match the decrypted stored ciphertext; on success a new pair is
// issued and the stored ciphertext is swapped with a guard on the old value,
// so each refresh token is usable exactly once.
func (s *AuthService) RefreshTokens(ctx context.Context, deviceUniqueID, refreshToken string) (domain.TokenPair, error) {
	session, err := s.sessions.FindByDeviceID(deviceUniqueID)
	if err != nil {
		if errors.Is(err, repository.ErrDeviceSessionNotFound) {
			observability.RecordAuthEvent(ctx, "refresh", "denied")
			return domain.TokenPair{}, ErrAccessDenied
		}
		observability.RecordAuthEvent(ctx, "refresh", "error")
		return domain.TokenPair{}, fmt.Errorf("lookup device session: %w", err)
	}
	if session.RefreshToken == "" {
		observability.RecordAuthEvent(ctx, "refresh", "denied")
		return domain.TokenPair{}, ErrAccessDenied
	}

	stored, err := security.DecryptData(session.RefreshToken, s.encryptionKey)
	if err != nil {
		if errors.Is(err, security.ErrEncryptionKeyMissing) {
			observability.RecordAuthEvent(ctx, "refresh", "error")
			return domain.TokenPair{}, err
		}
		observability.RecordAuthEvent(ctx, "refresh", "denied")
		return domain.TokenPair{}, ErrAccessDenied
	}
	if stored != refreshToken {
		observability.RecordAuthEvent(ctx, "refresh", "denied")
		return domain.TokenPair{}, ErrAccessDenied
	}

	pair, err := s.tokens.IssueTokenPair(ctx, session.UserID, deviceUniqueID)
	if err != nil {
		observability.RecordAuthEvent(ctx, "refresh", "error")
		return domain.TokenPair{}, err
	}
	ciphertext, err := security.EncryptData(pair.RefreshToken, s.encryptionKey)
	if err != nil {
		observability.RecordAuthEvent(ctx, "refresh", "error")
		return domain.TokenPair{}, err
	}

	if err := s.sessions.RotateRefreshToken(session.ID, session.RefreshToken, ciphertext); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenStale) {
			observability.RecordAuthEvent(ctx, "refresh", "denied")
			return domain.TokenPair{}, ErrAccessDenied
		}
		observability.RecordAuthEvent(ctx, "refresh", "error")
		return domain.TokenPair{}, fmt.Errorf("rotate refresh token: %w", err)
	}

	observability.RecordAuthEvent(ctx, "refresh", "success")
	return pair, nil
}
