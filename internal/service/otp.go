package service

import "context"

// OTPVerifier abstracts the OTP provider so the auth flow does not care how
// codes are delivered or checked.
type OTPVerifier interface {
	Verify(ctx context.Context, mobileNumber, otp string) (bool, error)
}

// StaticOTPVerifier accepts a single fixed code. It stands in for a real SMS
// provider in development and tests.
type StaticOTPVerifier struct {
	Code string
}

func NewStaticOTPVerifier(code string) *StaticOTPVerifier {
	return &StaticOTPVerifier{Code: code}
}

func (v *StaticOTPVerifier) Verify(_ context.Context, _, otp string) (bool, error) {
	return otp == v.Code, nil
}
