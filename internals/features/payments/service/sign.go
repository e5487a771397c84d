// file: internals/features/payments/service/sign.go
package service

import (
	"github.com/golang-jwt/jwt/v4"

	"schoolpay_backend/internals/configs"
)

/* =========================================================
   Sign Generator
   Binds a payload to the gateway's shared secret as an HS256 JWT.
   No expiry, no nonce: the token is single-purpose and generated
   fresh per call. Identical payload + secret ⇒ identical token
   (MapClaims marshals with sorted keys).
========================================================= */

type SignGenerator struct {
	cfg configs.GatewayConfig
}

func NewSignGenerator(cfg configs.GatewayConfig) *SignGenerator {
	return &SignGenerator{cfg: cfg}
}

// SignForCreate signs the create-collect-request payload
// {school_id, amount, callback_url}. Amount is stringified by the caller.
func (s *SignGenerator) SignForCreate(amount, callbackURL string) (string, error) {
	if err := s.cfg.Validate(); err != nil {
		return "", err
	}
	claims := jwt.MapClaims{
		"school_id":    s.cfg.SchoolID,
		"amount":       amount,
		"callback_url": callbackURL,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.PGKey))
}

// SignForStatus signs the status-check payload
// {school_id, collect_request_id}.
func (s *SignGenerator) SignForStatus(collectRequestID string) (string, error) {
	if err := s.cfg.Validate(); err != nil {
		return "", err
	}
	claims := jwt.MapClaims{
		"school_id":          s.cfg.SchoolID,
		"collect_request_id": collectRequestID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.PGKey))
}
