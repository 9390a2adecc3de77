package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecretKey = "12345678901234567890123456789012"

func TestJWTMaker(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	if err != nil {
		t.Fatalf("new maker: %v", err)
	}

	userID := "3f2c1b7a-9d4e-4f6a-8b2c-1d3e5f7a9b0c"
	tokenString, payload, err := maker.CreateToken(userID, time.Minute)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	if tokenString == "" || payload == nil {
		t.Fatalf("expected token and payload")
	}

	verified, err := maker.VerifyToken(tokenString)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if verified.Subject != userID {
		t.Fatalf("expected subject %s, got %s", userID, verified.Subject)
	}
	if verified.Issuer != "taphoa" {
		t.Fatalf("expected issuer taphoa, got %s", verified.Issuer)
	}
	if verified.ID == "" {
		t.Fatalf("expected token ID to be set")
	}
}

func TestNewJWTMakerRejectsShortKey(t *testing.T) {
	if _, err := NewJWTMaker("too-short"); err == nil {
		t.Fatalf("expected error for short secret key")
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	if err != nil {
		t.Fatalf("new maker: %v", err)
	}

	tokenString, _, err := maker.CreateToken("user-1", -time.Minute)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	if _, err = maker.VerifyToken(tokenString); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected expired token error, got %v", err)
	}
}

func TestVerifyTokenRejectsNoneAlgorithm(t *testing.T) {
	payload, err := NewPayload("user-1", time.Minute)
	if err != nil {
		t.Fatalf("new payload: %v", err)
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodNone, payload)
	tokenString, err := jwtToken.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	maker, err := NewJWTMaker(testSecretKey)
	if err != nil {
		t.Fatalf("new maker: %v", err)
	}
	if _, err = maker.VerifyToken(tokenString); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	if err != nil {
		t.Fatalf("new maker: %v", err)
	}

	tokenString, _, err := maker.CreateToken("user-1", time.Minute)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	parts := strings.Split(tokenString, ".")
	tampered := parts[0] + "." + parts[1] + ".AAAA"
	if _, err = maker.VerifyToken(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}
