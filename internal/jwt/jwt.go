package jwt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	gojose "github.com/go-jose/go-jose/v4"
	gojwt "github.com/go-jose/go-jose/v4/jwt"

	"github.com/Amxn-2/Employee-Management/internal/domain"
)

// Validation failures the identity gate needs to tell apart.
var (
	ErrTokenMalformed = errors.New("token malformed or signature invalid")
	ErrTokenExpired   = errors.New("token expired")
)

// Generator signs and validates access tokens with the server HMAC secret.
type Generator struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
}

// NewGenerator constructs a token generator.
func NewGenerator(secret, issuer string, accessTTL time.Duration) *Generator {
	return &Generator{secret: []byte(secret), issuer: issuer, accessTTL: accessTTL}
}

// AccessTokenClaims is the custom JWT payload alongside the standard claims.
// The subject carries the student ID; UUID is kept for legacy clients that
// still key on it.
type AccessTokenClaims struct {
	StudentUUID string `json:"uuid"`
	Username    string `json:"username"`
}

// GenerateAccessToken produces a signed JWT for the student.
func (g *Generator) GenerateAccessToken(ctx context.Context, student domain.Student) (string, error) {
	signer, err := gojose.NewSigner(
		gojose.SigningKey{Algorithm: gojose.HS256, Key: g.secret},
		(&gojose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", fmt.Errorf("new signer: %w", err)
	}

	now := time.Now().UTC()
	stdClaims := gojwt.Claims{
		Subject:   strconv.FormatInt(student.ID, 10),
		Issuer:    g.issuer,
		IssuedAt:  gojwt.NewNumericDate(now),
		NotBefore: gojwt.NewNumericDate(now),
		Expiry:    gojwt.NewNumericDate(now.Add(g.accessTTL)),
	}
	custom := AccessTokenClaims{
		StudentUUID: student.UUID,
		Username:    student.Username,
	}

	token, err := gojwt.Signed(signer).Claims(stdClaims).Claims(custom).Serialize()
	if err != nil {
		return "", fmt.Errorf("serialize jwt: %w", err)
	}
	return token, nil
}

// ValidateAccessToken verifies the signature and expiry and returns the
// claims. It returns ErrTokenExpired for expired-but-well-formed tokens and
// ErrTokenMalformed for everything else the token itself can cause.
func (g *Generator) ValidateAccessToken(ctx context.Context, token string) (*gojwt.Claims, *AccessTokenClaims, error) {
	parsed, err := gojwt.ParseSigned(token, []gojose.SignatureAlgorithm{gojose.HS256})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrTokenMalformed, err)
	}

	var std gojwt.Claims
	var custom AccessTokenClaims
	if err := parsed.Claims(g.secret, &std, &custom); err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrTokenMalformed, err)
	}

	err = std.Validate(gojwt.Expected{Issuer: g.issuer, Time: time.Now()})
	switch {
	case err == nil:
	case errors.Is(err, gojwt.ErrExpired):
		return nil, nil, ErrTokenExpired
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrTokenMalformed, err)
	}

	return &std, &custom, nil
}

// SubjectID extracts the student ID from validated standard claims.
func SubjectID(std *gojwt.Claims) (int64, error) {
	id, err := strconv.ParseInt(std.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad subject claim", ErrTokenMalformed)
	}
	return id, nil
}
