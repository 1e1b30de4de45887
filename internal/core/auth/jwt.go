package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"` // ADMIN / ARTISAN / CUSTOMER
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

type JWTer struct {
	Secret     []byte
	Issuer     string
	AdminTTL   time.Duration // 管理端 cookie 会话
	ArtisanTTL time.Duration // 手工匠 App 端
}

func (j *JWTer) issue(c Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	c.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    j.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(j.Secret)
}

func (j *JWTer) IssueAdmin(uid, email string) (string, error) {
	return j.issue(Claims{UserID: uid, Email: email, Role: "ADMIN"}, j.AdminTTL)
}

func (j *JWTer) IssueArtisan(uid, email, name string) (string, error) {
	return j.issue(Claims{UserID: uid, Email: email, Role: "ARTISAN", Name: name}, j.ArtisanTTL)
}

func (j *JWTer) Parse(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return j.Secret, nil
	}, jwt.WithIssuer(j.Issuer), jwt.WithLeeway(60*time.Second))

	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, errors.New("invalid token")
}
