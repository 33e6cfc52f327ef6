package jwt

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"cms-api/internal/domain/models"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

const claimUserID = "uid"

func NewToken(user models.User, duration time.Duration, secret string) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims[claimUserID] = user.ID
	claims["email"] = user.Email
	claims["exp"] = time.Now().Add(duration).Unix()

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// NewAuth builds the jwtauth verifier matching NewToken.
func NewAuth(secret string) *jwtauth.JWTAuth {
	return jwtauth.New("HS256", []byte(secret), nil)
}

// CallerFromContext reads the identity placed by jwtauth.Verifier.
// A missing, invalid or expired token yields an anonymous caller.
func CallerFromContext(ctx context.Context) models.Caller {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return models.Anonymous()
	}

	var id int64
	switch v := claims[claimUserID].(type) {
	case float64:
		id = int64(v)
	case int64:
		id = v
	case json.Number:
		id, _ = v.Int64()
	case string:
		id, _ = strconv.ParseInt(v, 10, 64)
	}
	if id < 1 {
		return models.Anonymous()
	}

	return models.Caller{UserID: id}
}
