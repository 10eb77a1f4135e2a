package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ssh-keygen -t rsa -m pem -f jwt-private-key.pem
// openssl rsa -in jwt-private-key.pem -pubout -out jwt-public-key.pem
var jwtSigningMethod = jwt.GetSigningMethod("RS256")

type PlayerClaims struct {
	PlayerId int    `json:"player_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func jwtLifetime() time.Duration {
	if d := config.Jwt.TokenLifetime.Duration; d > 0 {
		return d
	}
	return 24 * time.Hour
}

func createPlayerToken(playerId int, username string) (string, error) {
	claims := PlayerClaims{
		playerId,
		username,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(jwtLifetime())),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	return token.SignedString(jwtPrivateKey)
}

// The signature lives in an HttpOnly cookie while the header and payload stay
// readable to client scripts.
func setPlayerCookies(w http.ResponseWriter, token string) {
	parts := strings.Split(token, ".")
	header, payload, signature := parts[0], parts[1], parts[2]
	jsCookie := http.Cookie{
		Name:     "auth",
		Path:     "/",
		Value:    header + "." + payload,
		Domain:   config.Domain,
		Secure:   config.Production(),
		Expires:  time.Now().Add(jwtLifetime()),
		SameSite: config.HttpCookieSameSite(),
	}
	httpCookie := http.Cookie{
		Name:     "sign",
		Path:     "/",
		Value:    signature,
		Domain:   config.Domain,
		Secure:   config.Production(),
		HttpOnly: true,
		SameSite: config.HttpCookieSameSite(),
	}
	http.SetCookie(w, &jsCookie)
	http.SetCookie(w, &httpCookie)
}

func refreshPlayerCookies(w http.ResponseWriter, claims PlayerClaims) {
	token, err := createPlayerToken(claims.PlayerId, claims.Username)
	if err != nil {
		log.Error("unable to refresh player token: ", err)
		return
	}
	setPlayerCookies(w, token)
}

func clearPlayerCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth",
		Path:     "/",
		MaxAge:   -1,
		Domain:   config.Domain,
		Secure:   config.Production(),
		SameSite: config.HttpCookieSameSite(),
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "sign",
		Path:     "/",
		MaxAge:   -1,
		Domain:   config.Domain,
		Secure:   config.Production(),
		SameSite: config.HttpCookieSameSite(),
	})
}

func getJWTFromCookies(r *http.Request) (string, error) {
	authCookie, err := r.Cookie("auth")
	if err != nil {
		return "", err
	}
	signCookie, err := r.Cookie("sign")
	if err != nil {
		return "", err
	}
	return authCookie.Value + "." + signCookie.Value, nil
}

func getKey(t *jwt.Token) (interface{}, error) {
	return jwtPublicKey, nil
}

func tryParseJWTCookie(tokenString string) (*PlayerClaims, error) {
	if token, err := jwt.ParseWithClaims(
		tokenString, &PlayerClaims{}, getKey,
	); err != nil {
		return nil, err
	} else if claims, ok := token.Claims.(*PlayerClaims); ok {
		return claims, nil
	} else {
		return nil, errors.New("unknown claims type")
	}
}
