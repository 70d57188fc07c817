package rtc

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken токен не прошёл проверку подписи или формата
	ErrInvalidToken = errors.New("rtc: invalid access token")
	// ErrTokenExpired срок действия токена истёк
	ErrTokenExpired = errors.New("rtc: access token expired")
	// ErrSign ошибка подписи токена
	ErrSign = errors.New("rtc: failed to sign access token")
)

// Grant права участника на комнату встречи
type Grant struct {
	BookingID int64
	Room      string
	Identity  string
	Name      string
	ExpiresAt time.Time
}

// Issuer выпускает и проверяет токены доступа к комнатам RTC-провайдера
// Токен - JWT HS256, подписанный секретом API-ключа провайдера
type Issuer struct {
	url    string
	apiKey string
	secret []byte
}

// NewIssuer создает выпускающего токены для провайдера по адресу url
func NewIssuer(url, apiKey, apiSecret string) *Issuer {
	return &Issuer{
		url:    url,
		apiKey: apiKey,
		secret: []byte(apiSecret),
	}
}

// URL адрес RTC-провайдера, к которому подключается клиент
func (i *Issuer) URL() string {
	return i.url
}

// Issue выпускает токен, действующий с now до grant.ExpiresAt
func (i *Issuer) Issue(grant Grant, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"iss":  i.apiKey,
		"sub":  grant.Identity,
		"jti":  uuid.NewString(),
		"name": grant.Name,
		"room": grant.Room,
		"bid":  grant.BookingID,
		"nbf":  now.Add(-time.Minute).Unix(),
		"iat":  now.Unix(),
		"exp":  grant.ExpiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSign, err)
	}
	return token, nil
}

// Verify проверяет подпись, издателя и срок действия токена на момент now
func (i *Issuer) Verify(tokenString string, now time.Time) (*Grant, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.apiKey),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, ErrTokenExpired
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	grant := &Grant{}
	grant.Identity, _ = claims["sub"].(string)
	grant.Name, _ = claims["name"].(string)
	grant.Room, _ = claims["room"].(string)
	if bid, ok := claims["bid"].(float64); ok {
		grant.BookingID = int64(bid)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}
	grant.ExpiresAt = exp.Time

	if grant.Identity == "" || grant.Room == "" || grant.BookingID == 0 {
		return nil, fmt.Errorf("%w: missing grant claims", ErrInvalidToken)
	}

	return grant, nil
}
