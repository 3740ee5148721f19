package meeting

import (
	"errors"
	"time"

	"lexaid/config"

	"github.com/golang-jwt/jwt"
)

// RoomTokenTTL bounds how long an embedded meeting room token stays valid.
// Tokens are minted right before the client opens the embedded view.
const RoomTokenTTL = 2 * time.Hour

// GenerateRoomToken signs a short-lived token binding a user to one meeting
// room. The embedded meeting view presents it to join the room.
func GenerateRoomToken(appointmentID, userID, displayName string) (string, error) {
	secret := config.AppConfig.MeetingEmbedSecret
	if secret == "" {
		return "", errors.New("meeting embed secret not configured")
	}
	claims := jwt.MapClaims{
		"room": appointmentID,
		"sub":  userID,
		"name": displayName,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(RoomTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseRoomToken validates a room token and returns the room and subject.
func ParseRoomToken(tokenString string) (room, userID string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.MeetingEmbedSecret), nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid room token")
	}
	room, _ = claims["room"].(string)
	userID, _ = claims["sub"].(string)
	if room == "" || userID == "" {
		return "", "", errors.New("room token missing claims")
	}
	return room, userID, nil
}
