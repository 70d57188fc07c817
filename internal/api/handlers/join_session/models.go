package join_session

import (
	"time"

	joinSession "github.com/m04kA/SMC-MentoringService/internal/usecase/join_session"
)

// JoinSessionRequest HTTP request model
type JoinSessionRequest struct {
	DisplayName string `json:"displayName,omitempty" validate:"max=100"`
}

// JoinAuthorizationResponse HTTP response model
type JoinAuthorizationResponse struct {
	BookingID   int64  `json:"bookingId"`
	RoomID      string `json:"roomId"`
	MeetingRef  string `json:"meetingRef"`
	Identity    string `json:"identity"`
	DisplayName string `json:"displayName"`
	Token       string `json:"token"`
	ProviderURL string `json:"providerUrl"`
	ExpiresAt   string `json:"expiresAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *joinSession.Response) *JoinAuthorizationResponse {
	return &JoinAuthorizationResponse{
		BookingID:   resp.BookingID,
		RoomID:      resp.RoomID,
		MeetingRef:  resp.MeetingRef,
		Identity:    resp.Identity,
		DisplayName: resp.DisplayName,
		Token:       resp.Token,
		ProviderURL: resp.ProviderURL,
		ExpiresAt:   resp.ExpiresAt.Format(time.RFC3339),
	}
}
