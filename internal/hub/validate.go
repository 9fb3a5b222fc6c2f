package hub

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"chat-hub/internal/models"

	"github.com/go-playground/validator/v10"
)

var identityPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:@-]{0,127}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("identity", func(fl validator.FieldLevel) bool {
		return ValidIdentity(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidIdentity reports whether userID is an acceptable user id.
func ValidIdentity(userID string) bool {
	return identityPattern.MatchString(userID)
}

// decode unmarshals data into dst and runs struct validation.
func decode(data json.RawMessage, dst any) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: missing data", ErrInvalidPayload)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}

// decodeConversationID accepts either a bare string or {"conversationId": ...}.
func decodeConversationID(data json.RawMessage) (string, error) {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		id = strings.TrimSpace(id)
		if id == "" {
			return "", fmt.Errorf("%w: missing conversationId", ErrInvalidPayload)
		}
		if err := validate.Var(id, "max=128"); err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		return id, nil
	}

	var ref models.ConversationRef
	if err := decode(data, &ref); err != nil {
		return "", err
	}
	return ref.ConversationID, nil
}

// parseMessage reads the fields the hub needs from a message record and
// keeps the record itself verbatim. createdAt is optional and may be in any
// format the client likes; only RFC 3339 is understood.
func parseMessage(data json.RawMessage) (models.Message, error) {
	var head struct {
		ID             any    `json:"id"`
		ConversationID string `json:"conversationId"`
		SenderID       any    `json:"senderId"`
		CreatedAt      any    `json:"createdAt"`
	}
	if len(data) == 0 {
		return models.Message{}, fmt.Errorf("%w: missing message", ErrInvalidPayload)
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return models.Message{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if strings.TrimSpace(head.ConversationID) == "" {
		return models.Message{}, fmt.Errorf("%w: missing conversationId", ErrInvalidPayload)
	}

	msg := models.Message{
		ConversationID: head.ConversationID,
		Raw:            data,
	}
	if id, ok := head.ID.(string); ok {
		msg.ID = id
	}
	if sender, ok := head.SenderID.(string); ok {
		msg.SenderID = sender
	}
	if s, ok := head.CreatedAt.(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			msg.CreatedAt = t
		}
	}
	return msg, nil
}
