package hub

import (
	"errors"
	"fmt"

	"chat-hub/internal/services"
)

var (
	ErrInvalidIdentity  = errors.New("invalid identity")
	ErrAccessDenied     = errors.New("access denied")
	ErrNoPeer           = errors.New("no peer in call room")
	ErrNotFound         = errors.New("not found")
	ErrServerError      = errors.New("server error")
	ErrInvalidPayload   = errors.New("invalid payload")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrCallFull         = errors.New("call room is full")
	ErrNotInCall        = errors.New("not in call room")
	ErrCallNotConnected = errors.New("call is not connected")
	ErrJoinCancelled    = errors.New("join cancelled by leave")
	ErrDraining         = errors.New("server is draining")
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrInvalidIdentity, "invalid-identity"},
	{ErrAccessDenied, "access-denied"},
	{ErrNoPeer, "no-peer"},
	{ErrNotFound, "not-found"},
	{ErrServerError, "server-error"},
	{ErrInvalidPayload, "invalid-payload"},
	{ErrNotAuthenticated, "not-authenticated"},
	{ErrCallFull, "room-full"},
	{ErrNotInCall, "not-in-call"},
	{ErrCallNotConnected, "not-connected"},
	{ErrJoinCancelled, "join-cancelled"},
	{ErrDraining, "draining"},
}

// ErrorCode maps an error to the code sent to clients. Anything unknown is a
// server error.
func ErrorCode(err error) string {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return "server-error"
}

// publicMessage hides store details from clients.
func publicMessage(err error) string {
	switch ErrorCode(err) {
	case "server-error":
		return "internal server error"
	default:
		return err.Error()
	}
}

// storeError translates conversation service failures into hub errors.
func storeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, services.ErrNotParticipant):
		return fmt.Errorf("%w: %w", ErrAccessDenied, err)
	case errors.Is(err, services.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return fmt.Errorf("%w: %w", ErrServerError, err)
	}
}

// silent errors are logged and dropped unless the client asked for an ack.
func silent(err error) bool {
	return errors.Is(err, ErrNoPeer) || errors.Is(err, ErrCallFull) || errors.Is(err, ErrJoinCancelled)
}
