package hub

import (
	"encoding/json"
	"fmt"
	"sync"

	"chat-hub/internal/models"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const envelopeSchema = `{
  "type": "object",
  "required": ["event"],
  "properties": {
    "event": {"type": "string", "minLength": 1, "maxLength": 64},
    "ack": {"type": "string", "minLength": 1, "maxLength": 128}
  }
}`

// Call signals must at least name their room; sdp and candidate are opaque.
const callSignalSchema = `{
  "type": "object",
  "required": ["roomId"],
  "properties": {
    "roomId": {"type": "string", "minLength": 1}
  }
}`

type schemaRegistry struct {
	once     sync.Once
	initErr  error
	envelope *jsonschema.Schema
	events   map[models.EventType]*jsonschema.Schema
}

var schemas schemaRegistry

func initSchemas() error {
	schemas.once.Do(func() {
		env, err := jsonschema.CompileString("envelope", envelopeSchema)
		if err != nil {
			schemas.initErr = err
			return
		}
		schemas.envelope = env

		signal, err := jsonschema.CompileString("call_signal", callSignalSchema)
		if err != nil {
			schemas.initErr = err
			return
		}
		schemas.events = map[models.EventType]*jsonschema.Schema{
			models.EventCallOffer:        signal,
			models.EventCallAnswer:       signal,
			models.EventCallIceCandidate: signal,
		}
	})
	return schemas.initErr
}

// parseEnvelope validates a raw frame and decodes it.
func parseEnvelope(raw []byte) (*models.Envelope, error) {
	if err := initSchemas(); err != nil {
		return nil, err
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := schemas.envelope.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	var env models.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if schema := schemas.events[env.Event]; schema != nil {
		var data any
		if len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, &data); err != nil {
				return &env, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
			}
		}
		if err := schema.Validate(data); err != nil {
			return &env, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	}
	return &env, nil
}
