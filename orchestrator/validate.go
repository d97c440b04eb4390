package orchestrator

import (
	"strings"

	"postgen/generator"
)

// Validate checks raw and applies the tone and platform defaults. The topic is
// kept verbatim; it only has to be non-blank.
func Validate(raw generator.PostRequest) (generator.PostRequest, error) {
	if strings.TrimSpace(raw.Topic) == "" {
		return generator.PostRequest{}, &ValidationError{
			Field:   "topic",
			Message: ErrMsgMissingTopic,
			Hint:    HintMissingTopic,
		}
	}
	return raw.WithDefaults(), nil
}
