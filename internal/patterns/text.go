package patterns

import (
	"encoding/json"
	"fmt"

	"github.com/ShayCichocki/swarmie/pkg/models"
)

// payloadText renders a result payload as text for embedding in a
// follow-up prompt. Strings pass through; structured payloads are
// serialized as indented JSON.
func payloadText(result models.InvokeResult) string {
	payload := result.Payload()
	if s, ok := payload.(string); ok {
		return s
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", payload)
	}
	return string(data)
}
