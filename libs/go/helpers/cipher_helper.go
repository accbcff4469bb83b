package helpers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/business"
)

// SimulatedCipherPrefix marks payloads produced by EncryptRouteData.
//
// This is a placeholder for FHE. It is a reversible encoding and provides no
// confidentiality; swap it for a real primitive before storing anything private.
const SimulatedCipherPrefix = "FHE-"

// RoutePayload is the plaintext that gets "encrypted" into a route record
type RoutePayload struct {
	AgeGroup  string   `json:"ageGroup"`
	Interests []string `json:"interests"`
	Museum    string   `json:"museum,omitempty"`
}

// EncryptRouteData produces the simulated cipher text for a route payload
func EncryptRouteData(payload RoutePayload) (business.EncryptedData, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal route payload: %w", err)
	}
	return business.EncryptedData(SimulatedCipherPrefix + base64.StdEncoding.EncodeToString(raw)), nil
}

// DecryptRouteData inverts EncryptRouteData
func DecryptRouteData(data business.EncryptedData) (*RoutePayload, error) {
	s := string(data)
	if !strings.HasPrefix(s, SimulatedCipherPrefix) {
		return nil, fmt.Errorf("payload is missing the %q prefix", SimulatedCipherPrefix)
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(s, SimulatedCipherPrefix))
	if err != nil {
		return nil, fmt.Errorf("failed to decode route payload: %w", err)
	}

	var payload RoutePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal route payload: %w", err)
	}
	return &payload, nil
}
