package helpers

import (
	"errors"
	"strings"
)

// ErrUserRejected is returned when the signing prompt is declined
var ErrUserRejected = errors.New("user rejected transaction")

var rejectionPhrases = []string{
	"user rejected",
	"user denied",
	"rejected by user",
}

// IsUserRejection reports whether err means the user declined to sign.
// Providers are inconsistent, so a known phrase anywhere in the chain counts.
func IsUserRejection(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUserRejected) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, phrase := range rejectionPhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
