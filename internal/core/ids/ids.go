package ids

import (
	"strings"

	"blogify/internal/core/apperror"

	"github.com/gofrs/uuid"
)

// Parse turns a path or token identifier into a UUID. label names the
// identifier in the error returned to the client, e.g. "post ID".
func Parse(raw, label string) (uuid.UUID, error) {
	id, err := uuid.FromString(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, apperror.MalformedID("Invalid %s", label)
	}
	return id, nil
}

func New() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}
