package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// ItemUUID identifies one exported item across runs. The site URL scopes post
// IDs, which are only unique within a single WordPress install.
func ItemUUID(siteURL string, postID int64) uuid.UUID {
	site := strings.TrimRight(strings.ToLower(strings.TrimSpace(siteURL)), "/")
	return UUID("wp2md:item:" + site + ":" + strconv.FormatInt(postID, 10))
}
