package helpers

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// GravatarURL derives an avatar URL deterministically from an email
// address, so the same email always maps to the same avatar.
// https://docs.gravatar.com/api/avatars/images/
func GravatarURL(email string, size int) string {
	if size <= 0 {
		size = 200
	}
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=%d&r=pg&d=mm", hex.EncodeToString(sum[:]), size)
}
