package shortener

import (
	"crypto/rand"
	"fmt"
	"strings"
	"unicode"
)

// Alphabet for short ids (62 characters: 0-9, a-z, A-Z)
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// SlugSuffixLength is the length of the random short id appended to slugs.
const SlugSuffixLength = 8

// GenerateShortID creates a cryptographically secure random Base62 string.
func GenerateShortID(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid short id length: %d", length)
	}

	// Rejection sampling to avoid modulo bias.
	// 248 is the largest multiple of 62 below 256.
	const maxRandomByte = 248

	id := make([]byte, length)
	buf := make([]byte, length*2)
	written := 0

	for written < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read secure random bytes: %w", err)
		}

		for _, b := range buf {
			if b >= maxRandomByte {
				continue
			}
			id[written] = alphabet[int(b)%len(alphabet)]
			written++
			if written == length {
				break
			}
		}
	}

	return string(id), nil
}

// Slugify lowercases the title and collapses every non-alphanumeric run
// into a single hyphen.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "news"
	}
	return slug
}

// NewsSlug derives the external key of an article: slugified title plus a
// random short id for collision avoidance.
func NewsSlug(title string) (string, error) {
	suffix, err := GenerateShortID(SlugSuffixLength)
	if err != nil {
		return "", err
	}
	return Slugify(title) + "-" + suffix, nil
}
