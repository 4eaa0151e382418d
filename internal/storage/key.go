package storage

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	keyIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	keyIDLength   = 12
)

// GenerateKey derives a collision-resistant storage key from an original
// filename: [ownerID/]<12-char random id>/<slugified basename><ext>.
//
// The random segment is the sole collision defense; basename collisions
// are expected. Keys are stable once issued and do not losslessly encode
// the original name beyond the slugified basename and extension. An
// ownerID of 0 means no owner prefix. Empty or extension-only filenames
// still produce a valid key with an empty slug segment.
func GenerateKey(fileName string, ownerID int64) (string, error) {
	ext := filepath.Ext(fileName)
	base := strings.TrimSuffix(filepath.Base(fileName), ext)

	id, err := gonanoid.Generate(keyIDAlphabet, keyIDLength)
	if err != nil {
		return "", err
	}

	key := id + "/" + slug.Make(base) + ext

	if ownerID > 0 {
		key = strconv.FormatInt(ownerID, 10) + "/" + key
	}

	return key, nil
}
