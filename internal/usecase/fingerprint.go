package usecase

import (
	"context"
	"crypto/md5" // #nosec G501 -- change detection key, not a security boundary.
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"strings"

	"github.com/zeebo/xxh3"
)

// Hash algorithm names accepted in configuration.
const (
	HashMD5    = "md5"
	HashSHA256 = "sha256"
	HashXXH3   = "xxh3"

	// DefaultHash matches the digests of snapshots written by earlier
	// releases, so existing backup roots keep diffing correctly.
	DefaultHash = HashMD5
)

// fingerprintChunkSize is the streaming read buffer. Content is never
// buffered whole.
const fingerprintChunkSize = 16 * 1024

func newDigester(algo string) (hash.Hash, error) {
	switch strings.ToLower(strings.TrimSpace(algo)) {
	case "", HashMD5:
		return md5.New(), nil // #nosec G401 -- change detection key only.
	case HashSHA256:
		return sha256.New(), nil
	case HashXXH3:
		return xxh3.New(), nil
	default:
		return nil, fmt.Errorf("unknown hash algorithm %q: %w", algo, ErrUsage)
	}
}

// fingerprintFile streams the file at path through the selected hash and
// returns the hex-encoded digest. Identical byte content yields an
// identical digest regardless of path or metadata.
func fingerprintFile(ctx context.Context, fs FileSystemPort, path, algo string) (string, error) {
	h, err := newDigester(algo)
	if err != nil {
		return "", err
	}

	f, err := fs.OpenFile(ctx, path)
	if err != nil {
		return "", fmt.Errorf("open '%s': %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, fingerprintChunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("read '%s': %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
