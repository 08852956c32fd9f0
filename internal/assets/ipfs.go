package assets

import (
	"bytes"
	"context"
	"fmt"

	shell "github.com/ipfs/go-ipfs-api"

	"github.com/mesalista/backend/internal/config"
)

// Uploader is the asset bridge: push bytes, get back an opaque content
// identifier. Single call, no retry, no chunking.
type Uploader interface {
	Upload(ctx context.Context, data []byte) (string, error)
}

// IPFSUploader talks to a local or remote IPFS node's HTTP API.
type IPFSUploader struct {
	sh *shell.Shell
}

func NewIPFSUploader(cfg config.IPFSConfig) *IPFSUploader {
	sh := shell.NewShell(cfg.APIAddr)
	if cfg.Timeout > 0 {
		sh.SetTimeout(cfg.Timeout)
	}
	return &IPFSUploader{sh: sh}
}

var _ Uploader = (*IPFSUploader)(nil)

func (u *IPFSUploader) Upload(_ context.Context, data []byte) (string, error) {
	cid, err := u.sh.Add(bytes.NewReader(data), shell.Pin(true))
	if err != nil {
		return "", fmt.Errorf("ipfs add: %w", err)
	}
	return cid, nil
}
