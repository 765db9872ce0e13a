package gateway

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/common"
)

const maxInspectedBody = 64 << 10

// RejectionDetector decides whether a response means the access credential
// was refused. HTTP 401 always is. Phrases are the legacy shim for servers
// that answer an invalid credential with a message instead of a status.
type RejectionDetector struct {
	phrases map[string]struct{}
}

func NewRejectionDetector(phrases []string) *RejectionDetector {
	d := &RejectionDetector{phrases: make(map[string]struct{}, len(phrases))}
	for _, p := range phrases {
		if p != "" {
			d.phrases[p] = struct{}{}
		}
	}
	return d
}

// Rejected reports whether resp is a rejection. When the body has to be
// inspected it is restored, so resp stays readable by the caller.
func (d *RejectionDetector) Rejected(resp *http.Response) (bool, error) {
	if resp.StatusCode == http.StatusUnauthorized {
		return true, nil
	}
	if len(d.phrases) == 0 || resp.Body == nil || resp.Body == http.NoBody {
		return false, nil
	}

	head, err := io.ReadAll(io.LimitReader(resp.Body, maxInspectedBody+1))
	if err != nil {
		return false, fmt.Errorf("read response body: %w", err)
	}
	resp.Body = &replayBody{Reader: io.MultiReader(bytes.NewReader(head), resp.Body), Closer: resp.Body}

	if len(head) > maxInspectedBody {
		return false, nil
	}
	_, hit := d.phrases[common.ServerMessage(head)]
	return hit, nil
}

type replayBody struct {
	io.Reader
	io.Closer
}
