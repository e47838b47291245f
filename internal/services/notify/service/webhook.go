package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	perr "brandwatch/internal/platform/errors"
	pstrings "brandwatch/internal/platform/strings"
	hitsdom "brandwatch/internal/services/hits/domain"
	"brandwatch/internal/services/notify/domain"
)

// discord rejects content over 2000 chars; stay under with room to spare
const discordContentMax = 1900

// Webhook posts one batched message per run to a chat webhook
type Webhook struct {
	kind   string
	url    string
	client *http.Client
}

var _ domain.SenderPort = (*Webhook)(nil)

// NewSlack builds a slack incoming-webhook sender
func NewSlack(url string, timeout time.Duration) *Webhook {
	return newWebhook("slack", url, timeout)
}

// NewDiscord builds a discord webhook sender
func NewDiscord(url string, timeout time.Duration) *Webhook {
	return newWebhook("discord", url, timeout)
}

func newWebhook(kind, url string, timeout time.Duration) *Webhook {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Webhook{kind: kind, url: url, client: &http.Client{Timeout: timeout}}
}

// Name satisfies domain.SenderPort
func (w *Webhook) Name() string { return w.kind }

// Send satisfies domain.SenderPort
// One POST per call; any non-2xx status is an error
func (w *Webhook) Send(ctx context.Context, hits []hitsdom.Hit) error {
	if len(hits) == 0 {
		return nil
	}

	body, err := json.Marshal(w.payload(hits))
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "encode webhook payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "build webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s webhook post", w.kind)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return perr.Newf(perr.ErrorCodeUnavailable, "%s webhook returned %d", w.kind, resp.StatusCode)
	}
	return nil
}

func (w *Webhook) payload(hits []hitsdom.Hit) map[string]string {
	text := renderText(hits)
	switch w.kind {
	case "discord":
		return map[string]string{"content": pstrings.Truncate(text, discordContentMax)}
	default:
		return map[string]string{"text": text}
	}
}

// renderText builds the shared plain-text digest both sinks understand
func renderText(hits []hitsdom.Hit) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d new brand mention(s)\n", len(hits))
	for _, h := range hits {
		fmt.Fprintf(&sb, "- @%s (%.2f, %s): %s\n",
			h.AuthorHandle, h.Confidence, h.Reason, h.PostURL)
	}
	return strings.TrimRight(sb.String(), "\n")
}
