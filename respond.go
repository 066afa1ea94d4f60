package agentflowmedia

import (
	"context"

	"go.uber.org/zap"

	"github.com/BaSui01/agentflow-media/host"
	"github.com/BaSui01/agentflow-media/mediagen"
)

// User-facing messages per error category: credential, malformed prompt,
// content/complexity, timeout, failed, generic.
const (
	msgUnauthorized = "I couldn't reach the generation service: the configured API credential was rejected. Please check the plugin's API key."
	msgInvalid      = "The generation service couldn't understand that prompt. Try rephrasing it."
	msgRejected     = "The generation service couldn't process that prompt — it may be too complex or touch on restricted content. Try a simpler or different prompt."
	msgTimeout      = "Video generation took too long and timed out. Please try again — shorter prompts usually finish faster."
	msgFailed       = "The video generation job failed on the service side. Please try again."
	msgGeneric      = "Sorry, something went wrong while generating your media. Please try again."
)

// userMessageFor translates a generation error into user-facing text.
func userMessageFor(err error) string {
	switch mediagen.CodeOf(err) {
	case mediagen.ErrUnauthorized:
		return msgUnauthorized
	case mediagen.ErrInvalidPrompt:
		return msgInvalid
	case mediagen.ErrContentRejected:
		return msgRejected
	case mediagen.ErrTimeout:
		return msgTimeout
	case mediagen.ErrGenerationFailed:
		return msgFailed
	default:
		return msgGeneric
	}
}

// errorResponse builds the response for a failed generation. When the error
// carries a partial result URL, it is attached so the user still gets
// whatever the service produced.
func errorResponse(err error, kind host.AttachmentKind, inReplyTo string) *host.Response {
	resp := &host.Response{
		Text:      userMessageFor(err),
		InReplyTo: inReplyTo,
	}
	if url := mediagen.ResultURLOf(err); url != "" {
		att := host.NewAttachment("", kind)
		att.URL = url
		att.Source = PluginName
		att.Title = "Partial result"
		resp.Attachments = append(resp.Attachments, att)
	}
	return resp
}

// deliver invokes the callback exactly once. Delivery failures are logged
// and absorbed: there is nobody further up to escalate to.
func deliver(ctx context.Context, cb host.Callback, resp *host.Response, logger *zap.Logger) error {
	if cb == nil {
		logger.Warn("no callback provided, dropping response")
		return nil
	}
	if err := cb(ctx, resp); err != nil {
		logger.Error("response delivery failed", zap.Error(err))
	}
	return nil
}
