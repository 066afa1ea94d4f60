package agentflowmedia

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/agentflow-media/config"
	"github.com/BaSui01/agentflow-media/host"
	"github.com/BaSui01/agentflow-media/internal/metrics"
	"github.com/BaSui01/agentflow-media/mediagen"
)

// CapabilityGenerateImage is the name of the image generation capability.
const CapabilityGenerateImage = "generate-image"

// ImageCapability generates a single image from the message text: the prompt
// is first enhanced (best-effort), then sent to the image endpoint, and the
// resulting URL is delivered as an attachment.
type ImageCapability struct {
	cfg       config.Config
	client    *mediagen.Client
	collector *metrics.Collector
	logger    *zap.Logger
}

var _ host.Capability = (*ImageCapability)(nil)

// NewImageCapability creates the image generation capability.
func NewImageCapability(cfg config.Config, client *mediagen.Client, collector *metrics.Collector, logger *zap.Logger) *ImageCapability {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageCapability{
		cfg:       cfg,
		client:    client,
		collector: collector,
		logger:    logger.With(zap.String("capability", CapabilityGenerateImage)),
	}
}

func (c *ImageCapability) Name() string { return CapabilityGenerateImage }

func (c *ImageCapability) Description() string {
	return "Generate an image from a text prompt"
}

// Validate blocks the capability when no API credential is configured.
func (c *ImageCapability) Validate(ctx context.Context, msg *host.Message) error {
	if !c.cfg.HasCredential() {
		return host.ErrMissingCredential
	}
	return nil
}

// Handle runs the image generation flow and delivers the outcome through cb
// exactly once. Generation errors are translated into user-facing text; any
// partial result URL attached to the error becomes a best-effort attachment.
func (c *ImageCapability) Handle(ctx context.Context, msg *host.Message, cb host.Callback) error {
	start := time.Now()

	enhanced := c.client.EnhancePrompt(ctx, msg.Text)
	result, err := c.client.GenerateImage(ctx, enhanced)
	c.collector.ObserveGeneration("image", err, time.Since(start))

	if err != nil {
		c.logger.Warn("image generation failed",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		resp := errorResponse(err, host.AttachmentImage, msg.ID)
		return deliver(ctx, cb, resp, c.logger)
	}

	att := host.NewAttachment(result.ID, host.AttachmentImage)
	att.URL = result.URL
	att.Title = "Generated image"
	att.Source = PluginName
	att.Description = enhanced
	att.ContentType = "image/jpeg"

	resp := &host.Response{
		Text:        "Here's your generated image.",
		Attachments: []host.Attachment{att},
		InReplyTo:   msg.ID,
	}
	return deliver(ctx, cb, resp, c.logger)
}
