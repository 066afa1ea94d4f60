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

// CapabilityGenerateVideo is the name of the video generation capability.
const CapabilityGenerateVideo = "generate-video"

// VideoCapability generates a video from the message text: submit the job,
// poll until terminal, then download the result into the local cache. A
// failed download falls back to the remote URL and never fails the flow.
type VideoCapability struct {
	cfg       config.Config
	client    *mediagen.Client
	collector *metrics.Collector
	logger    *zap.Logger
}

var _ host.Capability = (*VideoCapability)(nil)

// NewVideoCapability creates the video generation capability.
func NewVideoCapability(cfg config.Config, client *mediagen.Client, collector *metrics.Collector, logger *zap.Logger) *VideoCapability {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VideoCapability{
		cfg:       cfg,
		client:    client,
		collector: collector,
		logger:    logger.With(zap.String("capability", CapabilityGenerateVideo)),
	}
}

func (c *VideoCapability) Name() string { return CapabilityGenerateVideo }

func (c *VideoCapability) Description() string {
	return "Generate a short video from a text prompt"
}

// Validate blocks the capability when no API credential is configured.
func (c *VideoCapability) Validate(ctx context.Context, msg *host.Message) error {
	if !c.cfg.HasCredential() {
		return host.ErrMissingCredential
	}
	return nil
}

// Handle runs the video generation flow end to end and delivers the outcome
// through cb exactly once. The poll loop suspends this invocation until the
// job is terminal or the ceiling is exhausted.
func (c *VideoCapability) Handle(ctx context.Context, msg *host.Message, cb host.Callback) error {
	start := time.Now()

	job, err := c.client.SubmitVideo(ctx, msg.Text)
	if err == nil {
		job, err = c.client.AwaitVideo(ctx, job.ID)
	}
	c.collector.ObserveGeneration("video", err, time.Since(start))

	if err != nil {
		c.logger.Warn("video generation failed",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		resp := errorResponse(err, host.AttachmentVideo, msg.ID)
		return deliver(ctx, cb, resp, c.logger)
	}

	att := host.NewAttachment(job.ID, host.AttachmentVideo)
	att.Title = "Generated video"
	att.Source = PluginName
	att.Description = msg.Text
	att.ContentType = "video/mp4"

	localPath, dlErr := c.client.Download(ctx, job)
	if dlErr != nil {
		// Download failure is non-fatal: fall back to the remote URL.
		c.collector.IncDownloadFallback()
		c.logger.Warn("video download failed, falling back to remote url",
			zap.String("job_id", job.ID),
			zap.Error(dlErr))
		att.URL = job.URL
	} else {
		att.LocalPath = localPath
		att.URL = job.URL
	}

	resp := &host.Response{
		Text:        "Here's your generated video.",
		Attachments: []host.Attachment{att},
		InReplyTo:   msg.ID,
	}
	return deliver(ctx, cb, resp, c.logger)
}
