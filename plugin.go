// Package agentflowmedia is a media generation plugin for an AgentFlow-style
// host framework. It exposes two capabilities — text-to-image and
// text-to-video generation — backed by a single remote generation API, plus
// a status service with an HTTP route reporting whether the API credential
// is configured.
//
// Usage:
//
//	cfg, err := config.NewLoader().WithConfigPath("media.yaml").Load()
//	plugin := agentflowmedia.New(cfg, logger)
//	// hand plugin.Capabilities(), plugin.Services(), plugin.Routes()
//	// to the host, then plugin.Init(ctx) / plugin.Shutdown(ctx).
package agentflowmedia

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/BaSui01/agentflow-media/config"
	"github.com/BaSui01/agentflow-media/host"
	"github.com/BaSui01/agentflow-media/internal/metrics"
	"github.com/BaSui01/agentflow-media/mediagen"
)

// Version is the plugin version reported to the host.
const Version = "1.0.0"

// PluginName is the unique name the plugin registers under.
const PluginName = "agentflow-media"

// MetricsNamespace prefixes all prometheus metrics.
const MetricsNamespace = "agentflow_media"

// MediaPlugin implements host.Plugin and bundles the image and video
// capabilities, the status service, and a no-op message listener.
type MediaPlugin struct {
	cfg       config.Config
	logger    *zap.Logger
	client    *mediagen.Client
	collector *metrics.Collector
	registry  *prometheus.Registry
	status    *StatusService
}

// Compile-time interface compliance checks.
var (
	_ host.Plugin          = (*MediaPlugin)(nil)
	_ host.MessageListener = (*MediaPlugin)(nil)
)

// New creates the media plugin from an explicit configuration. The
// credential lives in cfg and is threaded through every component; it is
// never written to the process environment.
func New(cfg config.Config, logger *zap.Logger, opts ...mediagen.Option) *MediaPlugin {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("plugin", PluginName))

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(MetricsNamespace, registry)

	clientOpts := append([]mediagen.Option{
		mediagen.WithPollObserver(collector.IncVideoPoll),
	}, opts...)
	client := mediagen.NewClient(cfg, logger, clientOpts...)

	p := &MediaPlugin{
		cfg:       cfg,
		logger:    logger,
		client:    client,
		collector: collector,
		registry:  registry,
	}
	p.status = NewStatusService(cfg, registry, logger)
	return p
}

// Name returns the unique plugin name.
func (p *MediaPlugin) Name() string { return PluginName }

// Version returns the plugin version string.
func (p *MediaPlugin) Version() string { return Version }

// Init validates the configuration and starts the status service.
func (p *MediaPlugin) Init(ctx context.Context) error {
	if err := p.cfg.Validate(); err != nil {
		// A missing credential is not fatal at init: the capabilities
		// report it through Validate and the status route exposes it.
		p.logger.Warn("plugin configuration incomplete", zap.Error(err))
	}
	if err := p.status.Start(ctx); err != nil {
		return err
	}
	p.logger.Info("media plugin initialized",
		zap.String("base_url", p.cfg.BaseURL),
		zap.Bool("credential_configured", p.cfg.HasCredential()))
	return nil
}

// Shutdown stops the status service.
func (p *MediaPlugin) Shutdown(ctx context.Context) error {
	return p.status.Stop(ctx)
}

// Capabilities returns the capabilities this plugin contributes to the host.
func (p *MediaPlugin) Capabilities() []host.Capability {
	return []host.Capability{
		NewImageCapability(p.cfg, p.client, p.collector, p.logger),
		NewVideoCapability(p.cfg, p.client, p.collector, p.logger),
	}
}

// Services returns the long-lived services the host should run.
func (p *MediaPlugin) Services() []host.Service {
	return []host.Service{p.status}
}

// Routes returns the HTTP routes the plugin asks the host to expose. The
// status service also serves them on its own listener.
func (p *MediaPlugin) Routes() []host.Route {
	return p.status.Routes()
}

// Listeners returns the plugin's message listeners.
func (p *MediaPlugin) Listeners() []host.MessageListener {
	return []host.MessageListener{p}
}

// Metadata describes the plugin for the host's listing.
func (p *MediaPlugin) Metadata() host.Metadata {
	return host.Metadata{
		Name:        PluginName,
		Version:     Version,
		Description: "Text-to-image and text-to-video generation via the MediaForge API",
		Tags:        []string{"media", "image", "video"},
	}
}

// OnMessage observes inbound messages. The plugin does not react to plain
// messages; generation runs only through its capabilities.
func (p *MediaPlugin) OnMessage(ctx context.Context, msg *host.Message) {}
