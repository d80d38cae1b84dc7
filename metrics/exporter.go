package metrics

import (
	"context"

	"github.com/ipfs-force-community/metrics"
	logging "github.com/ipfs/go-log/v2"
	"go.opencensus.io/stats/view"
	"golang.org/x/xerrors"
)

var log = logging.Logger("metrics")

// SetupMetrics registers the marketplace views and starts the configured
// exporter. A nil or disabled config is a no-op.
func SetupMetrics(ctx context.Context, cfg *metrics.MetricsConfig) error {
	if cfg == nil || !cfg.Enabled {
		return nil
	}

	if err := view.Register(views...); err != nil {
		return xerrors.Errorf("register marketplace views: %w", err)
	}

	switch cfg.Exporter.Type {
	case metrics.ETPrometheus:
		// the prometheus endpoint serves until ctx is done
		go func() {
			if err := metrics.RegisterPrometheusExporter(ctx, cfg.Exporter.Prometheus); err != nil {
				log.Errorf("prometheus exporter exited: %v", err)
				return
			}
			log.Info("prometheus exporter stopped")
		}()
		return nil
	case metrics.ETGraphite:
		if err := metrics.RegisterGraphiteExporter(ctx, cfg.Exporter.Graphite); err != nil {
			return xerrors.Errorf("start graphite exporter: %w", err)
		}
		return nil
	default:
		return xerrors.Errorf("unknown metrics exporter type %q", cfg.Exporter.Type)
	}
}
