package gestaltwerk

import (
	"context"
	"time"

	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	resourcepb "go.opentelemetry.io/proto/otlp/resource/v1"
	coltracepb "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"
	"google.golang.org/grpc"
)

// layoutPassInfo summarizes one Manager.Layout call for telemetry
// purposes. It never feeds back into layout/render decisions.
type layoutPassInfo struct {
	Width, Height int32
	Dirty         bool
	Duration      time.Duration
}

// TelemetryExporter ships each layout pass as an OTLP ResourceSpans
// message to a collector over gRPC (SPEC_FULL.md §F.3). Attaching one to
// a Manager is entirely optional and has no effect on layout or render
// results -- it only observes them, preserving spec.md §5's determinism
// guarantee.
type TelemetryExporter struct {
	conn       *grpc.ClientConn
	client     coltracepb.TraceServiceClient
	serviceName string
}

// NewTelemetryExporter dials target (e.g. "localhost:4317") and returns
// an exporter ready to attach via Manager.AttachTelemetry. The caller
// owns the returned exporter's lifetime and should Close it on shutdown.
func NewTelemetryExporter(target, serviceName string, opts ...grpc.DialOption) (*TelemetryExporter, error) {
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, err
	}
	return &TelemetryExporter{
		conn:        conn,
		client:      coltracepb.NewTraceServiceClient(conn),
		serviceName: serviceName,
	}, nil
}

// Close releases the underlying gRPC connection.
func (t *TelemetryExporter) Close() error {
	if t == nil || t.conn == nil {
		return nil
	}
	return t.conn.Close()
}

// RecordLayoutPass packages info as a single-span ResourceSpans message
// and ships it. Export errors are swallowed (best-effort telemetry must
// never disrupt layout), matching how the rest of the ambient stack
// treats diagnostics as informational only.
func (t *TelemetryExporter) RecordLayoutPass(info layoutPassInfo) {
	if t == nil || t.client == nil {
		return
	}
	now := uint64(time.Now().UnixNano())
	span := &tracepb.Span{
		Name:              "gestaltwerk.layout",
		StartTimeUnixNano: now - uint64(info.Duration),
		EndTimeUnixNano:   now,
		Attributes: []*commonpb.KeyValue{
			intAttr("width", int64(info.Width)),
			intAttr("height", int64(info.Height)),
			boolAttr("dirty", info.Dirty),
		},
	}
	req := &coltracepb.ExportTraceServiceRequest{
		ResourceSpans: []*tracepb.ResourceSpans{
			{
				Resource: &resourcepb.Resource{
					Attributes: []*commonpb.KeyValue{stringAttr("service.name", t.serviceName)},
				},
				ScopeSpans: []*tracepb.ScopeSpans{
					{Spans: []*tracepb.Span{span}},
				},
			},
		},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, _ = t.client.Export(ctx, req)
}

func intAttr(key string, v int64) *commonpb.KeyValue {
	return &commonpb.KeyValue{Key: key, Value: &commonpb.AnyValue{Value: &commonpb.AnyValue_IntValue{IntValue: v}}}
}

func boolAttr(key string, v bool) *commonpb.KeyValue {
	return &commonpb.KeyValue{Key: key, Value: &commonpb.AnyValue{Value: &commonpb.AnyValue_BoolValue{BoolValue: v}}}
}

func stringAttr(key, v string) *commonpb.KeyValue {
	return &commonpb.KeyValue{Key: key, Value: &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: v}}}
}
