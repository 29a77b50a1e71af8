package telemetry

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName names the tracer used for service spans.
const TracerName = "agency-backend"

// Attribute keys shared by service and HTTP spans.
const (
	AttrAgencyID        = attribute.Key("agency.id")
	AttrSubAccountID    = attribute.Key("sub_account.id")
	AttrPermissionSetID = attribute.Key("permission_set.id")
	AttrSidebarOptionID = attribute.Key("sidebar_option.id")
	AttrNodeCount       = attribute.Key("sidebar.node_count")
	AttrAccess          = attribute.Key("access.granted")
)

func Agency(id uuid.UUID) attribute.KeyValue { return AttrAgencyID.String(id.String()) }
func SubAccount(id string) attribute.KeyValue { return AttrSubAccountID.String(id) }
func PermissionSet(id string) attribute.KeyValue { return AttrPermissionSetID.String(id) }
func SidebarOption(id string) attribute.KeyValue { return AttrSidebarOptionID.String(id) }
func NodeCount(n int) attribute.KeyValue { return AttrNodeCount.Int(n) }
func AccessGranted(granted bool) attribute.KeyValue { return AttrAccess.Bool(granted) }

// StartServiceSpan starts an internal span named service.method. The caller
// ends it.
//
//	ctx, span := telemetry.StartServiceSpan(ctx, "permission", "toggle", telemetry.Agency(id))
//	defer span.End()
func StartServiceSpan(ctx context.Context, service, method string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, service+"."+method,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// RecordError marks span failed with err. Nil span or err is a no-op.
func RecordError(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// GetTraceID returns the trace id carried by ctx, or "".
func GetTraceID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	return ""
}
