package inject

import (
	"context"
	"errors"
	"unicode"
	"unicode/utf8"

	wetwire "github.com/lex00/wetwire-sls-go"
	"github.com/lex00/wetwire-sls-go/internal/platform"
	"github.com/lex00/wetwire-sls-go/internal/template"
	"github.com/lex00/wetwire-sls-go/intrinsics"
)

// Subscription filter patterns by log group kind.
const (
	FunctionFilterPattern = `?"REPORT RequestId: " ?"SERVERLESS_ENTERPRISE"`
	GatewayFilterPattern  = `"SLS_ACCESS_LOG"`
)

// filterPrefix prefixes the logical id of every subscription filter.
const filterPrefix = "CloudWatchLogsSubscriptionFilter"

// FilterID returns the subscription filter logical id for a log group.
func FilterID(logGroupID string) string {
	if logGroupID == "" {
		return filterPrefix
	}
	r, size := utf8.DecodeRuneInString(logGroupID)
	return filterPrefix + string(unicode.ToUpper(r)) + logGroupID[size:]
}

// FilterPattern returns the filter pattern for a log group kind.
func FilterPattern(kind template.LogKind) string {
	if kind == template.GatewayLogs {
		return GatewayFilterPattern
	}
	return FunctionFilterPattern
}

// Logs adds a subscription filter forwarding every log group to the platform's log
// destination. Log groups that already have a filter are left alone. It returns the
// logical ids it added.
func (i *Injector) Logs(ctx context.Context, t *wetwire.Template) ([]string, error) {
	if !i.Service.CollectLogs() {
		return nil, nil
	}

	var pending []template.LogGroup
	for _, group := range template.LogGroups(t) {
		if !template.HasResource(t, FilterID(group.LogicalID)) {
			pending = append(pending, group)
		}
	}
	if len(pending) == 0 {
		return nil, nil
	}

	accessKey, err := i.key(ctx)
	if err != nil {
		return nil, err
	}
	accountID, err := i.Provider.AccountID(ctx)
	if err != nil {
		return nil, err
	}

	arn, err := i.Platform.LogDestination(ctx, platform.DestinationRequest{
		AccessKey:   accessKey,
		AppUID:      i.Identity.AppUID,
		TenantUID:   i.Identity.TenantUID,
		StageName:   i.Provider.Stage(),
		ServiceName: i.Identity.Service,
		RegionName:  i.Provider.Region(),
		AccountID:   accountID,
	})
	if errors.Is(err, platform.ErrRegionNotSupported) {
		i.logger().WithField("region", i.Provider.Region()).
			Warn("Serverless Dashboard log collection is not supported in this region, skipping")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var added []string
	for _, group := range pending {
		id := FilterID(group.LogicalID)
		t.Resources[id] = wetwire.ResourceDef{
			Type: template.TypeSubscriptionFilter,
			Properties: map[string]any{
				"DestinationArn": arn,
				"FilterPattern":  FilterPattern(group.Kind),
				"LogGroupName":   intrinsics.RefTo(group.LogicalID),
			},
		}
		added = append(added, id)
	}

	i.logger().WithField("filters", len(added)).Debugf("added subscription filters for %s", arn)
	return added, nil
}
