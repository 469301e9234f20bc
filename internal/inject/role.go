package inject

import (
	"context"
	"fmt"

	wetwire "github.com/lex00/wetwire-sls-go"
	"github.com/lex00/wetwire-sls-go/internal/template"
	"github.com/lex00/wetwire-sls-go/intrinsics"
)

// RoleLogicalID is the logical id of the log access role and of its output.
const RoleLogicalID = "EnterpriseLogAccessIamRole"

// Role adds the IAM role the platform assumes to read the template's log groups, and an
// output exposing its ARN. It returns the logical ids it added.
func (i *Injector) Role(ctx context.Context, t *wetwire.Template) ([]string, error) {
	if !i.Service.CollectLogs() || i.Service.LogAccessRole() != "" {
		return nil, nil
	}

	groups := template.LogGroups(t)
	if len(groups) == 0 {
		return nil, nil
	}

	accessKey, err := i.key(ctx)
	if err != nil {
		return nil, err
	}
	meta, err := i.Platform.Metadata(ctx, accessKey)
	if err != nil {
		return nil, err
	}

	resources := make([]any, 0, len(groups))
	for _, group := range groups {
		resources = append(resources, intrinsics.ArnOf(group.LogicalID))
	}

	t.Resources[RoleLogicalID] = wetwire.ResourceDef{
		Type: template.TypeIAMRole,
		Properties: map[string]any{
			"AssumeRolePolicyDocument": intrinsics.NewPolicyDocument(intrinsics.PolicyStatement{
				Effect:    "Allow",
				Principal: intrinsics.AWSPrincipal{fmt.Sprintf("arn:aws:iam::%s:root", meta.AWSAccountID)},
				Action:    "sts:AssumeRole",
				Condition: intrinsics.Json{
					intrinsics.StringEquals: intrinsics.Json{
						"sts:ExternalId": "ServerlessEnterprise-" + i.Identity.TenantUID,
					},
				},
			}),
			"Policies": []intrinsics.InlinePolicy{{
				PolicyName: "LogFilterAccess",
				PolicyDocument: intrinsics.NewPolicyDocument(intrinsics.PolicyStatement{
					Effect:   "Allow",
					Action:   []string{"logs:FilterLogEvents"},
					Resource: resources,
				}),
			}},
		},
	}
	template.SetOutput(t, RoleLogicalID, wetwire.Output{Value: intrinsics.ArnOf(RoleLogicalID)})

	return []string{RoleLogicalID}, nil
}
