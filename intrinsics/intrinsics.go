// Package intrinsics provides the CloudFormation intrinsic functions and IAM policy
// types used when patching compiled templates.
//
// The core intrinsic types are re-exported from cloudformation-schema-go:
//
//	Ref{LogicalName: "FuncLogGroup"}                       → {"Ref": "FuncLogGroup"}
//	GetAtt{LogicalName: "FuncLogGroup", Attribute: "Arn"}  → {"Fn::GetAtt": ["FuncLogGroup", "Arn"]}
package intrinsics

import (
	"github.com/lex00/cloudformation-schema-go/intrinsics"
)

type (
	// Ref represents a CloudFormation Ref intrinsic function.
	Ref = intrinsics.Ref

	// GetAtt represents a CloudFormation Fn::GetAtt intrinsic function.
	GetAtt = intrinsics.GetAtt
)

// RefTo returns a Ref to the given logical id.
func RefTo(logicalID string) Ref {
	return Ref{LogicalName: logicalID}
}

// ArnOf returns a GetAtt for the Arn attribute of the given logical id.
func ArnOf(logicalID string) GetAtt {
	return GetAtt{LogicalName: logicalID, Attribute: "Arn"}
}
