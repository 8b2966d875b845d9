// Package stack declares the CloudFormation resources of the prediction stack:
// a VPC, an EFS access point, the container-image prediction function, the
// versioned model bucket, and the public function URL. New evaluates the
// declaration and Template renders it; CloudFormation performs the actual
// create/update/destroy.
package stack

import (
	"encoding/json"

	"sigs.k8s.io/yaml"
)

// Resource is implemented by every CloudFormation resource type declared in
// this package.
type Resource interface {
	// ResourceType returns the CloudFormation type, e.g. "AWS::S3::Bucket".
	ResourceType() string
}

// Ref serializes to the CloudFormation Ref intrinsic.
type Ref struct {
	Resource string
}

func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"Ref": r.Resource})
}

// GetAtt serializes to the CloudFormation Fn::GetAtt intrinsic.
type GetAtt struct {
	Resource  string
	Attribute string
}

func (a GetAtt) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]string{"Fn::GetAtt": {a.Resource, a.Attribute}})
}

// Sub serializes to the CloudFormation Fn::Sub intrinsic.
type Sub struct {
	String string
}

func (s Sub) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"Fn::Sub": s.String})
}

// Select serializes to the CloudFormation Fn::Select intrinsic.
type Select struct {
	Index int
	List  any
}

func (s Select) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]any{"Fn::Select": {s.Index, s.List}})
}

// GetAZs serializes to the CloudFormation Fn::GetAZs intrinsic.
type GetAZs struct {
	Region string
}

func (g GetAZs) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"Fn::GetAZs": g.Region})
}

// Tag is a CloudFormation resource tag.
type Tag struct {
	Key   string `json:"Key"`
	Value any    `json:"Value"`
}

// PolicyDocument is an IAM policy document.
type PolicyDocument struct {
	Version   string `json:"Version,omitempty"`
	Statement []any  `json:"Statement"`
}

// PolicyStatement is a single IAM policy statement.
type PolicyStatement struct {
	Sid       string `json:"Sid,omitempty"`
	Effect    string `json:"Effect"`
	Principal any    `json:"Principal,omitempty"`
	Action    any    `json:"Action,omitempty"`
	Resource  any    `json:"Resource,omitempty"`
	Condition any    `json:"Condition,omitempty"`
}

// Template is a CloudFormation template.
type Template struct {
	AWSTemplateFormatVersion string                 `json:"AWSTemplateFormatVersion"`
	Description              string                 `json:"Description,omitempty"`
	Resources                map[string]ResourceDef `json:"Resources"`
	Outputs                  map[string]Output      `json:"Outputs,omitempty"`
}

// ResourceDef is a single resource entry of a template.
type ResourceDef struct {
	Type           string   `json:"Type"`
	Properties     Resource `json:"Properties,omitempty"`
	DependsOn      []string `json:"DependsOn,omitempty"`
	DeletionPolicy string   `json:"DeletionPolicy,omitempty"`
}

// Output is a CloudFormation template output.
type Output struct {
	Description string `json:"Description,omitempty"`
	Value       any    `json:"Value"`
}

// JSON renders the template as CloudFormation JSON. Map keys marshal in
// lexical order, so equal templates render to equal bytes.
func (t Template) JSON() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// YAML renders the template as CloudFormation YAML.
func (t Template) YAML() ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return yaml.JSONToYAML(data)
}
