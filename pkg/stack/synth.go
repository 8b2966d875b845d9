package stack

import (
	"fmt"

	"golang.org/x/exp/slices"
	"k8s.io/apimachinery/pkg/util/sets"
)

// ResourceInfo describes one declared resource for listings.
type ResourceInfo struct {
	LogicalID string
	Type      string
	DependsOn []string
}

// Template assembles the CloudFormation template. The resource map marshals
// with lexically ordered keys and ProvisionOrder is stable, so synthesis is
// deterministic.
func (s *Stack) Template() (Template, error) {
	if _, err := s.ProvisionOrder(); err != nil {
		return Template{}, err
	}
	resources := make(map[string]ResourceDef, len(s.resources))
	for name, def := range s.resources {
		resources[name] = *def
	}
	outputs := make(map[string]Output, len(s.outputs))
	for name, out := range s.outputs {
		outputs[name] = out
	}
	return Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Description:              fmt.Sprintf("%s: container prediction function with an EFS model cache and an S3 model bucket", s.Options.StackName),
		Resources:                resources,
		Outputs:                  outputs,
	}, nil
}

// ProvisionOrder returns the logical IDs topologically sorted by their
// DependsOn edges: every resource appears after everything it depends on.
// Ties break lexically, so the order is the same on every evaluation.
func (s *Stack) ProvisionOrder() ([]string, error) {
	indegree := make(map[string]int, len(s.resources))
	dependents := map[string][]string{}
	for name, def := range s.resources {
		for _, dep := range def.DependsOn {
			if _, ok := s.resources[dep]; !ok {
				return nil, fmt.Errorf("resource %s depends on undeclared resource %s", name, dep)
			}
			indegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	ready := []string{}
	for _, name := range s.names {
		if indegree[name] == 0 {
			ready = append(ready, name)
		}
	}
	slices.Sort(ready)

	placed := sets.New[string]()
	order := make([]string, 0, len(s.names))
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]
		order = append(order, name)
		placed.Insert(name)
		for _, dependent := range dependents[name] {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
		slices.Sort(ready)
	}

	if len(order) != len(s.names) {
		remaining := sets.New(s.names...).Difference(placed)
		return nil, fmt.Errorf("dependency cycle among resources: %v", sets.List(remaining))
	}
	return order, nil
}

// Resources lists the declared resources in provisioning order.
func (s *Stack) Resources() ([]ResourceInfo, error) {
	order, err := s.ProvisionOrder()
	if err != nil {
		return nil, err
	}
	infos := make([]ResourceInfo, 0, len(order))
	for _, name := range order {
		def := s.resources[name]
		infos = append(infos, ResourceInfo{LogicalID: name, Type: def.Type, DependsOn: def.DependsOn})
	}
	return infos, nil
}
