package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexOf(order []string, name string) int {
	for i, n := range order {
		if n == name {
			return i
		}
	}
	return -1
}

func TestProvisionOrderRespectsDependencies(t *testing.T) {
	s, err := New(testOptions())
	require.NoError(t, err)

	order, err := s.ProvisionOrder()
	require.NoError(t, err)
	require.Len(t, order, len(s.resources))

	for name, def := range s.resources {
		for _, dep := range def.DependsOn {
			assert.Less(t, indexOf(order, dep), indexOf(order, name),
				"%s must provision before %s", dep, name)
		}
	}

	// network, access point, function, bucket grant, public trigger: in order
	chain := []string{ResVPC, ResAccessPoint, ResFunction, ResBucketReadGrant, ResFunctionUrl}
	for i := 1; i < len(chain); i++ {
		assert.Less(t, indexOf(order, chain[i-1]), indexOf(order, chain[i]),
			"%s must provision before %s", chain[i-1], chain[i])
	}
}

func TestSynthesisIsDeterministic(t *testing.T) {
	first, err := New(testOptions())
	require.NoError(t, err)
	second, err := New(testOptions())
	require.NoError(t, err)

	firstOrder, err := first.ProvisionOrder()
	require.NoError(t, err)
	secondOrder, err := second.ProvisionOrder()
	require.NoError(t, err)
	assert.Equal(t, firstOrder, secondOrder)

	firstTemplate, err := first.Template()
	require.NoError(t, err)
	secondTemplate, err := second.Template()
	require.NoError(t, err)

	firstJSON, err := firstTemplate.JSON()
	require.NoError(t, err)
	secondJSON, err := secondTemplate.JSON()
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
}

func TestTemplateRendering(t *testing.T) {
	s, err := New(testOptions())
	require.NoError(t, err)
	template, err := s.Template()
	require.NoError(t, err)

	assert.Equal(t, "2010-09-09", template.AWSTemplateFormatVersion)
	require.Contains(t, template.Resources, ResFunction)
	assert.Equal(t, "AWS::Lambda::Function", template.Resources[ResFunction].Type)

	data, err := template.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"AWS::Lambda::Url"`)
	assert.Contains(t, string(data), `"Fn::GetAtt"`)

	yamlData, err := template.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(yamlData), "AWS::EFS::AccessPoint")
}

func TestProvisionOrderRejectsCycles(t *testing.T) {
	s, err := New(testOptions())
	require.NoError(t, err)

	// introduce an artificial cycle
	s.resources[ResVPC].DependsOn = []string{ResFunction}
	_, err = s.ProvisionOrder()
	assert.ErrorContains(t, err, "cycle")
}

func TestProvisionOrderRejectsUnknownDependency(t *testing.T) {
	s, err := New(testOptions())
	require.NoError(t, err)

	s.resources[ResVPC].DependsOn = []string{"NoSuchResource"}
	_, err = s.ProvisionOrder()
	assert.ErrorContains(t, err, "undeclared")
}
