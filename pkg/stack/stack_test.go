package stack

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() *Options {
	opts := DefaultOptions()
	opts.ImageUri = "123456789012.dkr.ecr.us-east-1.amazonaws.com/prediction:latest"
	return opts
}

func TestResourceTypes(t *testing.T) {
	tests := []struct {
		name     string
		resource Resource
		expected string
	}{
		{"VPC", VPC{}, "AWS::EC2::VPC"},
		{"Subnet", Subnet{}, "AWS::EC2::Subnet"},
		{"SecurityGroup", SecurityGroup{}, "AWS::EC2::SecurityGroup"},
		{"FileSystem", FileSystem{}, "AWS::EFS::FileSystem"},
		{"MountTarget", MountTarget{}, "AWS::EFS::MountTarget"},
		{"AccessPoint", AccessPoint{}, "AWS::EFS::AccessPoint"},
		{"Role", Role{}, "AWS::IAM::Role"},
		{"Policy", Policy{}, "AWS::IAM::Policy"},
		{"Function", Function{}, "AWS::Lambda::Function"},
		{"Url", Url{}, "AWS::Lambda::Url"},
		{"Permission", Permission{}, "AWS::Lambda::Permission"},
		{"Bucket", Bucket{}, "AWS::S3::Bucket"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.resource.ResourceType())
		})
	}
}

func TestIntrinsicSerialization(t *testing.T) {
	data, err := json.Marshal(Ref{"VPC"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Ref":"VPC"}`, string(data))

	data, err = json.Marshal(GetAtt{"ModelAccessPoint", "Arn"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Fn::GetAtt":["ModelAccessPoint","Arn"]}`, string(data))

	data, err = json.Marshal(Sub{"${AWS::StackName}-vpc"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Fn::Sub":"${AWS::StackName}-vpc"}`, string(data))
}

func TestStackDeclaresAllResources(t *testing.T) {
	s, err := New(testOptions())
	require.NoError(t, err)

	expected := map[string]string{
		ResVPC:             "AWS::EC2::VPC",
		ResSubnetA:         "AWS::EC2::Subnet",
		ResSubnetB:         "AWS::EC2::Subnet",
		ResFunctionSG:      "AWS::EC2::SecurityGroup",
		ResFilesystemSG:    "AWS::EC2::SecurityGroup",
		ResFileSystem:      "AWS::EFS::FileSystem",
		ResMountTargetA:    "AWS::EFS::MountTarget",
		ResMountTargetB:    "AWS::EFS::MountTarget",
		ResAccessPoint:     "AWS::EFS::AccessPoint",
		ResExecutionRole:   "AWS::IAM::Role",
		ResFunction:        "AWS::Lambda::Function",
		ResBucket:          "AWS::S3::Bucket",
		ResBucketReadGrant: "AWS::IAM::Policy",
		ResFunctionUrl:     "AWS::Lambda::Url",
		ResUrlPermission:   "AWS::Lambda::Permission",
	}
	require.Len(t, s.resources, len(expected))
	for name, typ := range expected {
		require.Contains(t, s.resources, name)
		assert.Equal(t, typ, s.resources[name].Type, name)
	}
}

func TestAccessPointIdentity(t *testing.T) {
	s, err := New(testOptions())
	require.NoError(t, err)

	ap, ok := s.resources[ResAccessPoint].Properties.(AccessPoint)
	require.True(t, ok)
	assert.Equal(t, "1001", ap.PosixUser.Uid)
	assert.Equal(t, "1001", ap.PosixUser.Gid)
	assert.Equal(t, "/export/lambda", ap.RootDirectory.Path)
	assert.Equal(t, "750", ap.RootDirectory.CreationInfo.Permissions)
}

func TestFunctionConfiguration(t *testing.T) {
	opts := testOptions()
	s, err := New(opts)
	require.NoError(t, err)

	fn, ok := s.resources[ResFunction].Properties.(Function)
	require.True(t, ok)
	assert.Equal(t, "Image", fn.PackageType)
	assert.Equal(t, opts.ImageUri, fn.Code.ImageUri)
	assert.Equal(t, 768, fn.MemorySize)
	assert.Equal(t, 30, fn.Timeout)
	require.Len(t, fn.FileSystemConfigs, 1)
	assert.Equal(t, "/mnt/models", fn.FileSystemConfigs[0].LocalMountPath)
	assert.Equal(t, opts.BucketName, fn.Environment.Variables["MODELS_BUCKET"])
	assert.Equal(t, opts.ModelKey, fn.Environment.Variables["MODEL_KEY"])
	assert.Equal(t, opts.MountPath, fn.Environment.Variables["MODEL_CACHE_DIR"])
}

func TestPublicURLIsExplicit(t *testing.T) {
	opts := testOptions()
	s, err := New(opts)
	require.NoError(t, err)

	url, ok := s.resources[ResFunctionUrl].Properties.(Url)
	require.True(t, ok)
	assert.Equal(t, "NONE", url.AuthType)
	assert.Equal(t, []string{"*"}, url.Cors.AllowOrigins)
	assert.Contains(t, s.outputs, OutputFunctionUrl)

	// disabling the public url removes the trigger entirely
	private := testOptions()
	private.PublicURL = false
	s, err = New(private)
	require.NoError(t, err)
	assert.NotContains(t, s.resources, ResFunctionUrl)
	assert.NotContains(t, s.resources, ResUrlPermission)
	assert.NotContains(t, s.outputs, OutputFunctionUrl)
}

func TestOptionsValidate(t *testing.T) {
	opts := DefaultOptions()
	_, err := New(opts)
	assert.Error(t, err, "missing image uri must fail")

	opts = testOptions()
	opts.AllowedOrigins = nil
	_, err = New(opts)
	assert.Error(t, err, "public url without origins must fail")
}
