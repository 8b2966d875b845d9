package stack

import (
	"fmt"

	"k8s.io/utils/pointer"
)

// Logical IDs of the declared resources.
const (
	ResVPC             = "VPC"
	ResSubnetA         = "PrivateSubnetA"
	ResSubnetB         = "PrivateSubnetB"
	ResFunctionSG      = "FunctionSecurityGroup"
	ResFilesystemSG    = "FilesystemSecurityGroup"
	ResFileSystem      = "ModelFileSystem"
	ResMountTargetA    = "ModelMountTargetA"
	ResMountTargetB    = "ModelMountTargetB"
	ResAccessPoint     = "ModelAccessPoint"
	ResExecutionRole   = "ExecutionRole"
	ResFunction        = "PredictionFunction"
	ResBucket          = "ModelsBucket"
	ResBucketReadGrant = "ModelsBucketReadGrant"
	ResFunctionUrl     = "PredictionFunctionUrl"
	ResUrlPermission   = "PredictionFunctionUrlPermission"
	OutputFunctionUrl  = "FunctionUrl"
)

// Options configure the declared stack. The public URL and the permissive
// cross-origin policy are explicit here rather than hidden defaults.
type Options struct {
	StackName       string
	VpcCidr         string
	FunctionName    string
	ImageUri        string
	MemorySize      int
	TimeoutSeconds  int
	BucketName      string
	ModelKey        string
	AccessPointPath string
	MountPath       string
	PosixUid        string
	PosixGid        string
	Permissions     string
	PublicURL       bool
	AllowedOrigins  []string
}

func DefaultOptions() *Options {
	return &Options{
		StackName:       "tensorstack",
		VpcCidr:         "10.0.0.0/16",
		FunctionName:    "prediction-function",
		ImageUri:        "",
		MemorySize:      768,
		TimeoutSeconds:  30,
		BucketName:      "models-bucket",
		ModelKey:        "model.json",
		AccessPointPath: "/export/lambda",
		MountPath:       "/mnt/models",
		PosixUid:        "1001",
		PosixGid:        "1001",
		Permissions:     "750",
		PublicURL:       true,
		AllowedOrigins:  []string{"*"},
	}
}

func (o *Options) Validate() error {
	if o.ImageUri == "" {
		return fmt.Errorf("function image uri not set")
	}
	if o.BucketName == "" {
		return fmt.Errorf("bucket name not set")
	}
	if o.PublicURL && len(o.AllowedOrigins) == 0 {
		return fmt.Errorf("public url requires at least one allowed origin")
	}
	return nil
}

// Stack holds the declared resources of one prediction stack.
type Stack struct {
	Options *Options

	names     []string
	resources map[string]*ResourceDef
	outputs   map[string]Output
}

// New evaluates the declaration for the given options. The declaration is
// pure: the same options always produce the same resource set.
func New(opts *Options) (*Stack, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	s := &Stack{
		Options:   opts,
		resources: map[string]*ResourceDef{},
		outputs:   map[string]Output{},
	}
	s.buildNetwork()
	s.buildFilesystem()
	s.buildFunction()
	s.buildBucket()
	s.buildFunctionURL()
	return s, nil
}

func (s *Stack) add(name string, r Resource, dependsOn ...string) {
	s.names = append(s.names, name)
	s.resources[name] = &ResourceDef{
		Type:       r.ResourceType(),
		Properties: r,
		DependsOn:  dependsOn,
	}
}

func (s *Stack) buildNetwork() {
	opts := s.Options
	s.add(ResVPC, VPC{
		CidrBlock:          opts.VpcCidr,
		EnableDnsSupport:   pointer.Bool(true),
		EnableDnsHostnames: pointer.Bool(true),
		InstanceTenancy:    "default",
		Tags:               []Tag{{Key: "Name", Value: opts.StackName + "-vpc"}},
	})
	s.add(ResSubnetA, Subnet{
		VpcId:            Ref{ResVPC},
		CidrBlock:        "10.0.10.0/24",
		AvailabilityZone: Select{Index: 0, List: GetAZs{}},
		Tags:             []Tag{{Key: "Name", Value: opts.StackName + "-private-a"}},
	}, ResVPC)
	s.add(ResSubnetB, Subnet{
		VpcId:            Ref{ResVPC},
		CidrBlock:        "10.0.11.0/24",
		AvailabilityZone: Select{Index: 1, List: GetAZs{}},
		Tags:             []Tag{{Key: "Name", Value: opts.StackName + "-private-b"}},
	}, ResVPC)
	s.add(ResFunctionSG, SecurityGroup{
		GroupDescription: "prediction function network access",
		VpcId:            Ref{ResVPC},
	}, ResVPC)
	s.add(ResFilesystemSG, SecurityGroup{
		GroupDescription: "nfs access from the prediction function",
		VpcId:            Ref{ResVPC},
		SecurityGroupIngress: []SecurityGroupIngress{{
			IpProtocol:            "tcp",
			FromPort:              2049,
			ToPort:                2049,
			SourceSecurityGroupId: GetAtt{ResFunctionSG, "GroupId"},
			Description:           "nfs",
		}},
	}, ResFunctionSG)
}

// buildFilesystem declares the shared model cache: the file system, one mount
// target per subnet, and the access point the function mounts. The access
// point enforces the POSIX identity the function runs with.
func (s *Stack) buildFilesystem() {
	opts := s.Options
	s.add(ResFileSystem, FileSystem{
		Encrypted:      pointer.Bool(true),
		FileSystemTags: []Tag{{Key: "Name", Value: opts.StackName + "-models"}},
	}, ResVPC)
	s.add(ResMountTargetA, MountTarget{
		FileSystemId:   Ref{ResFileSystem},
		SubnetId:       Ref{ResSubnetA},
		SecurityGroups: []any{GetAtt{ResFilesystemSG, "GroupId"}},
	}, ResFileSystem, ResSubnetA, ResFilesystemSG)
	s.add(ResMountTargetB, MountTarget{
		FileSystemId:   Ref{ResFileSystem},
		SubnetId:       Ref{ResSubnetB},
		SecurityGroups: []any{GetAtt{ResFilesystemSG, "GroupId"}},
	}, ResFileSystem, ResSubnetB, ResFilesystemSG)
	s.add(ResAccessPoint, AccessPoint{
		FileSystemId: Ref{ResFileSystem},
		PosixUser:    &AccessPoint_PosixUser{Uid: opts.PosixUid, Gid: opts.PosixGid},
		RootDirectory: &AccessPoint_RootDirectory{
			Path: opts.AccessPointPath,
			// the path does not exist on a fresh file system; EFS creates it
			// with this ACL on first mount
			CreationInfo: &AccessPoint_CreationInfo{
				OwnerUid:    opts.PosixUid,
				OwnerGid:    opts.PosixGid,
				Permissions: opts.Permissions,
			},
		},
	}, ResFileSystem, ResMountTargetA, ResMountTargetB)
}

func (s *Stack) buildFunction() {
	opts := s.Options
	s.add(ResExecutionRole, Role{
		AssumeRolePolicyDocument: PolicyDocument{
			Version: "2012-10-17",
			Statement: []any{PolicyStatement{
				Effect:    "Allow",
				Principal: map[string]any{"Service": "lambda.amazonaws.com"},
				Action:    "sts:AssumeRole",
			}},
		},
		ManagedPolicyArns: []string{
			"arn:aws:iam::aws:policy/service-role/AWSLambdaVPCAccessExecutionRole",
			"arn:aws:iam::aws:policy/AmazonElasticFileSystemClientReadWriteAccess",
		},
	})
	s.add(ResFunction, Function{
		FunctionName: opts.FunctionName,
		Description:  "loads the model from the cache mount and serves predictions",
		PackageType:  "Image",
		Code:         Function_Code{ImageUri: opts.ImageUri},
		Role:         GetAtt{ResExecutionRole, "Arn"},
		MemorySize:   opts.MemorySize,
		Timeout:      opts.TimeoutSeconds,
		Environment: &Function_Environment{
			Variables: map[string]any{
				"MODELS_BUCKET":   opts.BucketName,
				"MODEL_KEY":       opts.ModelKey,
				"MODEL_CACHE_DIR": opts.MountPath,
			},
		},
		FileSystemConfigs: []Function_FileSystemConfig{{
			Arn:            GetAtt{ResAccessPoint, "Arn"},
			LocalMountPath: opts.MountPath,
		}},
		VpcConfig: &Function_VpcConfig{
			SecurityGroupIds: []any{GetAtt{ResFunctionSG, "GroupId"}},
			SubnetIds:        []any{Ref{ResSubnetA}, Ref{ResSubnetB}},
		},
	}, ResExecutionRole, ResAccessPoint, ResMountTargetA, ResMountTargetB, ResFunctionSG)
}

// buildBucket declares the durable model store and grants the function read
// access. The grant is a separate policy resource so it provisions strictly
// after the function.
func (s *Stack) buildBucket() {
	opts := s.Options
	s.add(ResBucket, Bucket{
		BucketName:              opts.BucketName,
		VersioningConfiguration: &Bucket_VersioningConfiguration{Status: "Enabled"},
	})
	s.add(ResBucketReadGrant, Policy{
		PolicyName: opts.StackName + "-models-read",
		PolicyDocument: PolicyDocument{
			Version: "2012-10-17",
			Statement: []any{PolicyStatement{
				Effect: "Allow",
				Action: []any{"s3:GetObject", "s3:ListBucket"},
				Resource: []any{
					GetAtt{ResBucket, "Arn"},
					Sub{fmt.Sprintf("${%s.Arn}/*", ResBucket)},
				},
			}},
		},
		Roles: []any{Ref{ResExecutionRole}},
	}, ResBucket, ResFunction)
}

func (s *Stack) buildFunctionURL() {
	opts := s.Options
	if !opts.PublicURL {
		return
	}
	s.add(ResFunctionUrl, Url{
		TargetFunctionArn: GetAtt{ResFunction, "Arn"},
		AuthType:          "NONE",
		Cors:              &Url_Cors{AllowOrigins: opts.AllowedOrigins},
	}, ResFunction, ResBucketReadGrant)
	s.add(ResUrlPermission, Permission{
		FunctionName:        Ref{ResFunction},
		Action:              "lambda:InvokeFunctionUrl",
		Principal:           "*",
		FunctionUrlAuthType: "NONE",
	}, ResFunctionUrl)
	s.outputs[OutputFunctionUrl] = Output{
		Description: "public https endpoint of the prediction function",
		Value:       GetAtt{ResFunctionUrl, "FunctionUrl"},
	}
}
