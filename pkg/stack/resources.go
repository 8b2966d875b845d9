package stack

// Typed properties for the CloudFormation resource types this stack declares.
// Field names and JSON tags follow the CloudFormation property names, so the
// structs marshal directly into a template's Properties block. Fields that
// accept either a literal or an intrinsic (Ref, GetAtt, ...) are typed any.

type VPC struct {
	CidrBlock          string `json:"CidrBlock,omitempty"`
	EnableDnsSupport   *bool  `json:"EnableDnsSupport,omitempty"`
	EnableDnsHostnames *bool  `json:"EnableDnsHostnames,omitempty"`
	InstanceTenancy    string `json:"InstanceTenancy,omitempty"`
	Tags               []Tag  `json:"Tags,omitempty"`
}

func (VPC) ResourceType() string { return "AWS::EC2::VPC" }

type Subnet struct {
	VpcId               any    `json:"VpcId"`
	CidrBlock           string `json:"CidrBlock,omitempty"`
	AvailabilityZone    any    `json:"AvailabilityZone,omitempty"`
	MapPublicIpOnLaunch *bool  `json:"MapPublicIpOnLaunch,omitempty"`
	Tags                []Tag  `json:"Tags,omitempty"`
}

func (Subnet) ResourceType() string { return "AWS::EC2::Subnet" }

type SecurityGroup struct {
	GroupDescription     string                 `json:"GroupDescription"`
	VpcId                any                    `json:"VpcId,omitempty"`
	SecurityGroupIngress []SecurityGroupIngress `json:"SecurityGroupIngress,omitempty"`
	Tags                 []Tag                  `json:"Tags,omitempty"`
}

func (SecurityGroup) ResourceType() string { return "AWS::EC2::SecurityGroup" }

type SecurityGroupIngress struct {
	IpProtocol            string `json:"IpProtocol"`
	FromPort              int    `json:"FromPort,omitempty"`
	ToPort                int    `json:"ToPort,omitempty"`
	CidrIp                string `json:"CidrIp,omitempty"`
	SourceSecurityGroupId any    `json:"SourceSecurityGroupId,omitempty"`
	Description           string `json:"Description,omitempty"`
}

type FileSystem struct {
	Encrypted       *bool  `json:"Encrypted,omitempty"`
	FileSystemTags  []Tag  `json:"FileSystemTags,omitempty"`
	BackupPolicy    any    `json:"BackupPolicy,omitempty"`
	ThroughputMode  string `json:"ThroughputMode,omitempty"`
	PerformanceMode string `json:"PerformanceMode,omitempty"`
}

func (FileSystem) ResourceType() string { return "AWS::EFS::FileSystem" }

type MountTarget struct {
	FileSystemId   any   `json:"FileSystemId"`
	SubnetId       any   `json:"SubnetId"`
	SecurityGroups []any `json:"SecurityGroups"`
}

func (MountTarget) ResourceType() string { return "AWS::EFS::MountTarget" }

type AccessPoint struct {
	FileSystemId    any                        `json:"FileSystemId"`
	PosixUser       *AccessPoint_PosixUser     `json:"PosixUser,omitempty"`
	RootDirectory   *AccessPoint_RootDirectory `json:"RootDirectory,omitempty"`
	AccessPointTags []Tag                      `json:"AccessPointTags,omitempty"`
}

func (AccessPoint) ResourceType() string { return "AWS::EFS::AccessPoint" }

type AccessPoint_PosixUser struct {
	Uid string `json:"Uid"`
	Gid string `json:"Gid"`
}

type AccessPoint_RootDirectory struct {
	Path         string                    `json:"Path,omitempty"`
	CreationInfo *AccessPoint_CreationInfo `json:"CreationInfo,omitempty"`
}

type AccessPoint_CreationInfo struct {
	OwnerUid    string `json:"OwnerUid"`
	OwnerGid    string `json:"OwnerGid"`
	Permissions string `json:"Permissions"`
}

type Role struct {
	RoleName                 any            `json:"RoleName,omitempty"`
	AssumeRolePolicyDocument PolicyDocument `json:"AssumeRolePolicyDocument"`
	ManagedPolicyArns        []string       `json:"ManagedPolicyArns,omitempty"`
	Policies                 []Role_Policy  `json:"Policies,omitempty"`
}

func (Role) ResourceType() string { return "AWS::IAM::Role" }

type Role_Policy struct {
	PolicyName     string         `json:"PolicyName"`
	PolicyDocument PolicyDocument `json:"PolicyDocument"`
}

type Policy struct {
	PolicyName     string         `json:"PolicyName"`
	PolicyDocument PolicyDocument `json:"PolicyDocument"`
	Roles          []any          `json:"Roles,omitempty"`
}

func (Policy) ResourceType() string { return "AWS::IAM::Policy" }

type Function struct {
	FunctionName      string                      `json:"FunctionName,omitempty"`
	Description       string                      `json:"Description,omitempty"`
	PackageType       string                      `json:"PackageType,omitempty"`
	Code              Function_Code               `json:"Code"`
	Role              any                         `json:"Role"`
	MemorySize        int                         `json:"MemorySize,omitempty"`
	Timeout           int                         `json:"Timeout,omitempty"`
	Environment       *Function_Environment       `json:"Environment,omitempty"`
	FileSystemConfigs []Function_FileSystemConfig `json:"FileSystemConfigs,omitempty"`
	VpcConfig         *Function_VpcConfig         `json:"VpcConfig,omitempty"`
}

func (Function) ResourceType() string { return "AWS::Lambda::Function" }

type Function_Code struct {
	ImageUri string `json:"ImageUri,omitempty"`
}

type Function_Environment struct {
	Variables map[string]any `json:"Variables,omitempty"`
}

type Function_FileSystemConfig struct {
	Arn            any    `json:"Arn"`
	LocalMountPath string `json:"LocalMountPath"`
}

type Function_VpcConfig struct {
	SecurityGroupIds []any `json:"SecurityGroupIds"`
	SubnetIds        []any `json:"SubnetIds"`
}

type Url struct {
	TargetFunctionArn any       `json:"TargetFunctionArn"`
	AuthType          string    `json:"AuthType"`
	Cors              *Url_Cors `json:"Cors,omitempty"`
}

func (Url) ResourceType() string { return "AWS::Lambda::Url" }

type Url_Cors struct {
	AllowOrigins []string `json:"AllowOrigins,omitempty"`
	AllowMethods []string `json:"AllowMethods,omitempty"`
}

type Permission struct {
	FunctionName        any    `json:"FunctionName"`
	Action              string `json:"Action"`
	Principal           string `json:"Principal"`
	FunctionUrlAuthType string `json:"FunctionUrlAuthType,omitempty"`
}

func (Permission) ResourceType() string { return "AWS::Lambda::Permission" }

type Bucket struct {
	BucketName              any                             `json:"BucketName,omitempty"`
	VersioningConfiguration *Bucket_VersioningConfiguration `json:"VersioningConfiguration,omitempty"`
	Tags                    []Tag                           `json:"Tags,omitempty"`
}

func (Bucket) ResourceType() string { return "AWS::S3::Bucket" }

type Bucket_VersioningConfiguration struct {
	Status string `json:"Status"`
}
