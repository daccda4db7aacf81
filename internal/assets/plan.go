package assets

import "github.com/miradorstack/mirador-fixtures/internal/models"

const (
	PlanFormatVersion = "1.0"
	TerraformVersion  = "1.5.0"
	AWSProvider       = "registry.terraform.io/hashicorp/aws"
)

// AdminTrustPolicy is the serialized assume-role policy of the admin role.
// Principal "*" lets any AWS account assume it.
const AdminTrustPolicy = `{"Version": "2012-10-17", "Statement": [{"Effect": "Allow", "Principal": {"AWS": "*"}, "Action": "sts:AssumeRole"}]}`

// PlanResources returns a fresh copy of the planned resources, each carrying
// at least one planted misconfiguration.
func PlanResources() []models.PlanResource {
	return []models.PlanResource{
		{
			Address:      "aws_instance.web_server",
			Mode:         "managed",
			Type:         "aws_instance",
			Name:         "web_server",
			ProviderName: AWSProvider,
			Values: map[string]any{
				"ami":           "ami-0c55b159cbfafe1f0",
				"instance_type": "t3.medium",
				"tags": map[string]any{
					"Name":        "web-server-prod",
					"Environment": "production",
				},
				"root_block_device": map[string]any{
					"encrypted":   false,
					"volume_size": 50,
				},
			},
		},
		{
			Address:      "aws_security_group.web_sg",
			Mode:         "managed",
			Type:         "aws_security_group",
			Name:         "web_sg",
			ProviderName: AWSProvider,
			Values: map[string]any{
				"name":        "web-server-sg",
				"description": "Security group for web servers",
				"ingress": []any{
					ingressRule("SSH from anywhere", 22, 22),
					ingressRule("HTTP", 80, 80),
					ingressRule("All ports open", 0, 65535),
				},
				"egress": []any{
					map[string]any{
						"from_port":   0,
						"to_port":     0,
						"protocol":    "-1",
						"cidr_blocks": []string{"0.0.0.0/0"},
					},
				},
			},
		},
		{
			Address:      "aws_s3_bucket.data",
			Mode:         "managed",
			Type:         "aws_s3_bucket",
			Name:         "data",
			ProviderName: AWSProvider,
			Values: map[string]any{
				"bucket": "my-company-sensitive-data",
				"acl":    "public-read",
				"versioning": map[string]any{
					"enabled": false,
				},
				"server_side_encryption_configuration": nil,
			},
		},
		{
			Address:      "aws_db_instance.database",
			Mode:         "managed",
			Type:         "aws_db_instance",
			Name:         "database",
			ProviderName: AWSProvider,
			Values: map[string]any{
				"identifier":              "prod-database",
				"allocated_storage":       100,
				"engine":                  "mysql",
				"engine_version":          "8.0",
				"instance_class":          "db.t3.large",
				"publicly_accessible":     true,
				"skip_final_snapshot":     true,
				"backup_retention_period": 0,
				"storage_encrypted":       false,
				"multi_az":                false,
			},
		},
		{
			Address:      "aws_iam_role.admin_role",
			Mode:         "managed",
			Type:         "aws_iam_role",
			Name:         "admin_role",
			ProviderName: AWSProvider,
			Values: map[string]any{
				"name":               "super-admin-role",
				"assume_role_policy": AdminTrustPolicy,
			},
		},
	}
}

func ingressRule(description string, from, to int) map[string]any {
	return map[string]any{
		"description": description,
		"from_port":   from,
		"to_port":     to,
		"protocol":    "tcp",
		"cidr_blocks": []string{"0.0.0.0/0"},
	}
}
