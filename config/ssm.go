package config

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// parameterLister is the subset of the SSM client used by the overlay.
type parameterLister interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// WithSSM overlays parameters stored under AWS_SSM_PARAMETER_PATH onto the
// config map. A parameter named /gaffer/prod/jwt_secret_key becomes
// JWT_SECRET_KEY. Without the path set the map is returned unchanged.
func WithSSM(ctx context.Context, c map[string]string) (map[string]string, error) {
	prefix := GetString(c, "AWS_SSM_PARAMETER_PATH", "")
	if prefix == "" {
		return c, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(GetString(c, "AWS_REGION", "us-east-1")))
	if err != nil {
		return c, fmt.Errorf("load aws config: %w", err)
	}

	return overlaySSM(ctx, ssm.NewFromConfig(awsCfg), prefix, c)
}

func overlaySSM(ctx context.Context, client parameterLister, prefix string, c map[string]string) (map[string]string, error) {
	merged := make(map[string]string, len(c))
	for k, v := range c {
		merged[k] = v
	}

	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return c, fmt.Errorf("read ssm parameters under %s: %w", prefix, err)
		}
		for _, p := range page.Parameters {
			name := aws.ToString(p.Name)
			if name == "" {
				continue
			}
			merged[ParameterKey(name)] = aws.ToString(p.Value)
		}
	}
	return merged, nil
}

// ParameterKey maps an SSM parameter name to its environment-style key.
func ParameterKey(name string) string {
	key := strings.ToUpper(path.Base(name))
	return strings.NewReplacer("-", "_", ".", "_").Replace(key)
}
