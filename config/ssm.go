package config

import (
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// LoadAWS loads the default AWS configuration for the given region.
func LoadAWS(ctx context.Context, region string) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	return awsconfig.LoadDefaultConfig(ctx, opts...)
}

// OverlaySSM reads every parameter below SSM_PARAMETER_PATH and adds it to env
// under the last path segment (/portfolio/prod/JWT_SECRET -> JWT_SECRET).
// Keys already set in env are left alone. Without SSM_PARAMETER_PATH env is
// returned untouched.
func OverlaySSM(ctx context.Context, env map[string]string) (map[string]string, error) {
	parameterPath := GetString(env, "SSM_PARAMETER_PATH", "")
	if parameterPath == "" {
		return env, nil
	}

	awsCfg, err := LoadAWS(ctx, GetString(env, "AWS_REGION", ""))
	if err != nil {
		return env, fmt.Errorf("load aws config: %w", err)
	}

	return overlayParameters(ctx, ssm.NewFromConfig(awsCfg), parameterPath, env)
}

func overlayParameters(ctx context.Context, client ssm.GetParametersByPathAPIClient, parameterPath string, env map[string]string) (map[string]string, error) {
	merged := make(map[string]string, len(env))
	for k, v := range env {
		merged[k] = v
	}

	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(parameterPath),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	loaded := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return env, fmt.Errorf("get parameters by path %s: %w", parameterPath, err)
		}

		for _, parameter := range page.Parameters {
			key := path.Base(aws.ToString(parameter.Name))
			if key == "" || key == "/" || key == "." {
				continue
			}
			if existing, ok := merged[key]; ok && existing != "" {
				continue
			}
			merged[key] = aws.ToString(parameter.Value)
			loaded++
		}
	}

	log.Info().Str("path", parameterPath).Int("loaded", loaded).Msg("Loaded parameters from SSM")
	return merged, nil
}
