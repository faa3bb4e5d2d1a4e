package config

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/artist-portfolio-backend/errs"
)

// SSMGetParameterAPI is the part of the SSM client used to read the admin
// secret.
type SSMGetParameterAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// ResolveAdminSecret returns the bearer secret for mutating requests. A
// configured SSM parameter wins over ADMIN_API_KEY. An empty result is not an
// error: the API then rejects every mutation.
func ResolveAdminSecret(ctx context.Context, s Settings, client SSMGetParameterAPI) (string, error) {
	if s.AdminAPIKeySSMParameter == "" {
		if s.AdminAPIKey == "" {
			log.Warn().Msg("no admin secret configured, mutating requests will be rejected")
		}
		return s.AdminAPIKey, nil
	}

	if client == nil {
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return "", errs.NewConfigError("aws", err)
		}
		client = ssm.NewFromConfig(cfg)
	}

	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(s.AdminAPIKeySSMParameter),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", errs.NewConfigError("ADMIN_API_KEY_SSM_PARAMETER", err)
	}
	if out.Parameter == nil || aws.ToString(out.Parameter.Value) == "" {
		return "", errs.NewInvalidConfigError("ADMIN_API_KEY_SSM_PARAMETER", "parameter has no value")
	}

	log.Info().Str("parameter", s.AdminAPIKeySSMParameter).Msg("admin secret loaded from SSM")
	return aws.ToString(out.Parameter.Value), nil
}
