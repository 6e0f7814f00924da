package refdata

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsAPI is the subset of the Secrets Manager client used to fetch
// warehouse credentials.
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, input *secretsmanager.GetSecretValueInput, opts ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// ConfigFromSecret loads the Snowflake connection settings from a Secrets
// Manager secret holding a JSON-encoded Config.
func ConfigFromSecret(ctx context.Context, client SecretsAPI, secretARN string) (Config, error) {
	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: &secretARN,
	})
	if err != nil {
		return Config{}, fmt.Errorf("fetching warehouse secret: %w", err)
	}
	if out.SecretString == nil {
		return Config{}, fmt.Errorf("warehouse secret %s has no string value", secretARN)
	}

	var cfg Config
	if err := json.Unmarshal([]byte(*out.SecretString), &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing warehouse secret: %w", err)
	}
	return cfg, nil
}
