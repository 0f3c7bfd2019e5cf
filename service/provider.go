package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/truemediaorg/reelrelay/config"
	"github.com/truemediaorg/reelrelay/provider"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	log "github.com/sirupsen/logrus"
)

// SecretsGetter is the slice of the Secrets Manager client the provider needs.
type SecretsGetter interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type ProviderService struct {
	client *provider.Client
}

// NewProviderService builds the media info client. An API key in the config
// is used as-is; otherwise the key (and optionally the host header) are read
// from AWS Secrets Manager.
func NewProviderService(ctx context.Context, cfg config.Config, secrets SecretsGetter) (*ProviderService, error) {
	apiKey := cfg.Provider.ApiKey
	apiHost := cfg.Provider.Host
	if apiKey == "" {
		providerSecrets, err := readProviderSecrets(ctx, cfg.Provider.SecretPath, secrets)
		if err != nil {
			return nil, err
		}
		apiKey = providerSecrets.ApiKey
		if apiHost == "" {
			apiHost = providerSecrets.Host
		}
	}
	if apiKey == "" {
		return nil, errors.New("provider API key is empty")
	}

	client := provider.NewClient(apiKey, apiHost, cfg.Provider.ApiURL, cfg.Provider.Timeout)
	log.Infof("Provider client initialized. Host: %s", cfg.Provider.ApiURL.String())

	return &ProviderService{client: client}, nil
}

func readProviderSecrets(ctx context.Context, secretPath string, secrets SecretsGetter) (*config.ProviderSecretData, error) {
	if secrets == nil {
		return nil, errors.New("no API key configured and no secrets manager available")
	}
	// Get the provider secrets from AWS Secrets Manager
	result, err := secrets.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretPath),
	})
	if err != nil {
		return nil, fmt.Errorf("provider secrets lookup error: %w", err)
	}
	if result.SecretString == nil {
		return nil, fmt.Errorf("provider secret %s has no string value", secretPath)
	}
	var providerSecrets config.ProviderSecretData
	if err = json.Unmarshal([]byte(*result.SecretString), &providerSecrets); err != nil {
		return nil, fmt.Errorf("provider secrets read error: %w", err)
	}
	return &providerSecrets, nil
}

func (s *ProviderService) MediaInfo(ctx context.Context, reference string) (*provider.MediaInfoResponse, error) {
	return s.client.MediaInfo(ctx, reference)
}
