package config

type ProviderSecretData struct {
	ApiKey string `json:"apiKey"`
	Host   string `json:"host"`
}
