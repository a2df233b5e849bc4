package sender

// ProcessorConfig — настройки отправителя.
type ProcessorConfig struct {
	Retries int
}

// DefaultConfig: три попытки отправки, как и раньше.
func DefaultConfig() ProcessorConfig {
	return ProcessorConfig{Retries: 3}
}
