package settings

import "context"

type SettingsRepository interface {
	// GetMany returns the stored values of the given keys; missing keys are absent from the map
	GetMany(ctx context.Context, keys []string) (map[string]string, error)

	// Upsert writes every key/value pair
	Upsert(ctx context.Context, values map[string]string) error
}
