package botconfig

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"print3d-order-admin/pkg"
)

var ErrEmptyKey = fmt.Errorf("%w: config key is empty", pkg.ErrValidation)

type Service interface {
	Get(ctx context.Context, key, def string) (string, error)
	GetBool(ctx context.Context, key string, def bool) (bool, error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, values map[string]string) error
	GetAll(ctx context.Context) (map[string]string, error)
	UpdateAll(ctx context.Context, values map[string]any) error

	Texts(ctx context.Context) (map[string]string, error)
	UpdateTexts(ctx context.Context, values map[string]any) error
	Settings(ctx context.Context) (map[string]any, error)
	UpdateSettings(ctx context.Context, values map[string]any) error
}

type DefaultService struct {
	repo Repo
}

func NewDefaultService(repo Repo) Service {
	return &DefaultService{repo: repo}
}

func (d *DefaultService) Get(ctx context.Context, key, def string) (string, error) {
	value, ok, err := d.repo.GetValue(ctx, key)
	if err != nil {
		slog.Error("Error retrieving config value", "error", err, "key", key)
		return "", err
	}
	if !ok {
		return def, nil
	}
	return value, nil
}

func (d *DefaultService) GetBool(ctx context.Context, key string, def bool) (bool, error) {
	value, err := d.Get(ctx, key, "")
	if err != nil {
		return false, err
	}
	return parseToggle(value, def), nil
}

func (d *DefaultService) Set(ctx context.Context, key, value string) error {
	return d.SetMany(ctx, map[string]string{key: value})
}

func (d *DefaultService) SetMany(ctx context.Context, values map[string]string) error {
	for key := range values {
		if strings.TrimSpace(key) == "" {
			return ErrEmptyKey
		}
	}
	if len(values) == 0 {
		return nil
	}

	if err := d.repo.Upsert(ctx, values); err != nil {
		slog.Error("Error saving config", "error", err, "keys", len(values))
		return err
	}
	slog.Info("Bot config updated", "keys", sortedKeys(values))
	return nil
}

func (d *DefaultService) GetAll(ctx context.Context) (map[string]string, error) {
	values, err := d.repo.GetAll(ctx)
	if err != nil {
		slog.Error("Error retrieving config", "error", err)
		return nil, err
	}
	return values, nil
}

// UpdateAll stores every pair in values, known key or not.
func (d *DefaultService) UpdateAll(ctx context.Context, values map[string]any) error {
	toSave := make(map[string]string, len(values))
	for key, v := range values {
		toSave[key] = stringValue(v)
	}
	return d.SetMany(ctx, toSave)
}

// Texts returns every known text key, empty when unset.
func (d *DefaultService) Texts(ctx context.Context) (map[string]string, error) {
	all, err := d.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	texts := make(map[string]string, len(TextKeys))
	for _, key := range TextKeys {
		texts[key] = all[key]
	}
	return texts, nil
}

// UpdateTexts saves the known text keys present in values and ignores the rest.
func (d *DefaultService) UpdateTexts(ctx context.Context, values map[string]any) error {
	toSave := make(map[string]string)
	for _, key := range TextKeys {
		if v, ok := values[key]; ok {
			toSave[key] = stringValue(v)
		}
	}
	return d.SetMany(ctx, toSave)
}

// Settings returns plain settings and photos as strings and toggles as booleans.
func (d *DefaultService) Settings(ctx context.Context) (map[string]any, error) {
	all, err := d.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	keys := SettingsKeys()
	settings := make(map[string]any, len(keys))
	for _, key := range keys {
		if isToggle(key) {
			settings[key] = parseToggle(all[key], true)
			continue
		}
		settings[key] = all[key]
	}
	return settings, nil
}

func (d *DefaultService) UpdateSettings(ctx context.Context, values map[string]any) error {
	toSave := make(map[string]string)
	for _, key := range SettingsKeys() {
		v, ok := values[key]
		if !ok {
			continue
		}
		if isToggle(key) {
			toSave[key] = formatToggle(v)
			continue
		}
		toSave[key] = stringValue(v)
	}
	return d.SetMany(ctx, toSave)
}
