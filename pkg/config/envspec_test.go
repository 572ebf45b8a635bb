package config_test

import (
	"reflect"
	"testing"

	cfg "github.com/ArkLabsHQ/bitpay-client/pkg/config"
	"github.com/spf13/cast"
	"github.com/stretchr/testify/require"
)

func TestEnvSpecsMatchLoadedDefaults(t *testing.T) {
	t.Setenv("BITPAY_API_KEY", "my-key")

	config, err := cfg.LoadConfig()
	require.NoError(t, err)

	loaded := fieldsByKey(t, config)
	for _, s := range cfg.EnvSpecs() {
		if s.Default == "" {
			continue
		}
		require.Equal(t, s.Default, cast.ToString(loaded[s.Name]), "default mismatch for %s", s.FullName)
	}
}

func TestEnvSpecsExamplesLoad(t *testing.T) {
	for _, s := range cfg.EnvSpecs() {
		require.NotEmpty(t, s.Example, "missing example for %s", s.FullName)
		t.Setenv(s.FullName, s.Example)
	}

	config, err := cfg.LoadConfig()
	require.NoError(t, err)

	loaded := fieldsByKey(t, config)
	for _, s := range cfg.EnvSpecs() {
		require.Equal(t, s.Example, cast.ToString(loaded[s.Name]), "example mismatch for %s", s.FullName)
	}
}

func TestEnvSpecsMatchStructTags(t *testing.T) {
	specs := map[string]cfg.EnvVar{}
	for _, s := range cfg.EnvSpecs() {
		require.Equal(t, "BITPAY_"+s.Name, s.FullName)
		specs[s.Name] = s
	}

	typ := reflect.TypeOf(cfg.Config{})
	require.Len(t, specs, typ.NumField())

	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		key := f.Tag.Get("mapstructure")
		spec, ok := specs[key]
		require.True(t, ok, "missing env spec for %s", key)
		require.Equal(t, f.Tag.Get("envDefault"), spec.Default, "default mismatch for %s", key)
		require.Equal(t, f.Tag.Get("envInfo"), spec.Description, "description mismatch for %s", key)
		require.Equal(t, spec.Default == "", spec.Required, "required flag mismatch for %s", key)
	}
}

func fieldsByKey(t *testing.T, config *cfg.Config) map[string]any {
	t.Helper()

	val := reflect.ValueOf(config).Elem()
	typ := val.Type()

	fields := make(map[string]any, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		fields[typ.Field(i).Tag.Get("mapstructure")] = val.Field(i).Interface()
	}
	return fields
}
