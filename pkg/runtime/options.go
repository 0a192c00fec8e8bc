package runtime

import (
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"go.uber.org/zap"
)

// Options configures a Runtime, the in-process shape of spec.md §6's
// create_runtime input.
type Options struct {
	// MomentDuration is the fixed wall-clock window between moments
	// (spec.md §4.9). Zero defaults to 333ms.
	MomentDuration time.Duration `mapstructure:"moment_duration"`

	// DefaultCurrency is used for money literals that don't name a
	// currency explicitly (spec.md §6).
	DefaultCurrency string `mapstructure:"default_currency"`

	// HealingDepth bounds constraint healing recursion (spec.md §4.8).
	// Zero defaults to 16.
	HealingDepth int `mapstructure:"healing_depth"`

	// Logger receives diagnostic and observability log lines when set.
	// Logging is additive; it never substitutes for the On() callback.
	Logger *zap.SugaredLogger `mapstructure:"-"`
}

func (o Options) withDefaults() Options {
	if o.MomentDuration <= 0 {
		o.MomentDuration = 333 * time.Millisecond
	}
	if o.DefaultCurrency == "" {
		o.DefaultCurrency = "USD"
	}
	if o.HealingDepth <= 0 {
		o.HealingDepth = 16
	}

	return o
}

// DecodeOptions decodes a loosely-typed map (e.g. parsed from a config
// file or an embedding script's own options object) into an Options,
// using weak-typed coercions so a JSON/YAML moment_duration given as a
// plain integer of milliseconds or a healing_depth given as a numeric
// string both decode cleanly. Grounded on the go-viper/mapstructure
// dependency carried by the erigon-family repos in the retrieval pack.
func DecodeOptions(raw map[string]interface{}) (Options, error) {
	var opts Options
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       millisecondsToDurationHook,
		Result:           &opts,
	})
	if err != nil {
		return Options{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Options{}, err
	}

	return opts.withDefaults(), nil
}

// millisecondsToDurationHook treats a bare numeric moment_duration as
// milliseconds rather than mapstructure's default of raw nanoseconds,
// matching spec.md §6's "milliseconds on the wire" contract.
func millisecondsToDurationHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != reflect.TypeOf(time.Duration(0)) {
		return data, nil
	}
	switch from.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return time.Duration(reflect.ValueOf(data).Int()) * time.Millisecond, nil
	case reflect.Float32, reflect.Float64:
		return time.Duration(reflect.ValueOf(data).Float() * float64(time.Millisecond)), nil
	default:
		return data, nil
	}
}
