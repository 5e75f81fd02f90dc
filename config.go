package ddns

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// DefaultConfigPath is read when no usable path is given on the command line.
const DefaultConfigPath = "/etc/mb_ddns.yaml"

// EnvPrefix is prepended to credential keys to form their environment overrides,
// e.g. MB_DDNS_SECRET.
const EnvPrefix = "MB_DDNS"

// Config is the content of the YAML config file.
// Absent ipv4/ipv6 keys decode to false.
type Config struct {
	Domain string `mapstructure:"domain" json:"domain" validate:"required,hostname_label"`
	KeyID  string `mapstructure:"key_id" json:"key_id"`
	Secret string `mapstructure:"secret" json:"secret"`
	IPv4   bool   `mapstructure:"ipv4" json:"ipv4"`
	IPv6   bool   `mapstructure:"ipv6" json:"ipv6"`
}

func (c Config) Enabled(f Family) bool {
	switch f {
	case IPv4:
		return c.IPv4
	case IPv6:
		return c.IPv6
	}
	return false
}

// LocateConfig picks the config file from the positional arguments.
// A single argument naming an existing path wins; anything else falls back to DefaultConfigPath.
func LocateConfig(args []string) string {
	if len(args) == 1 {
		if _, err := os.Stat(args[0]); err == nil {
			return args[0]
		}
	}
	return DefaultConfigPath
}

// CheckPermissions fails with *PermissionError if path is readable by other users.
func CheckPermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &ParseError{Path: path, Err: err}
	}
	if perms := info.Mode().Perm(); perms&0o004 != 0 {
		return &PermissionError{Path: path, Mode: perms}
	}
	return nil
}

// LoadConfig checks the permissions of path, parses it and validates the result.
// No network activity happens here.
func LoadConfig(path string) (Config, error) {
	if err := CheckPermissions(path); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	// the default path has an extension but user supplied paths might not
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return Config{}, &ParseError{Path: path, Err: err}
	}

	v.SetEnvPrefix(EnvPrefix)
	for _, key := range []string{"key_id", "secret"} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("binding environment for %s: %w", key, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		yamlBoolHook,
	))); err != nil {
		return Config{}, &ParseError{Path: path, Err: err}
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// yamlBoolHook accepts the YAML 1.1 boolean words that yaml.v3 leaves as strings,
// so files written for older YAML loaders keep working.
func yamlBoolHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
		return data, nil
	}
	switch strings.ToLower(reflect.ValueOf(data).String()) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	return data, nil
}

// Validate checks the fields that must be correct before any request is made.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	reason := "is required"
	if fe.Tag() != "required" {
		reason = "is not a valid hostname"
	}
	return &ValidationError{Field: fe.Field(), Value: fmt.Sprint(fe.Value()), Reason: reason}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their config key rather than the Go name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("hostname_label", func(fl validator.FieldLevel) bool {
		return ValidHostname(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

var hostnameRE = regexp.MustCompile(`^([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9-]{0,61}[A-Za-z0-9])(\.([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9-]{0,61}[A-Za-z0-9]))*$`)

// ValidHostname reports whether s is a dot separated sequence of non-empty labels
// made of letters, digits and inner hyphens.
func ValidHostname(s string) bool {
	return len(s) <= 253 && hostnameRE.MatchString(s)
}
