package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type ServerSettings struct {
	Host string `mapstructure:"host" validate:"required"`
	Port int    `mapstructure:"port" validate:"min=1,max=65535"`
}

type ReportSettings struct {
	ProfilesPath   string `mapstructure:"profiles_path"`
	DefaultProfile string `mapstructure:"default_profile" validate:"required"`
	PDFCompress    bool   `mapstructure:"pdf_compress"`
}

type EmailSettings struct {
	From string `mapstructure:"from" validate:"omitempty,email"`
}

// Settings is the runtime configuration shared by the web and CLI entrypoints.
type Settings struct {
	Server         ServerSettings `mapstructure:"server"`
	Report         ReportSettings `mapstructure:"report"`
	Email          EmailSettings  `mapstructure:"email"`
	MaxUploadBytes int64          `mapstructure:"max_upload_bytes" validate:"min=1"`
}

var validate = validator.New()

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("report.default_profile", "default")
	v.SetDefault("report.pdf_compress", true)
	v.SetDefault("report.profiles_path", "")
	v.SetDefault("email.from", "")
	v.SetDefault("max_upload_bytes", 10<<20)
}

// LoadSettings reads an optional YAML file and overlays environment variables such as
// SERVER_HOST, SERVER_PORT and REPORT_PROFILES_PATH.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("invalid setting %s: failed on %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &s, nil
}

func (s *Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Server.Host, s.Server.Port)
}

// Profiles opens the configured profile file, or the built-in default when none is set.
func (s *Settings) Profiles() (Registry, error) {
	if s.Report.ProfilesPath == "" {
		return NewStaticRegistry(), nil
	}
	return NewRegistry(s.Report.ProfilesPath)
}
