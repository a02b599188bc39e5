package usecasecontract

import "time"

// IAppLogger is the logging surface usecases depend on.
type IAppLogger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
}

// IConfigProvider exposes the settings usecases need.
type IConfigProvider interface {
	GetAppBaseURL() string
	GetActivationURL() string
	GetActivationCodeLength() int
	GetActivationTokenTTL() time.Duration
}

type IValidator interface {
	ValidateEmail(email string) error
	ValidatePasswordStrength(password string) error
}
