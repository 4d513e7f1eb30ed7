package config

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	derrors "git.home.luguber.info/inful/docsroute/internal/foundation/errors"
)

// ValidateConfig checks a defaulted configuration.
func ValidateConfig(cfg *Config) error {
	v := &configurationValidator{config: cfg}
	for _, check := range []func() error{
		v.validateSite,
		v.validateRouting,
		v.validateMarkdown,
		v.validateServer,
		v.validateReload,
	} {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

type configurationValidator struct {
	config *Config
}

func invalid(field, msg string) error {
	return derrors.ValidationError(msg).WithContext("field", field).Build()
}

func (cv *configurationValidator) validateSite() error {
	h := cv.config.Site.Hostname
	if !strings.HasPrefix(h, "https://") && !strings.HasPrefix(h, "http://") {
		return invalid("site.hostname", "hostname must be an absolute http(s) origin")
	}
	return nil
}

var languagePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9+._-]*$`)

func (cv *configurationValidator) validateRouting() error {
	for _, l := range cv.config.Routing.ClientLanguages {
		if !languagePattern.MatchString(l) {
			return invalid("routing.client_languages", "invalid client language "+l)
		}
	}
	for _, r := range cv.config.Routing.Redirects {
		if r.From == "" || r.To == "" {
			return invalid("routing.redirects", "redirect needs both from and to")
		}
		if _, err := regexp.Compile(r.From); err != nil {
			return derrors.WrapError(err, derrors.CategoryValidation, "invalid redirect expression").
				WithContext("field", "routing.redirects").
				WithContext("expression", r.From).
				Build()
		}
	}
	return nil
}

func (cv *configurationValidator) validateMarkdown() error {
	for _, r := range cv.config.Markdown.Replacements {
		if r.Prefix == "" {
			return invalid("markdown.replacements", "replacement prefix cannot be empty")
		}
	}
	return nil
}

func (cv *configurationValidator) validateServer() error {
	s := cv.config.Server
	switch s.RedirectStatus {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
	default:
		return invalid("server.redirect_status", "redirect status must be 301, 302, 307 or 308")
	}
	if err := validDuration("server.read_header_timeout", s.ReadHeaderTimeout); err != nil {
		return err
	}
	return validDuration("server.shutdown_timeout", s.ShutdownTimeout)
}

func (cv *configurationValidator) validateReload() error {
	r := cv.config.Reload
	if err := validDuration("reload.debounce", r.Debounce); err != nil {
		return err
	}
	if err := cv.validateRetry(); err != nil {
		return err
	}
	if r.Interval == "" {
		return nil
	}
	if err := validDuration("reload.interval", r.Interval); err != nil {
		return err
	}
	if r.IntervalDuration() < time.Second {
		return invalid("reload.interval", "reload interval must be at least 1s")
	}
	return nil
}

func (cv *configurationValidator) validateRetry() error {
	r := cv.config.Reload.Retry
	switch r.Backoff {
	case RetryBackoffFixed, RetryBackoffLinear, RetryBackoffExponential:
	default:
		return invalid("reload.retry.backoff", "backoff must be fixed, linear or exponential")
	}
	if err := validDuration("reload.retry.initial", r.Initial); err != nil {
		return err
	}
	if err := validDuration("reload.retry.max", r.Max); err != nil {
		return err
	}
	if r.Retries() < 0 {
		return invalid("reload.retry.max_retries", "max retries cannot be negative")
	}
	return nil
}

func validDuration(field, value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryValidation, "invalid duration").
			WithContext("field", field).
			WithContext("value", value).
			Build()
	}
	if d < 0 {
		return invalid(field, "duration cannot be negative")
	}
	return nil
}
