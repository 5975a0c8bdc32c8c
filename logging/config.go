package logging

import "time"

// Config tunes the router. Zero values fall back to the defaults below, so
// callers can set only what they care about.
type Config struct {
	EnabledSinks     []string
	BufferSize       int
	MinimumSeverity  Severity
	ServiceFields    map[string]any
	JSONPath         string
	DropWarnInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		EnabledSinks:     []string{"console"},
		BufferSize:       512,
		MinimumSeverity:  SeverityInfo,
		DropWarnInterval: 5 * time.Second,
	}
}

func (c Config) HasSink(name string) bool {
	for _, s := range c.EnabledSinks {
		if s == name {
			return true
		}
	}
	return false
}

func (c Config) cloneServiceFields() map[string]any {
	if len(c.ServiceFields) == 0 {
		return nil
	}
	cloned := make(map[string]any, len(c.ServiceFields))
	for k, v := range c.ServiceFields {
		cloned[k] = v
	}
	return cloned
}
