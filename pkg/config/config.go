package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MehmetBener/Slicer-Julia/pkg/diag"
)

// Config holds the current value of every Schema option, keyed by name.
type Config struct {
	values map[string]interface{}
}

// New returns a Config initialized to every option's declared default.
func New() *Config {
	c := &Config{values: make(map[string]interface{}, len(Schema))}
	for _, o := range Schema {
		c.values[o.Name] = o.Default
	}
	return c
}

// Get returns the current value of key, or nil if key is unknown.
func (c *Config) Get(key string) interface{} {
	return c.values[key]
}

// GetFloat is a convenience accessor for float/int-typed options; it
// coerces an int default to float64 so callers need not care which
// numeric Type an option was declared with.
func (c *Config) GetFloat(key string) float64 {
	switch v := c.values[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

// GetInt is the integer counterpart to GetFloat.
func (c *Config) GetInt(key string) int {
	switch v := c.values[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

// GetBool returns key's boolean value, or false if key is unknown or
// not boolean-typed.
func (c *Config) GetBool(key string) bool {
	v, _ := c.values[key].(bool)
	return v
}

// GetString returns key's string (enum) value.
func (c *Config) GetString(key string) string {
	v, _ := c.values[key].(string)
	return v
}

// Set validates value against key's declared Option (type, range, or
// enum choices) and, if valid, stores it; every load and CLI-driven
// mutation path goes through this one setter. On
// failure it records a diagnostic and leaves the previous value intact,
//
// handling, and returns the same error so callers needing to react to a
// bad --set-option can do so without re-deriving it from the sink.
func (c *Config) Set(key, rawValue string, sink *diag.Sink) error {
	opt, ok := Find(key)
	if !ok {
		sink.Addf(diag.KindConfigUnknown, "config.Set", -1, "ignoring unknown config option %q", key)
		return fmt.Errorf("config: unknown option %q", key)
	}

	switch opt.Type {
	case TypeBool:
		v, err := parseBool(rawValue)
		if err != nil {
			sink.Addf(diag.KindConfigWrongType, "config.Set", -1, "%q expects a bool, got %q", key, rawValue)
			return err
		}
		c.values[key] = v

	case TypeInt:
		v, err := strconv.Atoi(rawValue)
		if err != nil {
			sink.Addf(diag.KindConfigWrongType, "config.Set", -1, "%q expects an int, got %q", key, rawValue)
			return err
		}
		if float64(v) < opt.Min || float64(v) > opt.Max {
			sink.Addf(diag.KindConfigRange, "config.Set", -1, "Value should be between %g and %g", opt.Min, opt.Max)
			return fmt.Errorf("config: %q out of range [%g, %g]", key, opt.Min, opt.Max)
		}
		c.values[key] = v

	case TypeFloat:
		v, err := strconv.ParseFloat(rawValue, 64)
		if err != nil {
			sink.Addf(diag.KindConfigWrongType, "config.Set", -1, "%q expects a float, got %q", key, rawValue)
			return err
		}
		if v < opt.Min || v > opt.Max {
			sink.Addf(diag.KindConfigRange, "config.Set", -1, "Value should be between %g and %g", opt.Min, opt.Max)
			return fmt.Errorf("config: %q out of range [%g, %g]", key, opt.Min, opt.Max)
		}
		c.values[key] = v

	case TypeEnum:
		if !contains(opt.Choices, rawValue) {
			sink.Addf(diag.KindConfigWrongType, "config.Set", -1, "%q must be one of %v, got %q", key, opt.Choices, rawValue)
			return fmt.Errorf("config: %q must be one of %v", key, opt.Choices)
		}
		c.values[key] = rawValue
	}
	return nil
}

func parseBool(s string) (bool, error) {
	switch s {
	case "true", "True":
		return true, nil
	case "false", "False":
		return false, nil
	default:
		return false, fmt.Errorf("config: %q is not a bool", s)
	}
}

func contains(choices []string, v string) bool {
	for _, c := range choices {
		if c == v {
			return true
		}
	}
	return false
}

// Load reads a key=value config file
// line, "#"-prefixed comments (including section-header comments),
// blank lines ignored. Parse errors for individual lines are routed
// through Set's diagnostics rather than aborting the load.
func Load(r io.Reader, c *Config, sink *diag.Sink) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			sink.Addf(diag.KindConfigWrongType, "config.Load", -1, "malformed line (no '='): %q", line)
			continue
		}
		key := strings.TrimSpace(line[:eq])
		val := strings.TrimSpace(line[eq+1:])
		_ = c.Set(key, val, sink) // errors already recorded in sink; keep loading
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("config: read: %w", err)
	}
	return nil
}

// Save writes every option, grouped by section with "# Section" header
// comments, in Schema's declared order.
func Save(w io.Writer, c *Config) error {
	bw := bufio.NewWriter(w)
	currentSection := ""
	for _, o := range Schema {
		if o.Section != currentSection {
			if currentSection != "" {
				fmt.Fprintln(bw)
			}
			fmt.Fprintf(bw, "# %s\n", o.Section)
			currentSection = o.Section
		}
		fmt.Fprintf(bw, "%s=%v\n", o.Name, c.values[o.Name])
	}
	return bw.Flush()
}
