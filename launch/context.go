package launch

import (
	"os"
	"sort"

	"go.viam.com/rdk/logging"
)

// PackageLocator resolves the installed share directory of a ROS package.
type PackageLocator interface {
	PackageShare(name string) (string, error)
}

// Context carries the launch configurations and collaborators that
// substitutions and conditions are performed against.
type Context struct {
	configs   map[string]string
	runner    CommandRunner
	locator   PackageLocator
	lookupEnv func(string) (string, bool)
	logger    logging.Logger
}

type Option func(*Context)

func WithRunner(r CommandRunner) Option {
	return func(c *Context) { c.runner = r }
}

func WithLocator(l PackageLocator) Option {
	return func(c *Context) { c.locator = l }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Context) { c.logger = l }
}

// WithEnv replaces os.LookupEnv for EnvironmentVariable substitutions.
func WithEnv(lookup func(string) (string, bool)) Option {
	return func(c *Context) { c.lookupEnv = lookup }
}

// NewContext builds a Context with no configurations set. Unset
// collaborators fall back to ExecRunner, os.LookupEnv and a "launch" logger.
func NewContext(opts ...Option) *Context {
	c := &Context{
		configs:   map[string]string{},
		runner:    ExecRunner{},
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NewLogger("launch")
	}
	return c
}

// Configuration returns the value of a launch configuration.
func (c *Context) Configuration(name string) (string, bool) {
	v, ok := c.configs[name]
	return v, ok
}

// SetConfiguration sets a launch configuration, replacing any previous value.
func (c *Context) SetConfiguration(name, value string) {
	c.configs[name] = value
}

// Configurations returns a copy of every launch configuration.
func (c *Context) Configurations() map[string]string {
	out := make(map[string]string, len(c.configs))
	for k, v := range c.configs {
		out[k] = v
	}
	return out
}

func (c *Context) configurationNames() []string {
	names := make([]string, 0, len(c.configs))
	for k := range c.configs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (c *Context) Runner() CommandRunner {
	return c.runner
}

func (c *Context) Locator() PackageLocator {
	return c.locator
}

func (c *Context) Logger() logging.Logger {
	return c.logger
}

// LookupEnv reads an environment variable through the configured lookup.
func (c *Context) LookupEnv(name string) (string, bool) {
	return c.lookupEnv(name)
}
