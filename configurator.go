package plugconf

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/nextpkg/plugconf/document"
	"github.com/nextpkg/plugconf/plugin"
	"github.com/nextpkg/plugconf/props"
	"github.com/nextpkg/plugconf/propset"
	"github.com/nextpkg/plugconf/repository"
	"github.com/nextpkg/plugconf/slogs"
	"github.com/nextpkg/plugconf/validator"
)

// Element and attribute names of the configuration document.
const (
	rootTag       = "configuration"
	pluginTag     = "plugin"
	paramTag      = "param"
	propertyTag   = "property"
	loggerTag     = "logger"
	rootLoggerTag = "root"
	levelTag      = "level"

	classAttr     = "class"
	nameAttr      = "name"
	valueAttr     = "value"
	debugAttr     = "debug"
	thresholdAttr = "threshold"
)

// rootLoggerName is the repository logger adjusted by the <root> element.
const rootLoggerName = "root"

// Configurator interprets one parsed configuration document against a
// repository. Each instance carries the substitution context of a single
// configuration pass; create a fresh one per pass.
type Configurator struct {
	props *props.Store
}

// NewConfigurator creates a configurator with an empty substitution context.
func NewConfigurator() *Configurator {
	return &Configurator{
		props: props.New(),
	}
}

// Configure applies the document rooted at root to repo. Base content
// (properties, logger levels, threshold) is interpreted first. If the
// repository hosts a plugin registry, every plugin element is then built,
// parameter-bound and registered, and the whole batch is activated in
// document order afterwards. A nil repo targets the process default
// repository.
func (c *Configurator) Configure(root *document.Node, repo repository.Repository) {
	if root == nil {
		return
	}
	if repo == nil {
		repo = repository.Default()
	}

	if root.Tag != rootTag {
		slogs.Warn("Unexpected configuration root element", "tag", root.Tag)
	}

	c.configureBase(root, repo)
	c.configurePlugins(root, repo)
}

// configureBase interprets the non-plugin content of the document. It runs
// before any plugin is built, so properties declared here are available for
// substitution in plugin names and param values.
func (c *Configurator) configureBase(root *document.Node, repo repository.Repository) {
	if debug := c.props.Expand(root.Attr(debugAttr)); debug != "" {
		if on, err := strconv.ParseBool(debug); err != nil {
			slogs.Warn("Invalid debug attribute", "value", debug)
		} else if on {
			slogs.SetLevel(slog.LevelDebug)
		}
	}

	if threshold := c.props.Expand(root.Attr(thresholdAttr)); threshold != "" {
		if level, err := parseLevel(threshold); err != nil {
			slogs.Warn("Invalid threshold attribute", "value", threshold)
		} else {
			repo.SetThreshold(level)
		}
	}

	forEachTagged(root, propertyTag, func(el *document.Node) {
		name := el.Attr(nameAttr)
		if name == "" {
			slogs.Warn("Property element without a name, ignoring")
			return
		}
		c.props.Set(name, c.props.Expand(el.Attr(valueAttr)))
	})

	forEachTagged(root, loggerTag, func(el *document.Node) {
		name := c.props.Expand(el.Attr(nameAttr))
		if name == "" {
			slogs.Warn("Logger element without a name, ignoring")
			return
		}
		c.configureLoggerLevel(el, repo, name)
	})

	forEachTagged(root, rootLoggerTag, func(el *document.Node) {
		c.configureLoggerLevel(el, repo, rootLoggerName)
	})
}

// configureLoggerLevel applies the <level> child of a logger element to the
// named repository logger. Unknown level strings are warnings, not errors.
func (c *Configurator) configureLoggerLevel(el *document.Node, repo repository.Repository, name string) {
	forEachTagged(el, levelTag, func(lv *document.Node) {
		value := c.props.Expand(lv.Attr(valueAttr))

		level, err := parseLevel(value)
		if err != nil {
			slogs.Warn("Invalid level value", "logger", name, "value", value)
			return
		}

		repo.SetLoggerLevel(name, level)
		slogs.Debug("Logger level set", "logger", name, "level", level)
	})
}

// configurePlugins is the post-parse extension hook. If the repository does
// not host a plugin registry the whole phase is a silent no-op. Otherwise
// every plugin element found from the root is built and registered, and the
// accumulated batch is activated afterwards, in document order. Registration
// of every plugin in the pass strictly precedes activation of any of them.
func (c *Configurator) configurePlugins(root *document.Node, repo repository.Repository) {
	host, ok := repo.(repository.Host)
	if !ok {
		slogs.Debug("Repository does not host plugins, skipping plugin configuration",
			"repository", repo.Name())
		return
	}

	built := make([]plugin.Plugin, 0)

	forEachTagged(root, pluginTag, func(el *document.Node) {
		c.buildPlugin(el, host, &built)
	})

	for _, p := range built {
		if err := p.ActivateOptions(); err != nil {
			slogs.Error("Plugin activation failed", "plugin", p.Name(), "error", err)
			continue
		}
		slogs.Debug("Plugin activated", "plugin", p.Name())
	}
}

// buildPlugin constructs, names, binds, registers and accumulates the plugin
// declared by one plugin element. Every failure is contained to this element:
// it is logged, nothing is registered or accumulated for it, and sibling
// elements proceed unaffected.
func (c *Configurator) buildPlugin(el *document.Node, host repository.Host, built *[]plugin.Plugin) {
	class := el.Attr(classAttr)
	if class == "" {
		// Deliberate no-op, not a failure.
		return
	}

	inst, err := plugin.New(class)
	if err != nil {
		slogs.Error("Could not create plugin", "class", class, "error", err)
		return
	}

	name := c.props.Expand(el.Attr(nameAttr))
	if name == "" {
		slogs.Warn("Plugin has no configured name", "class", class)
	} else {
		inst.SetName(name)
	}

	if err = c.bindParams(inst, el); err != nil {
		slogs.Error("Could not configure plugin", "plugin", name, "class", class, "error", err)
		return
	}

	host.Plugins().Add(inst)
	inst.SetRepository(host)

	*built = append(*built, inst)

	slogs.Debug("Plugin built", "plugin", name, "class", class)
}

// bindParams applies every param child of the plugin element onto the
// instance, then runs post-bind validation. Param values go through variable
// substitution before being set.
func (c *Configurator) bindParams(inst plugin.Plugin, el *document.Node) error {
	setter := propset.New(inst)

	var errs []error
	forEachTagged(el, paramTag, func(p *document.Node) {
		name := p.Attr(nameAttr)
		if name == "" {
			errs = append(errs, fmt.Errorf("param element without a name"))
			return
		}

		value := c.props.Expand(p.Attr(valueAttr))
		if err := setter.Set(name, value); err != nil {
			errs = append(errs, err)
		}
	})

	if err := errors.Join(errs...); err != nil {
		return err
	}

	return validator.Validate(inst)
}

// parseLevel translates a level string (debug, info, warn, error; case
// insensitive) into a slog.Level.
func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	return level, err
}
