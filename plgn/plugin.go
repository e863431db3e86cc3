package plgn

import (
	"log"
	"strings"
	"sync"

	"github.com/pm1-tools/pm1/pm1"
)

var (
	registryMu     sync.RWMutex
	pluginRegistry = make(map[string]func(interface{}) pm1.Plugin)
)

func init() {
	RegisterPlugin("default", NewDefaultPlugin)
	RegisterPlugin("debug", NewDebugPlugin)
	RegisterPlugin("steplog", NewStepLogPlugin)
}

func RegisterPlugin(name string, constructor func(interface{}) pm1.Plugin) {
	registryMu.Lock()
	defer registryMu.Unlock()
	pluginRegistry[name] = constructor
}

// CreatePlugins builds the comma-separated list of enabled plugins. Unknown
// names are logged and skipped.
func CreatePlugins(enabledPlugins string, params interface{}) []pm1.Plugin {
	registryMu.RLock()
	defer registryMu.RUnlock()

	var plugins []pm1.Plugin
	for _, name := range strings.Split(enabledPlugins, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		constructor, exists := pluginRegistry[name]
		if !exists {
			log.Printf("plugin %s not found", name)
			continue
		}
		if p := constructor(params); p != nil {
			plugins = append(plugins, p)
		}
	}
	return plugins
}
