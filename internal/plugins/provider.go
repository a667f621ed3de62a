package plugins

import (
	"github.com/ripplelabs/ripple-api/internal/core"
)

func Setup(install func(p core.Plugins), mode string) {
	p := provider[mode]
	if p == nil {
		panic("Setup mode not found: " + mode)
	}
	install(p())
}

var provider = make(map[string]core.SetupFunc)

func init() {
	RegisterProvider("selfhost", newSelfHostMode())
}

func RegisterProvider(key string, p core.Plugins) {
	provider[key] = func() core.Plugins {
		return p
	}
}
