/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

// Package libinfo reports which version of the library is linked into the running binary.
package libinfo

import (
	"regexp"
	"runtime/debug"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const modulePath = "github.com/acronis/go-localcache"

// VersionLabel is the Prometheus label carrying the library version.
const VersionLabel = "go_localcache_version"

const unknownVersion = "v0.0.0"

var (
	version     string
	versionOnce sync.Once
)

// Version returns the version of the library module, or "v0.0.0" if it cannot be determined
// (e.g. in tests of the module itself or in binaries built without module support).
func Version() string {
	versionOnce.Do(func() {
		if buildInfo, ok := debug.ReadBuildInfo(); ok {
			version = findModuleVersion(buildInfo, modulePath)
		}
		if version == "" {
			version = unknownVersion
		}
	})
	return version
}

// WithVersionLabel returns a copy of labels with VersionLabel added.
func WithVersionLabel(labels prometheus.Labels) prometheus.Labels {
	res := make(prometheus.Labels, len(labels)+1)
	for k, v := range labels {
		res[k] = v
	}
	res[VersionLabel] = Version()
	return res
}

// findModuleVersion looks for the module among the dependencies and the main module.
// Major version suffixes ("/v2", "/v3", ...) are accepted.
// The "(devel)" version of a locally built main module is treated as unknown.
func findModuleVersion(buildInfo *debug.BuildInfo, path string) string {
	if buildInfo == nil {
		return ""
	}
	re := regexp.MustCompile(`^` + regexp.QuoteMeta(path) + `(/v[0-9]+)?$`)
	for _, dep := range buildInfo.Deps {
		if dep.Replace != nil && dep.Replace.Version != "" && re.MatchString(dep.Path) {
			return dep.Replace.Version
		}
		if re.MatchString(dep.Path) {
			return dep.Version
		}
	}
	if re.MatchString(buildInfo.Main.Path) && buildInfo.Main.Version != "(devel)" {
		return buildInfo.Main.Version
	}
	return ""
}
