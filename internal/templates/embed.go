// Package templates embeds the built-in replay scripts.
package templates

import (
	"embed"
	"io/fs"
	"path"
	"slices"
	"strings"
)

// scripts holds scripts/<name>.yaml.
//
//go:embed scripts
var scripts embed.FS

// ScriptsFS returns the embedded scripts rooted at scripts/.
func ScriptsFS() fs.FS {
	sub, err := fs.Sub(scripts, "scripts")
	if err != nil {
		panic(err)
	}
	return sub
}

// ScriptNames lists the built-in script names, sorted.
func ScriptNames() []string {
	entries, _ := fs.ReadDir(ScriptsFS(), ".")
	var names []string
	for _, e := range entries {
		if !e.IsDir() && path.Ext(e.Name()) == ".yaml" {
			names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
		}
	}
	slices.Sort(names)
	return names
}

// Script returns the named built-in script.
func Script(name string) ([]byte, error) {
	return fs.ReadFile(ScriptsFS(), name+".yaml")
}
