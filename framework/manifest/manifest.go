// Package manifest loads container bindings from a YAML file.
//
//	bindings:
//	  github.com/acme/app.Mailer: github.com/acme/app.SMTPMailer
//	singletons:
//	  github.com/acme/app.Cache: github.com/acme/app.RedisCache
//	  github.com/acme/app.Clock: ""    # bound to itself
package manifest

import (
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/km-arc/autowire/framework/container"
	"github.com/km-arc/autowire/framework/reflection"
)

// Manifest maps abstracts to class identifiers. An empty class binds the
// abstract to itself.
type Manifest struct {
	Bindings   map[string]string `yaml:"bindings"`
	Singletons map[string]string `yaml:"singletons"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "manifest: read")
	}
	return Parse(data)
}

// Parse decodes a YAML manifest.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "manifest: parse")
	}
	return &m, nil
}

// Binds returns the transient bindings in the shape container.Create takes.
func (m *Manifest) Binds() map[string]container.Concrete {
	return concretes(m.Bindings)
}

// Shared returns the singleton bindings in the shape container.Create takes.
func (m *Manifest) Shared() map[string]container.Concrete {
	return concretes(m.Singletons)
}

// Apply binds every entry into c, transient bindings first.
func (m *Manifest) Apply(c *container.Container) {
	for abstract, concrete := range m.Binds() {
		c.Bind(abstract, concrete)
	}
	for abstract, concrete := range m.Shared() {
		c.Singleton(abstract, concrete)
	}
}

// Entry is one manifest line.
type Entry struct {
	Abstract string
	Class    string
	Shared   bool
}

// Entries lists bindings then singletons, each sorted by abstract.
func (m *Manifest) Entries() []Entry {
	out := make([]Entry, 0, len(m.Bindings)+len(m.Singletons))
	out = appendSorted(out, m.Bindings, false)
	return appendSorted(out, m.Singletons, true)
}

// Missing returns the entries whose class is not declared in classes.
func (m *Manifest) Missing(classes *reflection.Table) []Entry {
	var out []Entry
	for _, e := range m.Entries() {
		if !classes.Has(e.Class) {
			out = append(out, e)
		}
	}
	return out
}

func concretes(in map[string]string) map[string]container.Concrete {
	out := make(map[string]container.Concrete, len(in))
	for abstract, class := range in {
		if class == "" {
			out[abstract] = nil
			continue
		}
		out[abstract] = container.Class(class)
	}
	return out
}

func appendSorted(out []Entry, in map[string]string, shared bool) []Entry {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, abstract := range keys {
		class := in[abstract]
		if class == "" {
			class = abstract
		}
		out = append(out, Entry{Abstract: abstract, Class: class, Shared: shared})
	}
	return out
}
