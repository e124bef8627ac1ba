// Package config provides the YAML-driven CLI defaults loader: library
// paths, ignore/assume-found rules, base packages and the strict-linking
// and max-jobs settings applied to a fresh DB at startup.
package config

import (
	"os"

	"github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Defaults is the on-disk shape of a pkgdepdb config file.
type Defaults struct {
	LibraryPath      []string `yaml:"library_path"`
	IgnoreFileRules  []string `yaml:"ignore_file_rules"`
	AssumeFoundRules []string `yaml:"assume_found_rules"`
	BasePackages     []string `yaml:"base_packages"`
	StrictLinking    bool     `yaml:"strict_linking"`
	MaxJobs          int      `yaml:"max_jobs"`
}

// Load reads a YAML config file from path and returns its Defaults.
func Load(path string) (*Defaults, error) {
	//nolint:gosec // path is an operator-supplied config file, not user web input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var d Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}
	return &d, nil
}

// ApplyTo copies d's settings onto a fresh DB. It is meant to run once, at
// startup, before any package is installed; mutating rule stores later
// requires the normal rule-store mutators and a RelinkAll.
func (d *Defaults) ApplyTo(db *domain.DB) {
	db.LibraryPath = append([]string(nil), d.LibraryPath...)
	for _, f := range d.IgnoreFileRules {
		db.IgnoreFileRules[f] = struct{}{}
	}
	for _, s := range d.AssumeFoundRules {
		db.AssumeFoundRules[s] = struct{}{}
	}
	db.BasePackages = append([]string(nil), d.BasePackages...)
	db.StrictLinking = d.StrictLinking
	db.MaxJobs = d.MaxJobs
}
