package domain

import (
	"path"
	"strings"
)

// TrustedPaths are always searched by the resolver regardless of
// configuration.
var TrustedPaths = []string{"/lib", "/usr/lib"}

// NormalizePath canonicalises a filesystem path the way the linker would
// see it: collapsing repeated slashes, resolving "." components, and
// stripping a trailing slash (except at the root).
func NormalizePath(p string) string {
	if p == "" {
		return p
	}
	cleaned := path.Clean(p)
	if cleaned == "." {
		return ""
	}
	return cleaned
}

// SplitSearchPath splits a colon-separated RPATH/RUNPATH-style string into
// its normalised path segments, dropping empty segments.
func SplitSearchPath(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ":")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, NormalizePath(p))
	}
	return out
}

// SplitArchivePath splits an in-archive file path into its absolute
// dirname and basename, the way Elf.Dirname/Basename are derived.
func SplitArchivePath(p string) (dirname, basename string) {
	clean := NormalizePath("/" + strings.TrimPrefix(p, "/"))
	dirname, basename = path.Split(clean)
	dirname = NormalizePath(dirname)
	if dirname == "" {
		dirname = "/"
	}
	return dirname, basename
}
