package pkgarchive

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"
)

// parsePKGINFO parses a ".PKGINFO" member's contents into a fresh Package.
// Unknown keys are skipped to end-of-line. optdepend's trailing
// ": description" suffix is stripped, keeping only the dependency
// expression.
func parsePKGINFO(data []byte) *domain.Package {
	pkg := domain.NewPackage("", "")

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		key, value, ok := splitPKGINFOLine(scanner.Text())
		if !ok {
			continue
		}
		switch key {
		case "pkgname":
			pkg.Name = value
		case "pkgver":
			pkg.Version = value
		case "depend":
			pkg.Depends = append(pkg.Depends, value)
		case "optdepend":
			if idx := strings.Index(value, ":"); idx >= 0 {
				value = strings.TrimSpace(value[:idx])
			}
			pkg.OptDepends = append(pkg.OptDepends, value)
		case "replaces":
			pkg.Replaces = append(pkg.Replaces, value)
		case "conflict":
			pkg.Conflicts = append(pkg.Conflicts, value)
		case "provides":
			pkg.Provides = append(pkg.Provides, value)
		case "group":
			pkg.Groups[value] = struct{}{}
		}
	}
	return pkg
}

// splitPKGINFOLine recognises a "key = value" line, tolerating extra
// whitespace around the "=" and around the value. Blank lines and
// comments starting with "#" are skipped.
func splitPKGINFOLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	idx := strings.Index(line, "=")
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}
