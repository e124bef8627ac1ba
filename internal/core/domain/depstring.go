package domain

import "strings"

// versionOperators lists the recognised dependency version operators,
// longest first so that e.g. ">=" is matched before ">".
var versionOperators = []string{">=", "<=", "!=", "=", ">", "<"}

// SplitDepString splits a dependency/provide/replace/conflict expression
// of the form "name<op>version" into its name, operator and version parts.
// An expression with no recognised operator returns ("", "") for op/ver.
func SplitDepString(expr string) (name, op, ver string) {
	for _, candidate := range versionOperators {
		if idx := strings.Index(expr, candidate); idx >= 0 {
			return expr[:idx], candidate, expr[idx+len(candidate):]
		}
	}
	return expr, "", ""
}

// StripVersion returns expr with any trailing version-operator clause
// removed, leaving just the bare name.
func StripVersion(expr string) string {
	name, _, _ := SplitDepString(expr)
	return name
}
