package engine

import (
	"sort"
	"strconv"

	"github.com/Acidburn0zzz/pkgdepdb/internal/core/domain"
)

// All mutations in this file only touch the rule stores; none of them
// re-derive req_found/req_missing. Callers must run RelinkAll afterwards
// for the graph to reflect a rule change — the engine never auto-relinks.

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func insertAt(list []string, index int, path string) []string {
	if index > len(list) {
		index = len(list)
	}
	if index < 0 {
		index = 0
	}
	list = append(list, "")
	copy(list[index+1:], list[index:])
	list[index] = path
	return list
}

func moveOrInsert(list []string, index int, path string) ([]string, bool) {
	if index < 0 {
		index = 0
	}
	if index > len(list) {
		index = len(list)
	}
	cur := indexOf(list, path)
	if cur == index {
		return list, false
	}
	if cur >= 0 {
		list = append(list[:cur], list[cur+1:]...)
		if cur < index {
			index--
		}
		if index > len(list) {
			index = len(list)
		}
	}
	return insertAt(list, index, path), true
}

func deleteAt(list []string, index int) ([]string, bool) {
	if index < 0 || index >= len(list) {
		return list, false
	}
	return append(list[:index], list[index+1:]...), true
}

func deleteByIndexOrValue(list []string, spec string) ([]string, bool) {
	if idx, err := strconv.Atoi(spec); err == nil {
		return deleteAt(list, idx)
	}
	idx := indexOf(list, spec)
	if idx < 0 {
		return list, false
	}
	return deleteAt(list, idx)
}

// LibraryPathInsert inserts or moves path to index in the DB's global
// library_path list. Inserting a path already present at a different index
// is a move, not a duplicate; re-inserting at its current index is a no-op
// and returns false.
func LibraryPathInsert(db *domain.DB, index int, path string) bool {
	path = domain.NormalizePath(path)
	list, changed := moveOrInsert(db.LibraryPath, index, path)
	db.LibraryPath = list
	return changed
}

// LibraryPathDelete removes an entry from the global library_path list. A
// spec that parses as an integer is treated as an index; otherwise it is
// matched against the normalised path value.
func LibraryPathDelete(db *domain.DB, spec string) bool {
	if idx, err := strconv.Atoi(spec); err == nil {
		list, ok := deleteAt(db.LibraryPath, idx)
		db.LibraryPath = list
		return ok
	}
	list, ok := deleteByIndexOrValue(db.LibraryPath, domain.NormalizePath(spec))
	db.LibraryPath = list
	return ok
}

// PackageLibraryPathInsert inserts or moves path to index in pkgName's
// per-package library path list.
func PackageLibraryPathInsert(db *domain.DB, pkgName string, index int, path string) bool {
	path = domain.NormalizePath(path)
	list, changed := moveOrInsert(db.PackageLibraryPath[pkgName], index, path)
	if changed {
		db.PackageLibraryPath[pkgName] = list
	}
	return changed
}

// PackageLibraryPathDelete removes an entry from pkgName's per-package
// library path list, auto-deleting the map entry entirely once it becomes
// empty.
func PackageLibraryPathDelete(db *domain.DB, pkgName, spec string) bool {
	list, ok := deleteByIndexOrValue(db.PackageLibraryPath[pkgName], spec)
	if !ok {
		return false
	}
	if len(list) == 0 {
		delete(db.PackageLibraryPath, pkgName)
	} else {
		db.PackageLibraryPath[pkgName] = list
	}
	return true
}

// sortedKeys returns the deterministic, user-visible enumeration order for
// a rule set stored as a map: lexicographic.
func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IgnoreFileRuleAdd adds path to the ignore-file rule set. Returns false if
// it was already present.
func IgnoreFileRuleAdd(db *domain.DB, path string) bool {
	path = domain.NormalizePath(path)
	if _, ok := db.IgnoreFileRules[path]; ok {
		return false
	}
	db.IgnoreFileRules[path] = struct{}{}
	return true
}

// IgnoreFileRuleRemove removes path from the ignore-file rule set.
func IgnoreFileRuleRemove(db *domain.DB, path string) bool {
	path = domain.NormalizePath(path)
	if _, ok := db.IgnoreFileRules[path]; !ok {
		return false
	}
	delete(db.IgnoreFileRules, path)
	return true
}

// IgnoreFileRuleRemoveAt removes the entry at the given index in the
// sorted, user-visible enumeration of the ignore-file rule set.
func IgnoreFileRuleRemoveAt(db *domain.DB, index int) bool {
	keys := sortedKeys(db.IgnoreFileRules)
	if index < 0 || index >= len(keys) {
		return false
	}
	delete(db.IgnoreFileRules, keys[index])
	return true
}

// AssumeFoundRuleAdd adds soname to the assume-found rule set. Returns
// false if it was already present.
func AssumeFoundRuleAdd(db *domain.DB, soname string) bool {
	if _, ok := db.AssumeFoundRules[soname]; ok {
		return false
	}
	db.AssumeFoundRules[soname] = struct{}{}
	return true
}

// AssumeFoundRuleRemove removes soname from the assume-found rule set.
func AssumeFoundRuleRemove(db *domain.DB, soname string) bool {
	if _, ok := db.AssumeFoundRules[soname]; !ok {
		return false
	}
	delete(db.AssumeFoundRules, soname)
	return true
}

// AssumeFoundRuleRemoveAt removes the entry at the given index in the
// sorted, user-visible enumeration of the assume-found rule set.
func AssumeFoundRuleRemoveAt(db *domain.DB, index int) bool {
	keys := sortedKeys(db.AssumeFoundRules)
	if index < 0 || index >= len(keys) {
		return false
	}
	delete(db.AssumeFoundRules, keys[index])
	return true
}

// BasePackageAdd adds name to the base-packages seed set. Returns false if
// it was already present.
func BasePackageAdd(db *domain.DB, name string) bool {
	if db.IsBasePackage(name) {
		return false
	}
	db.BasePackages = append(db.BasePackages, name)
	return true
}

// BasePackageRemove removes name from the base-packages seed set.
func BasePackageRemove(db *domain.DB, name string) bool {
	for i, n := range db.BasePackages {
		if n == name {
			db.BasePackages = append(db.BasePackages[:i], db.BasePackages[i+1:]...)
			return true
		}
	}
	return false
}

// BasePackageRemoveAt removes the entry at the given index in
// db.BasePackages' insertion-order enumeration.
func BasePackageRemoveAt(db *domain.DB, index int) bool {
	list, ok := deleteAt(db.BasePackages, index)
	db.BasePackages = list
	return ok
}
