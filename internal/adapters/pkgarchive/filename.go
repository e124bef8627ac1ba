package pkgarchive

import (
	"strings"

	"go.trai.ch/zerr"
)

// knownArchiveExtensions lists every suffix stripArchiveExt recognises,
// longest first so a compound suffix like ".pkg.tar.gz" is stripped whole
// rather than leaving ".tar.gz" behind.
var knownArchiveExtensions = []string{
	".pkg.tar.gz", ".pkg.tar.bz2", ".pkg.tar.xz", ".pkg.tar.zst", ".pkg.tar",
	".tar.gz", ".tar.bz2", ".tar.xz", ".tar.zst",
	".tgz", ".tbz2", ".tbz", ".txz", ".tzst", ".tar",
}

func stripArchiveExt(filename string) string {
	for _, ext := range knownArchiveExtensions {
		if strings.HasSuffix(filename, ext) {
			return strings.TrimSuffix(filename, ext)
		}
	}
	return filename
}

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }

// guessNameVersion derives a package name and version from an archive
// filename when no .PKGINFO member is present, per the Arch
// ("name-version-rel-arch") and Slackware ("name-version-arch-build")
// naming conventions: the name is the run of leading "-"-separated tokens
// before the first token that begins with a digit (the first token always
// belongs to the name); the next token is the version; if the token after
// the version begins with a digit it is folded in as the Arch "rel",
// otherwise it is taken as the arch and the token after it is folded in as
// the Slackware "build".
func guessNameVersion(filename string) (name, version string, err error) {
	base := stripArchiveExt(filename)
	tokens := strings.Split(base, "-")
	if len(tokens) < 2 {
		return "", "", zerr.With(zerr.New("cannot guess package name/version from filename"), "filename", filename)
	}

	i := 0
	for i < len(tokens)-1 {
		if len(tokens[i]) > 0 && isDigitByte(tokens[i][0]) {
			break
		}
		if len(tokens[i+1]) > 0 && isDigitByte(tokens[i+1][0]) {
			i++
			break
		}
		i++
	}
	if i == 0 {
		i = 1
	}

	name = strings.Join(tokens[:i], "-")
	rest := tokens[i:]
	if len(rest) == 0 {
		return "", "", zerr.With(zerr.New("cannot guess package version from filename"), "filename", filename)
	}

	version = rest[0]
	if len(rest) > 1 {
		if len(rest[1]) > 0 && isDigitByte(rest[1][0]) {
			version = version + "-" + rest[1]
		} else if len(rest) > 2 {
			version = version + "-" + rest[2]
		}
	}
	return name, version, nil
}
