package expand

import (
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// Resolve turns a directive argument into a canonical document identity,
// interpreted relative to base (the directory of the containing document).
//
// Resolution is deterministic: the same argument against the same base
// always yields the same identity, so identity equality is reliable for
// cycle checks. The result is lexically cleaned and NFC-normalized;
// filesystems that hand back decomposed Unicode (macOS) would otherwise
// make the same document appear under two identities.
func Resolve(arg, base string) string {
	var id string
	if filepath.IsAbs(arg) {
		id = filepath.Clean(arg)
	} else {
		id = filepath.Join(base, arg)
	}
	return norm.NFC.String(id)
}

// BaseDir returns the directory of a document identity, for use as the
// base of the identities it references.
func BaseDir(id string) string {
	return filepath.Dir(id)
}
