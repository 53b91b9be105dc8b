//go:build !unix

package filesystem

import "os"

// LinkCount is unavailable without unix stat; callers fall back to
// content comparison.
func (a *Adapter) LinkCount(path string) (uint64, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, err
	}
	return 1, nil
}

// SameFile reports whether two paths refer to the same filesystem object.
func (a *Adapter) SameFile(pathA, pathB string) (bool, error) {
	infoA, err := os.Stat(pathA)
	if err != nil {
		return false, err
	}
	infoB, err := os.Stat(pathB)
	if err != nil {
		return false, err
	}
	return os.SameFile(infoA, infoB), nil
}
