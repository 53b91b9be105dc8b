//go:build unix

package filesystem

import "golang.org/x/sys/unix"

// LinkCount returns the number of hard links referring to the inode at
// path. Used to verify that unchanged snapshot entries share storage
// with their base snapshot.
func (a *Adapter) LinkCount(path string) (uint64, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, err
	}
	return uint64(st.Nlink), nil // #nosec G115 -- Nlink is non-negative
}

// SameFile reports whether two paths refer to the same filesystem object
// (same device and inode).
func (a *Adapter) SameFile(pathA, pathB string) (bool, error) {
	var stA, stB unix.Stat_t
	if err := unix.Stat(pathA, &stA); err != nil {
		return false, err
	}
	if err := unix.Stat(pathB, &stB); err != nil {
		return false, err
	}
	return stA.Dev == stB.Dev && stA.Ino == stB.Ino, nil
}
