//go:build !unix

package fsys

func isNotDir(error) bool {
	return false
}

func isCrossDevice(error) bool {
	return false
}
