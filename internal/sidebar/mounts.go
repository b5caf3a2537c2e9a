package sidebar

import (
	"path/filepath"
	"sort"
	"strings"

	"casper/internal/errors"

	"github.com/shirou/gopsutil/v4/disk"
)

// Mount is a mounted volume.
type Mount struct {
	Name   string
	Path   string
	FSType string
	Free   uint64
}

// MountSource lists the volumes worth showing.
type MountSource interface {
	Mounts() ([]Mount, error)
}

// DefaultSkipFSTypes are pseudo filesystems never shown.
var DefaultSkipFSTypes = []string{"squashfs", "tmpfs", "devtmpfs", "overlay", "proc", "sysfs"}

// userMountRoots hold the mounts a desktop shows as volumes.
var userMountRoots = []string{"/media/", "/mnt/", "/run/media/", "/Volumes/"}

// SystemMounts reads the mount table through gopsutil.
type SystemMounts struct {
	SkipFSTypes []string
}

// Mounts returns user-visible volumes sorted by mount point.
func (s SystemMounts) Mounts() ([]Mount, error) {
	partitions, err := disk.Partitions(false)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get disk partitions")
	}

	skip := make(map[string]bool, len(s.SkipFSTypes))
	for _, fs := range s.SkipFSTypes {
		skip[fs] = true
	}

	seen := make(map[string]bool)
	var mounts []Mount
	for _, p := range partitions {
		if skip[p.Fstype] || seen[p.Mountpoint] || !IsUserMount(p.Mountpoint) {
			continue
		}
		seen[p.Mountpoint] = true

		m := Mount{
			Name:   filepath.Base(p.Mountpoint),
			Path:   p.Mountpoint,
			FSType: p.Fstype,
		}
		if usage, err := disk.Usage(p.Mountpoint); err == nil {
			m.Free = usage.Free
		}
		mounts = append(mounts, m)
	}

	sort.Slice(mounts, func(i, j int) bool {
		return mounts[i].Path < mounts[j].Path
	})
	return mounts, nil
}

// IsUserMount reports whether a mount point lives where removable and
// user-mounted volumes go.
func IsUserMount(mountpoint string) bool {
	for _, root := range userMountRoots {
		if strings.HasPrefix(mountpoint, root) && len(mountpoint) > len(root) {
			return true
		}
	}
	return false
}
