package fsys

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"casper/internal/errors"
	"casper/internal/location"
	"casper/internal/log"

	"github.com/otiai10/copy"
)

// Home trash layout from the freedesktop.org Trash specification.
const (
	trashInfoExt    = ".trashinfo"
	trashDateLayout = "2006-01-02T15:04:05"
)

// TrashDir returns the root of the home trash.
func (l *Local) TrashDir() string {
	return filepath.Join(l.dataHome, "Trash")
}

func (l *Local) trashFiles() string {
	return filepath.Join(l.TrashDir(), "files")
}

func (l *Local) trashInfo() string {
	return filepath.Join(l.TrashDir(), "info")
}

// Trash moves loc into the home trash and records where it came from.
func (l *Local) Trash(loc location.Location) error {
	if loc.IsVirtual() {
		return errors.NewFileError("cannot trash an item that is already in the trash", loc.URI(), errors.FileOperationFailed, nil)
	}
	src, err := l.resolve(loc)
	if err != nil {
		return err
	}
	if _, err := os.Lstat(src); err != nil {
		return fileError("cannot trash", src, err)
	}

	for _, dir := range []string{l.trashFiles(), l.trashInfo()} {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fileError("cannot create trash directory", dir, err)
		}
	}

	name, infoPath, err := l.reserveTrashName(filepath.Base(src), src)
	if err != nil {
		return err
	}
	dst := filepath.Join(l.trashFiles(), name)

	err = os.Rename(src, dst)
	if err != nil && isCrossDevice(err) {
		if err = copy.Copy(src, dst, copyOptions()); err == nil {
			err = os.RemoveAll(src)
		}
	}
	if err != nil {
		_ = os.Remove(infoPath)
		return fileError("cannot trash", src, err)
	}

	log.LogWithFields(log.F("path", src), log.F("trash_name", name)).Info("moved to trash")
	return nil
}

// reserveTrashName claims a free name by creating its .trashinfo file
// exclusively. Collisions get a numeric suffix before the extension.
func (l *Local) reserveTrashName(base, original string) (string, string, error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		stem, ext = base, ""
	}

	info := trashInfoContent(original, time.Now())
	for i := 1; i < 10000; i++ {
		name := base
		if i > 1 {
			name = fmt.Sprintf("%s.%d%s", stem, i, ext)
		}
		infoPath := filepath.Join(l.trashInfo(), name+trashInfoExt)
		f, err := os.OpenFile(infoPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", "", fileError("cannot write trash info", infoPath, err)
		}
		_, err = f.WriteString(info)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(infoPath)
			return "", "", fileError("cannot write trash info", infoPath, err)
		}
		if _, err := os.Lstat(filepath.Join(l.trashFiles(), name)); err == nil {
			// orphaned file without an info entry
			_ = os.Remove(infoPath)
			continue
		}
		return name, infoPath, nil
	}
	return "", "", errors.NewFileError("no free name in trash", base, errors.FileOperationFailed, nil)
}

func trashInfoContent(original string, at time.Time) string {
	u := url.URL{Path: original}
	return fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n", u.EscapedPath(), at.Format(trashDateLayout))
}

// TrashedFrom returns the original path recorded for a top-level trash item.
func (l *Local) TrashedFrom(loc location.Location) (string, error) {
	infoPath := filepath.Join(l.trashInfo(), loc.Base()+trashInfoExt)
	data, err := os.ReadFile(infoPath)
	if err != nil {
		return "", fileError("cannot read trash info", infoPath, err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		if v, ok := strings.CutPrefix(strings.TrimSpace(line), "Path="); ok {
			p, err := url.PathUnescape(v)
			if err != nil {
				return "", errors.NewFileError("malformed trash info", infoPath, errors.FileOperationFailed, err)
			}
			return p, nil
		}
	}
	return "", errors.NewFileError("malformed trash info", infoPath, errors.FileOperationFailed, nil)
}

// forgetTrashed drops the info file of an item moved out of the trash.
func (l *Local) forgetTrashed(loc location.Location) {
	if parent, ok := loc.Parent(); !ok || parent != location.Trash {
		return
	}
	infoPath := filepath.Join(l.trashInfo(), loc.Base()+trashInfoExt)
	if err := os.Remove(infoPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.LogWithFields(log.F("path", infoPath)).Warnf("cannot remove trash info: %v", err)
	}
}
