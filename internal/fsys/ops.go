package fsys

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"casper/internal/errors"
	"casper/internal/location"
	"casper/internal/log"

	"github.com/gabriel-vasile/mimetype"
	"github.com/otiai10/copy"
)

// DirectoryContentType is reported for directories.
const DirectoryContentType = "inode/directory"

// QueryContentType sniffs the content type of loc. Parameters such as
// "; charset=utf-8" are stripped.
func (l *Local) QueryContentType(loc location.Location) (string, error) {
	p, err := l.resolve(loc)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(p)
	if err != nil {
		return "", fileError("cannot query content type", p, err)
	}
	if info.IsDir() {
		return DirectoryContentType, nil
	}

	mt, err := mimetype.DetectFile(p)
	if err != nil {
		return "", fileError("cannot detect content type", p, err)
	}
	return baseType(mt.String()), nil
}

func baseType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.TrimSpace(contentType)
}

// Move renames src to dst, copying across devices when needed. dst must not
// exist.
func (l *Local) Move(src, dst location.Location) error {
	from, to, err := l.resolvePair(src, dst)
	if err != nil {
		return err
	}

	err = os.Rename(from, to)
	if err != nil && isCrossDevice(err) {
		log.LogWithFields(log.F("src", from), log.F("dst", to)).Debug("cross-device move, copying")
		if err = copy.Copy(from, to, copyOptions()); err == nil {
			err = os.RemoveAll(from)
		}
	}
	if err != nil {
		return fileError("cannot move", from, err)
	}

	if src.Scheme() == location.SchemeTrash {
		l.forgetTrashed(src)
	}
	log.LogWithFields(log.F("src", from), log.F("dst", to)).Info("moved")
	return nil
}

// Copy copies src, recursively for directories, to dst. dst must not exist.
func (l *Local) Copy(src, dst location.Location) error {
	from, to, err := l.resolvePair(src, dst)
	if err != nil {
		return err
	}
	if err := copy.Copy(from, to, copyOptions()); err != nil {
		return fileError("cannot copy", from, err)
	}
	log.LogWithFields(log.F("src", from), log.F("dst", to)).Info("copied")
	return nil
}

func copyOptions() copy.Options {
	return copy.Options{
		OnSymlink: func(string) copy.SymlinkAction {
			return copy.Shallow
		},
		PreserveTimes: true,
	}
}

func (l *Local) resolvePair(src, dst location.Location) (string, string, error) {
	from, err := l.resolve(src)
	if err != nil {
		return "", "", err
	}
	to, err := l.resolve(dst)
	if err != nil {
		return "", "", err
	}
	if _, err := os.Lstat(from); err != nil {
		return "", "", fileError("source unavailable", from, err)
	}
	if _, err := os.Lstat(to); err == nil {
		return "", "", errors.NewFileError("destination already exists", to, errors.FileOperationFailed, nil)
	}
	if from == to || strings.HasPrefix(to, from+string(filepath.Separator)) {
		return "", "", errors.NewFileError("cannot move or copy a folder into itself", to, errors.InvalidPath, nil)
	}
	return from, to, nil
}

// LaunchDefault opens loc with the desktop's default application.
func (l *Local) LaunchDefault(loc location.Location) error {
	p, err := l.resolve(loc)
	if err != nil {
		return err
	}
	if _, err := os.Stat(p); err != nil {
		return fileError("cannot open", p, err)
	}
	return start(exec.Command(l.opener, p), p)
}

// start runs cmd without waiting for it to finish.
func start(cmd *exec.Cmd, path string) error {
	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return errors.NewFileError("no application available", path, errors.NoApplication, err)
		}
		return errors.NewFileError("cannot launch application", path, errors.FileOperationFailed, err)
	}
	log.LogWithFields(log.F("path", path), log.F("command", cmd.Path)).Info("launched")
	go func() {
		if err := cmd.Wait(); err != nil {
			log.LogWithFields(log.F("path", path), log.F("command", cmd.Path)).Debugf("launcher exited: %v", err)
		}
	}()
	return nil
}
