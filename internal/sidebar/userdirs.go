package sidebar

import "github.com/adrg/xdg"

// UserDirs returns the standard folders configured in user-dirs.dirs,
// keyed by the names used in Options.StandardDirs. The environment is read
// again on each call.
func UserDirs() map[string]string {
	xdg.Reload()
	return map[string]string{
		"Desktop":   xdg.UserDirs.Desktop,
		"Documents": xdg.UserDirs.Documents,
		"Downloads": xdg.UserDirs.Download,
		"Music":     xdg.UserDirs.Music,
		"Pictures":  xdg.UserDirs.Pictures,
		"Public":    xdg.UserDirs.PublicShare,
		"Templates": xdg.UserDirs.Templates,
		"Videos":    xdg.UserDirs.Videos,
	}
}
