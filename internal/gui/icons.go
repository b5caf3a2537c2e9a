//go:build !nogui

package gui

import (
	"strings"

	"casper/internal/format"
	"casper/internal/listing"
	"casper/internal/sidebar"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// entryIcon maps an entry's icon hint onto the fyne theme.
func entryIcon(e listing.Entry) fyne.Resource {
	hint := format.IconHint(e.IsDir(), "", e.Name)
	switch {
	case hint == format.IconFolder:
		return theme.FolderIcon()
	case hint == format.IconImage:
		return theme.FileImageIcon()
	case hint == format.IconAudio:
		return theme.FileAudioIcon()
	case hint == format.IconVideo:
		return theme.FileVideoIcon()
	case strings.HasPrefix(hint, "text-"):
		return theme.FileTextIcon()
	case strings.HasPrefix(hint, "application-"), strings.HasPrefix(hint, "package-"):
		return theme.FileApplicationIcon()
	case strings.HasPrefix(hint, "x-office-"):
		return theme.DocumentIcon()
	default:
		return theme.FileIcon()
	}
}

func sidebarIcon(item sidebar.Item) fyne.Resource {
	switch item.IconHint {
	case sidebar.IconHome:
		return theme.HomeIcon()
	case sidebar.IconTrash:
		return theme.DeleteIcon()
	case sidebar.IconDrive:
		return theme.StorageIcon()
	case "folder-documents-symbolic":
		return theme.DocumentIcon()
	case "folder-download-symbolic":
		return theme.DownloadIcon()
	case "folder-music-symbolic":
		return theme.MediaMusicIcon()
	case "folder-pictures-symbolic":
		return theme.MediaPhotoIcon()
	case "folder-videos-symbolic":
		return theme.MediaVideoIcon()
	case "user-desktop-symbolic":
		return theme.ComputerIcon()
	default:
		return theme.FolderIcon()
	}
}
