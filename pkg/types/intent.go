package types

// Intent is a user request coming from any front end.
type Intent int

const (
	IntentBack Intent = iota
	IntentForward
	IntentUp
	IntentRefresh
	IntentNavigatePath    // arg: typed path
	IntentActivateEntry   // arg: entry name
	IntentActivateSidebar // arg: sidebar row index
	IntentSelectEntry     // arg: entry name
	IntentToggleView
	IntentOpen
	IntentOpenWith
	IntentCut
	IntentCopy
	IntentPaste
	IntentMoveTo
	IntentDelete
)

var intentNames = [...]string{
	IntentBack:            "back",
	IntentForward:         "forward",
	IntentUp:              "up",
	IntentRefresh:         "refresh",
	IntentNavigatePath:    "navigate-path",
	IntentActivateEntry:   "activate-entry",
	IntentActivateSidebar: "activate-sidebar",
	IntentSelectEntry:     "select-entry",
	IntentToggleView:      "toggle-view",
	IntentOpen:            "open",
	IntentOpenWith:        "open-with",
	IntentCut:             "cut",
	IntentCopy:            "copy",
	IntentPaste:           "paste",
	IntentMoveTo:          "move-to",
	IntentDelete:          "delete",
}

func (i Intent) String() string {
	if i >= 0 && int(i) < len(intentNames) {
		return intentNames[i]
	}
	return "unknown"
}
