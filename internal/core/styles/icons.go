package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

// Notification icons
var (
	IconNotifySuccess = "" // nf-fa-check_circle
	IconNotifyError   = "" // nf-fa-times_circle
	IconNotifyWarning = "" // nf-fa-warning
	IconNotifyInfo    = "" // nf-fa-info_circle
	IconClose         = "" // nf-fa-close
)
