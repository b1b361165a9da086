package interfaces

import domaintypes "prismslink/internal/domain/types"

// UI is the collaborator that collects credentials and shows session state.
//
// Methods are called on the session's control flow; implementations that
// need to answer (for example with credentials) call back into the engine.
type UI interface {
	PromptLogin(errMsg string)
	PromptPasswordChange(user string, hashing domaintypes.Hashing, errMsg string)
	PromptValidation(hashing domaintypes.Hashing, failed bool)
	NotifyLoginSucceeded(user string)
	NotifyLoading()
	NotifyLoadedDone()
	NotifyAppLocked(message string)
	ReportError(message string)
	PerformDownload(event domaintypes.Event)
	PerformUpload(event domaintypes.Event)
	ReloadClient(message string)
}
