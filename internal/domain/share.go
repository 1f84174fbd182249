package domain

// SharedState is the snapshot embedded in a share link. It exists only to
// produce or consume a token and is never persisted on its own.
type SharedState struct {
	Tab       Kind          `json:"tab"`
	Options   PromptOptions `json:"options"`
	Model     string        `json:"model"`
	Generated string        `json:"generated,omitempty"`
	Enhanced  string        `json:"enhanced,omitempty"`
}
