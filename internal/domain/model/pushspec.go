package model

// PushSpec is one unit of local-to-remote push work: the content at
// LocalPath is pushed to Branch on RemoteURL.
type PushSpec struct {
	LocalPath string
	RemoteURL string
	Branch    string
}
