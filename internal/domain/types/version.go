package types

// VersionInfo is the application version reported by setVersion.
type VersionInfo struct {
	Version  []int64 `json:"version"`
	Modified int64   `json:"modified"`
}
