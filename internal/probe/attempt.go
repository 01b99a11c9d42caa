package probe

// Prompt is sent unchanged on every attempt.
const Prompt = "Explain how the Nigerian legal system works in one sentence."

// Attempt is a model identifier plus an optional API version override.
// An empty APIVersion means the client's default version.
type Attempt struct {
	Model      string
	APIVersion string
}

var (
	// PrimaryAttempt is the preferred model/version pair.
	PrimaryAttempt = Attempt{Model: "gemini-1.5-flash-001", APIVersion: "v1"}

	// FallbackAttempt is tried only after PrimaryAttempt fails.
	FallbackAttempt = Attempt{Model: "gemini-pro"}
)

// UsesDefaultVersion reports whether the attempt leaves the API version to the client.
func (a Attempt) UsesDefaultVersion() bool {
	return a.APIVersion == ""
}

// VersionLabel is the version as shown in console output.
func (a Attempt) VersionLabel() string {
	if a.UsesDefaultVersion() {
		return "default"
	}
	return a.APIVersion
}

// Label names the attempt in result headers and error lines,
// e.g. "gemini-1.5-flash-001 (v1)" or "gemini-pro (default API version)".
func (a Attempt) Label() string {
	if a.UsesDefaultVersion() {
		return a.Model + " (default API version)"
	}
	return a.Model + " (" + a.APIVersion + ")"
}
