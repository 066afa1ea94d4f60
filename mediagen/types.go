// Package mediagen is the client for the remote media generation API:
// prompt enhancement, image generation, and asynchronous video generation
// with status polling and local download.
package mediagen

// Video job statuses reported by the remote API. Completed and failed are
// terminal; anything else keeps the poll loop running.
const (
	StatusSubmitted = "submitted"
	StatusPolling   = "polling"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ImageResult is the outcome of a successful image generation call.
type ImageResult struct {
	// URL points at the generated image.
	URL string
	// ID is the generation id the service issued, if any.
	ID string
}

// VideoJob tracks an asynchronous video generation task through polling.
type VideoJob struct {
	// ID is the job identifier issued by the remote service.
	ID string
	// Status is the last observed job status.
	Status string
	// URL points at the generated video once Status is completed.
	URL string
}

// Terminal reports whether the job reached a terminal status.
func (j *VideoJob) Terminal() bool {
	return j.Status == StatusCompleted || j.Status == StatusFailed
}

// --- wire types ---

type enhanceRequest struct {
	Prompt        string `json:"prompt"`
	EnhancePrompt bool   `json:"enhance_prompt"`
}

type enhanceResponse struct {
	Option1 string `json:"option_1"`
}

type imageRequest struct {
	Prompt        string `json:"prompt"`
	OutputFormat  string `json:"output_format"`
	AspectRatio   string `json:"aspect_ratio"`
	EnhancePrompt bool   `json:"enhance_prompt"`
}

type imageResponse struct {
	ID  string `json:"id,omitempty"`
	URL string `json:"url"`
}

type videoSubmitRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
}

type videoJobResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	URL    string `json:"url,omitempty"`
}
