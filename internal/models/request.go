// ABOUTME: RequestDescriptor is the typed form of the home route's query parameters
// ABOUTME: Built once per navigation event by the normalizer and never mutated
package models

// UploadToolID is the tool id that opens the upload dialog instead of a tool form
const UploadToolID = "upload1"

// RequestDescriptor holds the recognized home-route parameters.
// An empty string means the parameter was absent.
type RequestDescriptor struct {
	ToolID     string `json:"tool_id,omitempty"`
	JobID      string `json:"job_id,omitempty"`
	RerunID    string `json:"id,omitempty"`
	Version    string `json:"version,omitempty"`
	WorkflowID string `json:"workflow_id,omitempty"`
	Controller string `json:"m_c,omitempty"`
	Action     string `json:"m_a,omitempty"`

	// SimplifiedWorkflowRunUI is the query-string override for the workflow run form
	SimplifiedWorkflowRunUI string `json:"simplified_workflow_run_ui,omitempty"`
}

// IsUpload reports whether the request targets the upload tool
func (r RequestDescriptor) IsUpload() bool {
	return r.ToolID == UploadToolID
}

// HasRerunProbe reports whether both a job id and a rerun target id are present
func (r RequestDescriptor) HasRerunProbe() bool {
	return r.JobID != "" && r.RerunID != ""
}

// IsEmpty reports whether no recognized parameter was given
func (r RequestDescriptor) IsEmpty() bool {
	return r == RequestDescriptor{}
}
