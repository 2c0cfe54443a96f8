// ABOUTME: ParamNormalizer turns raw home-route parameters into a RequestDescriptor
// ABOUTME: Decodes tool_id and version, and extracts parameters from home-route URLs
package core

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/harper/galaxy-nav/internal/models"
)

// Recognized parameter names
const (
	ParamToolID                  = "tool_id"
	ParamJobID                   = "job_id"
	ParamRerunID                 = "id"
	ParamVersion                 = "version"
	ParamWorkflowID              = "workflow_id"
	ParamController              = "m_c"
	ParamAction                  = "m_a"
	ParamSimplifiedWorkflowRunUI = "simplified_workflow_run_ui"
)

// ErrNotHomeRoute is returned for URLs whose path is not the analysis home route
var ErrNotHomeRoute = errors.New("not a home route")

// MalformedParameterError reports a parameter whose value could not be decoded
type MalformedParameterError struct {
	Param string
	Value string
	Err   error
}

func (e *MalformedParameterError) Error() string {
	return fmt.Sprintf("malformed parameter %s=%q: %v", e.Param, e.Value, e.Err)
}

func (e *MalformedParameterError) Unwrap() error {
	return e.Err
}

// Normalize builds a RequestDescriptor from raw parameters.
// tool_id and version are percent-decoded; everything else passes through.
func Normalize(params map[string]string) (models.RequestDescriptor, error) {
	toolID, err := decodeParam(params, ParamToolID)
	if err != nil {
		return models.RequestDescriptor{}, err
	}
	version, err := decodeParam(params, ParamVersion)
	if err != nil {
		return models.RequestDescriptor{}, err
	}

	return models.RequestDescriptor{
		ToolID:                  toolID,
		JobID:                   params[ParamJobID],
		RerunID:                 params[ParamRerunID],
		Version:                 version,
		WorkflowID:              params[ParamWorkflowID],
		Controller:              params[ParamController],
		Action:                  params[ParamAction],
		SimplifiedWorkflowRunUI: params[ParamSimplifiedWorkflowRunUI],
	}, nil
}

// decodeParam percent-decodes like decodeURIComponent: %XX sequences only, '+' is kept
func decodeParam(params map[string]string, name string) (string, error) {
	raw := params[name]
	if raw == "" {
		return "", nil
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", &MalformedParameterError{Param: name, Value: raw, Err: err}
	}
	if !utf8.ValidString(decoded) {
		return "", &MalformedParameterError{Param: name, Value: raw, Err: errors.New("invalid UTF-8")}
	}
	return decoded, nil
}

// recognizedParams are the keys whose values are kept even when their escapes are broken
var recognizedParams = map[string]bool{
	ParamToolID:                  true,
	ParamJobID:                   true,
	ParamRerunID:                 true,
	ParamVersion:                 true,
	ParamWorkflowID:              true,
	ParamController:              true,
	ParamAction:                  true,
	ParamSimplifiedWorkflowRunUI: true,
}

// ParamsFromURL extracts the query parameters of a home-route URL served under appRoot.
// Only the first value of a repeated key is kept. A recognized parameter whose value
// cannot be unescaped keeps its raw value; any other undecodable pair is dropped.
func ParamsFromURL(raw, appRoot string) (map[string]string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing url: %w", err)
	}
	path, ok := trimAppRoot(u.Path, appRoot)
	if !ok || !IsHomeRoute(path) {
		return nil, fmt.Errorf("%w: %s", ErrNotHomeRoute, u.Path)
	}

	params := make(map[string]string)
	for _, pair := range strings.Split(u.RawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			continue
		}
		if _, seen := params[key]; seen {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			if !recognizedParams[key] {
				continue
			}
			value = rawValue
		}
		params[key] = value
	}
	return params, nil
}

// trimAppRoot makes path relative to appRoot; ok is false when path lies outside it
func trimAppRoot(path, appRoot string) (string, bool) {
	root := "/" + strings.Trim(appRoot, "/")
	if root == "/" {
		return path, true
	}
	if path == root {
		return "/", true
	}
	if rest, found := strings.CutPrefix(path, root+"/"); found {
		return "/" + rest, true
	}
	return "", false
}

// IsHomeRoute matches the analysis entry points relative to the app root:
// "", "/", "/_=_" and any path starting with "/root"
func IsHomeRoute(path string) bool {
	path = strings.TrimPrefix(path, "/")
	return path == "" || path == "_=_" || strings.HasPrefix(path, "root")
}
