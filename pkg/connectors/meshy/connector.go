// Package meshy is a thin connector for the Meshy AI 3D generation API:
// text-to-3D, image-to-3D, rigging, animation, and retexturing tasks.
package meshy

import (
	"context"
	"time"

	"github.com/jbcom/vendor-connectors/pkg/connector"
)

const (
	Name          = "meshy"
	Description   = "Meshy AI 3D generation: text-to-3D, image-to-3D, rigging, animation, and retexturing."
	CredentialEnv = "MESHY_API_KEY"

	baseURLEnv     = "MESHY_API_URL"
	defaultBaseURL = "https://api.meshy.ai"

	defaultPollInterval = 5 * time.Second
)

// Meshy task statuses.
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusSucceeded  = "SUCCEEDED"
	StatusFailed     = "FAILED"
	StatusCanceled   = "CANCELED"
)

// BaseURL returns the API base URL, honoring the MESHY_API_URL override.
func BaseURL() string {
	return connector.BaseURL(Name, baseURLEnv, defaultBaseURL)
}

// Connector wraps the Meshy task API. Generation runs asynchronously:
// each call submits a task and, when wait is set, polls until the task
// reaches a terminal status or ctx is done.
type Connector struct {
	client *connector.Client

	// PollInterval is the delay between task status checks.
	PollInterval time.Duration
}

// New creates a Meshy connector. An empty key falls back to MESHY_API_KEY.
func New(apiKey string, opts ...connector.ClientOption) (*Connector, error) {
	resolved, err := connector.Credential(Name, apiKey, CredentialEnv)
	if err != nil {
		return nil, err
	}

	headers := func(ctx context.Context) (map[string]string, error) {
		return map[string]string{"Authorization": "Bearer " + resolved}, nil
	}
	opts = append([]connector.ClientOption{connector.WithHeaderFunc(headers)}, opts...)
	return &Connector{
		client:       connector.NewClient(Name, BaseURL(), opts...),
		PollInterval: defaultPollInterval,
	}, nil
}

// Task is a Meshy generation task.
type Task struct {
	ID        string            `json:"id"`
	Status    string            `json:"status"`
	Progress  int               `json:"progress"`
	ModelURLs map[string]string `json:"model_urls,omitempty"`
	TaskError *TaskError        `json:"task_error,omitempty"`
}

// TaskError carries a failed task's message.
type TaskError struct {
	Message string `json:"message"`
}

// Terminal reports whether the task has finished, successfully or not.
func (t *Task) Terminal() bool {
	return t.Status == StatusSucceeded || t.Status == StatusFailed || t.Status == StatusCanceled
}

// Text3DRequest holds the inputs for Text3DGenerate.
type Text3DRequest struct {
	Prompt          string
	ArtStyle        string
	NegativePrompt  string
	TargetPolycount int
	EnablePBR       bool
	Wait            bool
}

// Text3DGenerate submits a text-to-3D preview task.
func (c *Connector) Text3DGenerate(ctx context.Context, req Text3DRequest) (*Task, error) {
	if req.Prompt == "" {
		return nil, connector.ValidationError(Name, "prompt is required")
	}
	if req.ArtStyle == "" {
		req.ArtStyle = "realistic"
	}
	if req.TargetPolycount <= 0 {
		req.TargetPolycount = 30000
	}

	body := map[string]any{
		"mode":             "preview",
		"prompt":           req.Prompt,
		"art_style":        req.ArtStyle,
		"target_polycount": req.TargetPolycount,
		"enable_pbr":       req.EnablePBR,
	}
	if req.NegativePrompt != "" {
		body["negative_prompt"] = req.NegativePrompt
	}
	return c.submit(ctx, "/openapi/v2/text-to-3d", body, req.Wait)
}

// Image3DRequest holds the inputs for Image3DGenerate.
type Image3DRequest struct {
	ImageURL        string
	Topology        string
	TargetPolycount int
	EnablePBR       bool
	Wait            bool
}

// Image3DGenerate submits an image-to-3D task.
func (c *Connector) Image3DGenerate(ctx context.Context, req Image3DRequest) (*Task, error) {
	if req.ImageURL == "" {
		return nil, connector.ValidationError(Name, "image_url is required")
	}
	if req.Topology == "" {
		req.Topology = "triangle"
	}
	if req.TargetPolycount <= 0 {
		req.TargetPolycount = 15000
	}

	body := map[string]any{
		"image_url":        req.ImageURL,
		"topology":         req.Topology,
		"target_polycount": req.TargetPolycount,
		"enable_pbr":       req.EnablePBR,
	}
	return c.submit(ctx, "/openapi/v1/image-to-3d", body, req.Wait)
}

// RigModel submits a rigging task for a generated model.
func (c *Connector) RigModel(ctx context.Context, modelID string, wait bool) (*Task, error) {
	if modelID == "" {
		return nil, connector.ValidationError(Name, "model_id is required")
	}
	return c.submit(ctx, "/openapi/v1/rigging", map[string]any{"input_task_id": modelID}, wait)
}

// ApplyAnimation applies a library animation to a rigged model.
func (c *Connector) ApplyAnimation(ctx context.Context, modelID string, animationID int, wait bool) (*Task, error) {
	if modelID == "" {
		return nil, connector.ValidationError(Name, "model_id is required")
	}
	body := map[string]any{
		"input_task_id": modelID,
		"animation_id":  animationID,
	}
	return c.submit(ctx, "/openapi/v1/animations", body, wait)
}

// RetextureModel applies new textures to an existing model from a text
// prompt.
func (c *Connector) RetextureModel(ctx context.Context, modelID, texturePrompt string, enablePBR, wait bool) (*Task, error) {
	if modelID == "" || texturePrompt == "" {
		return nil, connector.ValidationError(Name, "model_id and texture_prompt are required")
	}
	body := map[string]any{
		"input_task_id": modelID,
		"text_prompt":   texturePrompt,
		"enable_pbr":    enablePBR,
	}
	return c.submit(ctx, "/openapi/v1/retexture", body, wait)
}

// submit posts a task and optionally polls it to completion. The task
// endpoints all share the submit/poll shape: POST returns {"result": id},
// GET <path>/<id> returns the task.
func (c *Connector) submit(ctx context.Context, path string, body map[string]any, wait bool) (*Task, error) {
	var created struct {
		Result string `json:"result"`
	}
	if err := c.client.Post(ctx, path, body, &created); err != nil {
		return nil, err
	}
	if created.Result == "" {
		return nil, connector.NewError(Name, connector.TypeProvider, "task submission returned no id")
	}

	task, err := c.getTask(ctx, path, created.Result)
	if err != nil {
		return nil, err
	}
	if !wait {
		return task, nil
	}

	for !task.Terminal() {
		select {
		case <-ctx.Done():
			return nil, connector.NewError(Name, connector.TypeNetwork, ctx.Err().Error())
		case <-time.After(c.PollInterval):
		}
		task, err = c.getTask(ctx, path, created.Result)
		if err != nil {
			return nil, err
		}
	}

	if task.Status == StatusFailed && task.TaskError != nil {
		return task, connector.NewError(Name, connector.TypeProvider, task.TaskError.Message)
	}
	return task, nil
}

func (c *Connector) getTask(ctx context.Context, path, id string) (*Task, error) {
	var task Task
	if err := c.client.Get(ctx, path+"/"+id, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}
