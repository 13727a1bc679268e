package meshy

import (
	"context"

	"github.com/jbcom/vendor-connectors/pkg/agent"
	"github.com/jbcom/vendor-connectors/pkg/tools"
)

// Definitions returns the Meshy tool table. The API key comes from
// MESHY_API_KEY.
func Definitions() []tools.Definition {
	return []tools.Definition{
		{
			Name:        "meshy_text3d_generate",
			Description: "Generate a 3D model from a text description using Meshy AI.",
			InputSchema: tools.Object(
				tools.String("prompt", "Text description of the model to generate"),
				tools.StringOpt("art_style", "Art style: realistic, sculpture, or cartoon", "realistic"),
				tools.StringOpt("negative_prompt", "Features to avoid in the generated model", ""),
				tools.IntOpt("target_polycount", "Target polygon count", 30000),
				tools.BoolOpt("enable_pbr", "Generate PBR texture maps", true),
				tools.BoolOpt("wait", "Wait for the task to finish before returning", true),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("")
				if err != nil {
					return nil, err
				}
				return c.Text3DGenerate(ctx, Text3DRequest{
					Prompt:          tools.ArgString(args, "prompt"),
					ArtStyle:        tools.ArgString(args, "art_style"),
					NegativePrompt:  tools.ArgString(args, "negative_prompt"),
					TargetPolycount: tools.ArgInt(args, "target_polycount", 30000),
					EnablePBR:       tools.ArgBool(args, "enable_pbr"),
					Wait:            tools.ArgBool(args, "wait"),
				})
			},
		},
		{
			Name:        "meshy_image3d_generate",
			Description: "Generate a 3D model from an image using Meshy AI.",
			InputSchema: tools.Object(
				tools.String("image_url", "URL of the source image"),
				tools.StringOpt("topology", "Mesh topology: triangle or quad", "triangle"),
				tools.IntOpt("target_polycount", "Target polygon count", 15000),
				tools.BoolOpt("enable_pbr", "Generate PBR texture maps", true),
				tools.BoolOpt("wait", "Wait for the task to finish before returning", true),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("")
				if err != nil {
					return nil, err
				}
				return c.Image3DGenerate(ctx, Image3DRequest{
					ImageURL:        tools.ArgString(args, "image_url"),
					Topology:        tools.ArgString(args, "topology"),
					TargetPolycount: tools.ArgInt(args, "target_polycount", 15000),
					EnablePBR:       tools.ArgBool(args, "enable_pbr"),
					Wait:            tools.ArgBool(args, "wait"),
				})
			},
		},
		{
			Name:        "meshy_rig_model",
			Description: "Add a skeleton/rig to a static 3D model.",
			InputSchema: tools.Object(
				tools.String("model_id", "ID of the generated model task"),
				tools.BoolOpt("wait", "Wait for the task to finish before returning", true),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("")
				if err != nil {
					return nil, err
				}
				return c.RigModel(ctx, tools.ArgString(args, "model_id"), tools.ArgBool(args, "wait"))
			},
		},
		{
			Name:        "meshy_apply_animation",
			Description: "Apply a library animation to a rigged model.",
			InputSchema: tools.Object(
				tools.String("model_id", "ID of the rigged model task"),
				tools.Int("animation_id", "Library animation ID to apply"),
				tools.BoolOpt("wait", "Wait for the task to finish before returning", true),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("")
				if err != nil {
					return nil, err
				}
				return c.ApplyAnimation(ctx,
					tools.ArgString(args, "model_id"),
					tools.ArgInt(args, "animation_id", 0),
					tools.ArgBool(args, "wait"))
			},
		},
		{
			Name:        "meshy_retexture_model",
			Description: "Apply new textures to an existing model from a text prompt.",
			InputSchema: tools.Object(
				tools.String("model_id", "ID of the model task to retexture"),
				tools.String("texture_prompt", "Text description of the desired textures"),
				tools.BoolOpt("enable_pbr", "Generate PBR texture maps", true),
				tools.BoolOpt("wait", "Wait for the task to finish before returning", true),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("")
				if err != nil {
					return nil, err
				}
				return c.RetextureModel(ctx,
					tools.ArgString(args, "model_id"),
					tools.ArgString(args, "texture_prompt"),
					tools.ArgBool(args, "enable_pbr"),
					tools.ArgBool(args, "wait"))
			},
		},
	}
}

// Tools returns the Meshy tool table in the requested framework's form.
func Tools(framework string) ([]any, error) {
	return agent.Tools(framework, Definitions())
}
