package cmd

import (
	"fmt"

	"github.com/akash518/notegenerator/internal/config"
	"github.com/akash518/notegenerator/internal/transcribe"
)

// buildBackend constructs the recognition backend selected by name,
// applying the optional size-ceiling override to its profile.
func buildBackend(cfg *config.Config, name, model string, maxSizeMB int) (transcribe.Backend, error) {
	switch name {
	case "cloud":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key not set; add OPENAI_API_KEY to your environment or a .env file")
		}
		if model == "" {
			model = cfg.CloudModel
		}
		profile := transcribe.DefaultCloudProfile(model)
		if maxSizeMB > 0 {
			profile.MaxFileSizeMB = maxSizeMB
		}
		return transcribe.NewCloudBackend(cfg.APIKey, model, profile), nil

	case "local":
		if model == "" {
			model = cfg.LocalModel
		}
		profile := transcribe.DefaultLocalProfile()
		if maxSizeMB > 0 {
			profile.MaxFileSizeMB = maxSizeMB
		}
		return transcribe.NewLocalBackend(model, profile), nil
	}
	return nil, fmt.Errorf("unknown backend %q (valid: cloud, local)", name)
}
