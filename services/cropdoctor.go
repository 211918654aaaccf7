package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"farmniti/config"
	"farmniti/models"

	"google.golang.org/genai"
)

const cropDoctorModel = "gemini-2.5-flash"

var geminiClient *genai.Client

// InitCropDoctorService creates the Gemini client used for crop advisories
func InitCropDoctorService(cfg *config.Config) error {
	clientConfig := &genai.ClientConfig{}
	if cfg.Gemini.ApiKey != "" {
		clientConfig.APIKey = cfg.Gemini.ApiKey
	}
	client, err := genai.NewClient(context.Background(), clientConfig)
	if err != nil {
		return err
	}
	geminiClient = client
	return nil
}

// DiagnoseCrop asks the model for a structured diagnosis of the reported
// symptoms and returns it as a CropDiagnosis
func DiagnoseCrop(ctx context.Context, crop, symptoms string) (models.CropDiagnosis, error) {
	if geminiClient == nil {
		return models.CropDiagnosis{}, errors.New("gemini client not initialized")
	}

	prompt := fmt.Sprintf(
		`Act as an agricultural extension officer. A farmer growing "%s" reports these symptoms: "%s".
Identify the most likely disease or deficiency and give practical, low-cost guidance suited to smallholder farms.

Required Output Format (JSON):
{
  "disease": "name of the disease or deficiency",
  "severity": "low | medium | high",
  "treatment": ["step 1", "step 2"],
  "prevention": ["step 1", "step 2"]
}

Provide ONLY the JSON output without additional text or markdown formatting.`,
		crop, symptoms,
	)

	resp, err := geminiClient.Models.GenerateContent(ctx, cropDoctorModel, genai.Text(prompt), nil)
	if err != nil {
		return models.CropDiagnosis{}, fmt.Errorf("failed to generate diagnosis: %w", err)
	}

	cleaned := cleanModelOutput(resp.Text())
	if cleaned == "" {
		return models.CropDiagnosis{}, errors.New("no diagnosis generated")
	}

	var diagnosis models.CropDiagnosis
	if err := json.Unmarshal([]byte(cleaned), &diagnosis); err != nil {
		return models.CropDiagnosis{}, fmt.Errorf("invalid diagnosis format: %w", err)
	}
	if diagnosis.Disease == "" {
		return models.CropDiagnosis{}, errors.New("invalid response format: missing disease")
	}

	return diagnosis, nil
}

func cleanModelOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
