package models

// CropDiagnosis is the structured advisory returned by the crop doctor
type CropDiagnosis struct {
	Disease    string   `json:"disease"`
	Severity   string   `json:"severity"` // low, medium, high
	Treatment  []string `json:"treatment"`
	Prevention []string `json:"prevention"`
}
