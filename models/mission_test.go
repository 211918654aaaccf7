package models

import (
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
)

func bindMission(t *testing.T, body string) (Mission, error) {
	t.Helper()
	var m Mission
	err := binding.JSON.BindBody([]byte(body), &m)
	return m, err
}

func TestMissionBindingAcceptsZeroValueRewards(t *testing.T) {
	cases := []struct {
		name    string
		rewards string
	}{
		{"zero xp", `{"xp":0,"greenCoins":10}`},
		{"zero coins", `{"xp":50,"greenCoins":0}`},
		{"zero bundle", `{"xp":0,"greenCoins":0}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := `{
				"title":{"en":"Mulching","hi":"मल्चिंग"},
				"description":{"en":"Cover the soil","hi":"मिट्टी को ढकें"},
				"category":"soil",
				"difficulty":"easy",
				"rewards":` + tc.rewards + `
			}`
			if _, err := bindMission(t, body); err != nil {
				t.Fatalf("expected binding to succeed, got %v", err)
			}
		})
	}
}

func TestMissionBindingRejectsNegativeRewards(t *testing.T) {
	body := `{
		"title":{"en":"Mulching","hi":"मल्चिंग"},
		"description":{"en":"Cover the soil","hi":"मिट्टी को ढकें"},
		"category":"soil",
		"difficulty":"easy",
		"rewards":{"xp":-1,"greenCoins":10}
	}`
	_, err := bindMission(t, body)
	if err == nil {
		t.Fatal("expected binding to fail for negative xp")
	}
	if !strings.Contains(err.Error(), "XP") {
		t.Errorf("expected XP validation error, got %v", err)
	}
}
