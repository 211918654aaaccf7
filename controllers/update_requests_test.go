package controllers

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
)

const rewardUpdateBase = `
	"title":{"en":"Organic Seed Kit","hi":"जैविक बीज किट"},
	"description":{"en":"A starter kit of seeds","hi":"बीजों की स्टार्टर किट"},
	"type":"physical",
	"cost":120`

func bindRewardUpdate(t *testing.T, body string) UpdateRewardRequest {
	t.Helper()
	var req UpdateRewardRequest
	if err := binding.JSON.BindBody([]byte(body), &req); err != nil {
		t.Fatalf("binding failed: %v", err)
	}
	return req
}

func TestUpdateRewardOmittedStockIsNotSet(t *testing.T) {
	req := bindRewardUpdate(t, `{`+rewardUpdateBase+`}`)

	set := req.setDocument()
	if _, ok := set["stock"]; ok {
		t.Errorf("stock must not appear in the update when omitted, got %v", set["stock"])
	}
	if _, ok := set["image"]; ok {
		t.Errorf("image must not appear in the update when omitted, got %v", set["image"])
	}
	if set["cost"] != 120 {
		t.Errorf("cost = %v, want 120", set["cost"])
	}
}

func TestUpdateRewardExplicitStockIsSet(t *testing.T) {
	for _, stock := range []string{"0", "-1", "25"} {
		req := bindRewardUpdate(t, `{`+rewardUpdateBase+`,"stock":`+stock+`}`)

		set := req.setDocument()
		got, ok := set["stock"]
		if !ok {
			t.Fatalf("stock %s missing from update", stock)
		}
		want := map[string]int{"0": 0, "-1": -1, "25": 25}[stock]
		if got != want {
			t.Errorf("stock = %v, want %d", got, want)
		}
	}
}

func TestUpdateRewardRejectsStockBelowSentinel(t *testing.T) {
	var req UpdateRewardRequest
	err := binding.JSON.BindBody([]byte(`{`+rewardUpdateBase+`,"stock":-2}`), &req)
	if err == nil {
		t.Fatal("expected binding to fail for stock below -1")
	}
}

const missionUpdateBase = `
	"title":{"en":"Mulching","hi":"मल्चिंग"},
	"description":{"en":"Cover the soil","hi":"मिट्टी को ढकें"},
	"category":"soil",
	"difficulty":"easy"`

func bindMissionUpdate(t *testing.T, body string) UpdateMissionRequest {
	t.Helper()
	var req UpdateMissionRequest
	if err := binding.JSON.BindBody([]byte(body), &req); err != nil {
		t.Fatalf("binding failed: %v", err)
	}
	return req
}

func TestUpdateMissionOmittedFieldsAreNotSet(t *testing.T) {
	req := bindMissionUpdate(t, `{`+missionUpdateBase+`}`)

	set := req.setDocument()
	for _, field := range []string{"season", "crop", "duration", "rewards", "steps", "image"} {
		if _, ok := set[field]; ok {
			t.Errorf("%s must not appear in the update when omitted, got %v", field, set[field])
		}
	}
	if set["category"] != "soil" {
		t.Errorf("category = %v, want soil", set["category"])
	}
}

func TestUpdateMissionExplicitFieldsAreSet(t *testing.T) {
	req := bindMissionUpdate(t, `{`+missionUpdateBase+`,
		"season":"kharif",
		"crop":"",
		"rewards":{"xp":0,"greenCoins":40}
	}`)

	set := req.setDocument()
	if set["season"] != "kharif" {
		t.Errorf("season = %v, want kharif", set["season"])
	}
	if crop, ok := set["crop"]; !ok || crop != "" {
		t.Errorf("explicit empty crop should clear the field, got %v (present=%v)", crop, ok)
	}
	if req.Rewards == nil || req.Rewards.GreenCoins != 40 || req.Rewards.XP != 0 {
		t.Fatalf("rewards bound incorrectly: %+v", req.Rewards)
	}
	if _, ok := set["rewards"]; !ok {
		t.Error("rewards missing from update")
	}
}
