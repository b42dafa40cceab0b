package agents

import (
	"fmt"

	"tripcrew/internal/pipeline"
)

var TipsAgent = Agent{
	Role: "Local Culture & Safety Advisor",
	Goal: "Provide essential cultural etiquette, safety tips, and transportation advice for {destination}",
	Backstory: "You are a seasoned expat and travel safety consultant who has lived in dozens of countries. " +
		"You give practical, honest advice about local customs, safety precautions, and transportation " +
		"systems so travelers can navigate new destinations confidently and respectfully.",
}

func TipsStage(p TripParams) pipeline.Stage {
	return pipeline.Stage{
		Kind:   pipeline.StageTips,
		System: TipsAgent.SystemPrompt(p.Destination),
		JSON:   true,
		Prompt: func(_ string, _ pipeline.Upstream) string {
			return tipsPrompt(p.Destination, p.TripType)
		},
	}
}

func tipsPrompt(destination, tripType string) string {
	return fmt.Sprintf(`Provide comprehensive practical advice for traveling to %[1]s (trip type: %[2]s).

Cover the following categories:

1. **Cultural Etiquette**: greetings and social customs, dress code, dining etiquette, photography
   restrictions, religious/cultural sensitivities, tipping customs
2. **Safety & Scams**: general safety level, areas to avoid, common tourist scams, emergency numbers,
   safety tips for %[2]s travelers, healthcare/pharmacy info
3. **Transportation**: airport to city center (options, costs, duration), public transport overview,
   metro/bus/train card recommendations, taxi/ride-share apps, walking vs. transport, best apps
4. **Communication**: English proficiency, essential local phrases, SIM card/data options, free WiFi
5. **Money Matters**: currency and exchange, credit card acceptance, ATM availability, bargaining culture
6. **General Tips**: best time to visit attractions, booking advice, what to pack, local apps

Respond with a single JSON object in this format:
{
    "destination": "%[1]s",
    "culture_etiquette": {
        "greetings": "...",
        "dress_code": "...",
        "dining": "...",
        "tips": ["tip1", "tip2"]
    },
    "safety": {
        "safety_level": "low/medium/high risk",
        "areas_to_avoid": ["area1"],
        "common_scams": ["scam1", "scam2"],
        "emergency_numbers": {"police": "...", "ambulance": "..."},
        "tips": ["tip1", "tip2"]
    },
    "transportation": {
        "airport_transfer": {
            "options": ["metro", "taxi", "bus"],
            "recommended": "...",
            "cost": "...",
            "duration": "..."
        },
        "public_transport": {
            "description": "...",
            "card_name": "...",
            "cost_per_day": "...",
            "tips": ["tip1"]
        },
        "apps": ["app1", "app2"]
    },
    "communication": {
        "english_level": "low/medium/high",
        "phrases": {"hello": "...", "thank_you": "..."},
        "sim_card": "..."
    },
    "money": {
        "currency": "...",
        "exchange_tips": "...",
        "card_acceptance": "...",
        "bargaining": "..."
    },
    "general_tips": ["tip1", "tip2", "tip3"]
}`, destination, tripType)
}
