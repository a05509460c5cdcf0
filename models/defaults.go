package models

import "gorm.io/datatypes"

// DefaultPortfolio is the profile created on the first public read of an
// empty store.
func DefaultPortfolio() Portfolio {
	return Portfolio{
		Personal: datatypes.NewJSONType(PersonalInfo{
			Name:     "Jeferson Rodrigues",
			Role:     "Gaffer | Audiovisual Lighting",
			Location: "São Paulo & Rio de Janeiro",
			Email:    "jeferson@exemplo.com",
			Phone:    "+55 11 9999-9999",
			Bio: "Lighting specialist for audiovisual productions with more than 8 years of experience. " +
				"Gaffer on large productions for Netflix, TV networks and advertising campaigns.",
			Social: SocialLinks{
				Instagram: "@jefersonrodrigues",
				LinkedIn:  "jeferson-rodrigues",
				YouTube:   "@jefersonrodrigues",
				WhatsApp:  "5511999999999",
			},
		}),
		DemoReel: datatypes.NewJSONType(DemoReel{
			Title:       "Demo Reel 2024",
			Description: "Highlights of cinematic lighting work",
		}),
		Services: datatypes.JSONSlice[Service]{
			{Title: "Gaffer", Description: "Lighting direction for film, TV and advertising", Icon: "lightbulb"},
			{Title: "Cinematography", Description: "Visual concept and cinematic look", Icon: "camera"},
			{Title: "Technical Consulting", Description: "Equipment planning and budgets", Icon: "settings"},
			{Title: "Color Grading", Description: "Finishing and color correction", Icon: "palette"},
		},
	}
}
