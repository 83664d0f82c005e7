// Package scopedoc defines the scope of work document and its acceptance gate
package scopedoc

// Impact grades a risk
type Impact string

const (
	ImpactLow    Impact = "Low"
	ImpactMedium Impact = "Medium"
	ImpactHigh   Impact = "High"
)

// Document is a scope of work. Every list must hold at least one entry once validated.
type Document struct {
	ProjectTitle     string `json:"projectTitle" validate:"required"`
	ExecutiveSummary string `json:"executiveSummary" validate:"required"`
	ProblemStatement string `json:"problemStatement" validate:"required"`

	Goals           []string        `json:"goals" validate:"required,min=1,dive,required"`
	UserTypes       []string        `json:"userTypes" validate:"required,min=1,dive,required"`
	MVP             MVP             `json:"mvp"`
	Phase2          Phase2          `json:"phase2"`
	NonGoals        []string        `json:"nonGoals" validate:"required,min=1,dive,required"`
	ScopeBoundaries ScopeBoundaries `json:"scopeBoundaries"`

	Timeline   []Phase     `json:"timeline" validate:"required,min=1,dive"`
	Milestones []Milestone `json:"milestones" validate:"required,min=1,dive"`

	Assumptions  []string `json:"assumptions" validate:"required,min=1,dive,required"`
	Dependencies []string `json:"dependencies" validate:"required,min=1,dive,required"`
	Risks        []Risk   `json:"risks" validate:"required,min=1,dive"`

	PricingEstimate PricingEstimate `json:"pricingEstimate"`
	TechStack       TechStack       `json:"techStack"`

	Deliverables       []string `json:"deliverables" validate:"required,min=1,dive,required"`
	AcceptanceCriteria []string `json:"acceptanceCriteria" validate:"required,min=1,dive,required"`
	NextSteps          []string `json:"nextSteps" validate:"required,min=1,dive,required"`
}

type MVP struct {
	Features    []string `json:"features" validate:"required,min=1,dive,required"`
	UserStories []string `json:"userStories" validate:"required,min=1,dive,required"`
}

type Phase2 struct {
	Features []string `json:"features" validate:"required,min=1,dive,required"`
}

type ScopeBoundaries struct {
	InScope    []string `json:"inScope" validate:"required,min=1,dive,required"`
	OutOfScope []string `json:"outOfScope" validate:"required,min=1,dive,required"`
}

// Phase is one timeline entry
type Phase struct {
	Phase         string   `json:"phase" validate:"required"`
	DurationWeeks int      `json:"durationWeeks" validate:"gte=1"`
	WhatHappens   []string `json:"whatHappens" validate:"required,min=1,dive,required"`
}

type Milestone struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	DueWeek      int      `json:"dueWeek" validate:"gte=1"`
	Deliverables []string `json:"deliverables" validate:"required,min=1,dive,required"`
}

type Risk struct {
	Risk       string `json:"risk" validate:"required"`
	Impact     Impact `json:"impact" validate:"required,oneof=Low Medium High"`
	Mitigation string `json:"mitigation" validate:"required"`
}

// PricingEstimate is a USD range with its drivers
type PricingEstimate struct {
	LowUSD                    int      `json:"lowUSD" validate:"gte=0"`
	HighUSD                   int      `json:"highUSD" validate:"gte=0"`
	PricingDrivers            []string `json:"pricingDrivers" validate:"required,min=1,dive,required"`
	PaymentScheduleSuggestion string   `json:"paymentScheduleSuggestion" validate:"required"`
}

// TechStack lists technologies per layer; integrations may be empty
type TechStack struct {
	Frontend     []string `json:"frontend" validate:"required,min=1,dive,required"`
	Backend      []string `json:"backend" validate:"required,min=1,dive,required"`
	Database     []string `json:"database" validate:"required,min=1,dive,required"`
	Auth         []string `json:"auth" validate:"required,min=1,dive,required"`
	Hosting      []string `json:"hosting" validate:"required,min=1,dive,required"`
	Integrations []string `json:"integrations" validate:"dive,required"`
}
