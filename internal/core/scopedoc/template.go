package scopedoc

// Template returns a fully populated example document. It pins the backend
// to the exact key layout and must itself pass Validate. Each call returns a
// fresh value.
func Template() Document {
	return Document{
		ProjectTitle:     "Client Portal MVP",
		ExecutiveSummary: "A focused first release that gives the client's team and customers one place to run the primary workflow.",
		ProblemStatement: "The current process runs on email and spreadsheets, which hides status and slows every handoff.",
		Goals: []string{
			"Launch the primary workflow end to end",
			"Give admins visibility into records and status",
			"Reduce manual follow-up",
		},
		UserTypes: []string{"Admins", "End users"},
		MVP: MVP{
			Features: []string{"Authentication", "Admin dashboard", "Core workflow"},
			UserStories: []string{
				"As an admin, I can sign in and manage records.",
				"As a user, I can complete the primary workflow.",
				"As an admin, I can review and export data.",
			},
		},
		Phase2: Phase2{
			Features: []string{"Advanced analytics", "Automations", "Notifications"},
		},
		NonGoals: []string{"Enterprise SSO in MVP", "Native mobile apps in MVP"},
		ScopeBoundaries: ScopeBoundaries{
			InScope:    []string{"Auth and roles", "Admin CRUD", "Primary user workflow", "Basic reporting"},
			OutOfScope: []string{"Enterprise SSO", "Native apps", "Custom data warehouse"},
		},
		Timeline: []Phase{
			{Phase: "Discovery & spec", DurationWeeks: 1, WhatHappens: []string{"Confirm scope", "Define roles", "Finalize success metrics"}},
			{Phase: "Build MVP", DurationWeeks: 3, WhatHappens: []string{"Implement features", "Admin dashboard", "APIs and data model"}},
			{Phase: "QA & launch", DurationWeeks: 1, WhatHappens: []string{"Testing", "Bug fixes", "Deploy and handoff"}},
		},
		Milestones: []Milestone{
			{
				Name:         "Scope Approved",
				Description:  "Stakeholder approves requirements, milestones, and acceptance criteria.",
				DueWeek:      1,
				Deliverables: []string{"Approved scope", "Milestone plan", "Acceptance criteria"},
			},
			{
				Name:         "Feature Complete",
				Description:  "MVP features implemented and ready for QA in staging.",
				DueWeek:      4,
				Deliverables: []string{"Staging build", "Release notes"},
			},
			{
				Name:         "Launch",
				Description:  "Production deploy and handoff completed.",
				DueWeek:      5,
				Deliverables: []string{"Production deployment", "Handoff docs"},
			},
		},
		Assumptions: []string{
			"Client provides brand assets and content or approves placeholders.",
			"A single primary stakeholder approves scope and deliverables.",
			"Third-party services are available and configured as needed.",
		},
		Dependencies: []string{
			"Access to required systems and third-party services.",
			"Timely stakeholder feedback during weekly check-ins.",
			"Existing data samples provided early for validation.",
		},
		Risks: []Risk{
			{Risk: "Ambiguous requirements or shifting priorities", Impact: ImpactHigh, Mitigation: "Weekly checkpoints, a change log, and a strict MVP boundary."},
			{Risk: "Timeline pressure due to scope creep", Impact: ImpactMedium, Mitigation: "Prioritize MVP must-haves and move extras to Phase 2."},
			{Risk: "Data migration complexity", Impact: ImpactMedium, Mitigation: "Validate sample data early and agree on import rules."},
		},
		PricingEstimate: PricingEstimate{
			LowUSD:                    5000,
			HighUSD:                   15000,
			PricingDrivers:            []string{"Project complexity", "Feature count", "Deadline", "Integrations and compliance"},
			PaymentScheduleSuggestion: "40% deposit, 30% at the mid milestone, 30% on delivery.",
		},
		TechStack: TechStack{
			Frontend:     []string{"React", "TypeScript"},
			Backend:      []string{"Go", "REST API"},
			Database:     []string{"PostgreSQL"},
			Auth:         []string{"Token based auth"},
			Hosting:      []string{"Managed cloud containers"},
			Integrations: []string{"Email provider", "Payments (if needed)"},
		},
		Deliverables: []string{
			"Working MVP web application",
			"Admin dashboard",
			"Production deployment",
			"Setup and handoff documentation",
		},
		AcceptanceCriteria: []string{
			"Primary MVP workflow works end to end in production",
			"No P1 bugs at launch",
			"Admin dashboard supports required CRUD actions",
			"Docs delivered and handoff completed",
		},
		NextSteps: []string{
			"Confirm the MVP feature list",
			"Agree on milestones and communication cadence",
			"Collect brand assets and data samples",
		},
	}
}
