package intake

import "scopegen/internal/platform/validate"

// Option sets for enumerated intake fields. Values are matched exactly,
// including the en dash used in ranges.
var (
	Industries = []string{
		"Real Estate", "Healthcare", "eCommerce", "Education",
		"Finance", "Logistics", "Nonprofit", "Other",
	}
	ProjectTypes = []string{
		"Marketing website", "Web app (SaaS)", "Mobile app",
		"Internal tool", "API only", "Not sure",
	}
	PrimaryGoals = []string{
		"Get leads", "Sell products", "Automate operations",
		"Reduce support load", "Improve reporting", "Other",
	}
	DesignPreferences = []string{
		"Clean & modern", "Bold & playful", "Corporate", "Minimal", "Match my existing site",
	}
	ScreensEstimates = []string{"1–3", "4–7", "8–15", "16+"}
	Deadlines        = []string{"ASAP (2–4 weeks)", "1–2 months", "3–4 months", "Flexible"}
	BudgetRanges     = []string{"<$2k", "$2k–$5k", "$5k–$10k", "$10k–$25k", "$25k+"}
	ProposalStyles   = []string{"Friendly", "Formal", "Agency", "Short & punchy"}
	ExportFormats    = []string{"PDF", "Share link", "Both"}
)

// validator tags for the option sets above
const (
	tagIndustry         = "intake_industry"
	tagProjectType      = "intake_project_type"
	tagPrimaryGoal      = "intake_primary_goal"
	tagDesignPreference = "intake_design_preference"
	tagScreensEstimate  = "intake_screens_estimate"
	tagDeadline         = "intake_deadline"
	tagBudgetRange      = "intake_budget_range"
	tagProposalStyle    = "intake_proposal_style"
	tagExportFormat     = "intake_export_format"
)

func init() {
	validate.RegisterEnum(tagIndustry, Industries)
	validate.RegisterEnum(tagProjectType, ProjectTypes)
	validate.RegisterEnum(tagPrimaryGoal, PrimaryGoals)
	validate.RegisterEnum(tagDesignPreference, DesignPreferences)
	validate.RegisterEnum(tagScreensEstimate, ScreensEstimates)
	validate.RegisterEnum(tagDeadline, Deadlines)
	validate.RegisterEnum(tagBudgetRange, BudgetRanges)
	validate.RegisterEnum(tagProposalStyle, ProposalStyles)
	validate.RegisterEnum(tagExportFormat, ExportFormats)
}
