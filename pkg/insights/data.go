package insights

import "github.com/goliatone/go-roadmap/pkg/model"

type jobEntry struct {
	key      string
	insights model.MarketInsights
}

type trendEntry struct {
	industry string
	skills   []string
}

var defaultJobs = []jobEntry{
	{key: "software engineer", insights: model.MarketInsights{
		AverageSalary:  "$85,000 - $150,000",
		JobGrowth:      "+22% (Much faster than average)",
		TopCompanies:   []string{"Google", "Microsoft", "Amazon", "Meta", "Netflix", "Apple"},
		InDemandSkills: []string{"JavaScript", "Python", "React", "Node.js", "AWS", "Docker"},
	}},
	{key: "data scientist", insights: model.MarketInsights{
		AverageSalary:  "$95,000 - $165,000",
		JobGrowth:      "+31% (Much faster than average)",
		TopCompanies:   []string{"Google", "Microsoft", "Amazon", "Netflix", "Uber", "Airbnb"},
		InDemandSkills: []string{"Python", "R", "SQL", "Machine Learning", "TensorFlow", "Pandas"},
	}},
	{key: "product manager", insights: model.MarketInsights{
		AverageSalary:  "$100,000 - $180,000",
		JobGrowth:      "+19% (Much faster than average)",
		TopCompanies:   []string{"Google", "Microsoft", "Amazon", "Meta", "Spotify", "Slack"},
		InDemandSkills: []string{"Product Strategy", "Analytics", "SQL", "A/B Testing", "Figma", "Jira"},
	}},
	{key: "ux designer", insights: model.MarketInsights{
		AverageSalary:  "$70,000 - $130,000",
		JobGrowth:      "+13% (Faster than average)",
		TopCompanies:   []string{"Google", "Apple", "Adobe", "Figma", "Airbnb", "Spotify"},
		InDemandSkills: []string{"Figma", "Sketch", "Prototyping", "User Research", "Design Systems", "HTML/CSS"},
	}},
	{key: "devops engineer", insights: model.MarketInsights{
		AverageSalary:  "$90,000 - $160,000",
		JobGrowth:      "+21% (Much faster than average)",
		TopCompanies:   []string{"Amazon", "Google", "Microsoft", "Netflix", "Uber", "Docker"},
		InDemandSkills: []string{"AWS", "Docker", "Kubernetes", "Jenkins", "Terraform", "Python"},
	}},
	{key: "cybersecurity analyst", insights: model.MarketInsights{
		AverageSalary:  "$80,000 - $140,000",
		JobGrowth:      "+33% (Much faster than average)",
		TopCompanies:   []string{"IBM", "Microsoft", "Cisco", "Palo Alto Networks", "CrowdStrike", "FireEye"},
		InDemandSkills: []string{"Network Security", "Incident Response", "SIEM", "Python", "Risk Assessment", "Compliance"},
	}},
}

var defaultTrending = []trendEntry{
	{industry: "technology", skills: []string{"AI/ML", "Cloud Computing", "Cybersecurity", "DevOps", "Data Science", "Blockchain"}},
	{industry: "marketing", skills: []string{"Digital Marketing", "SEO/SEM", "Social Media", "Analytics", "Content Strategy", "Marketing Automation"}},
	{industry: "finance", skills: []string{"Financial Modeling", "Risk Management", "Blockchain", "Fintech", "Data Analysis", "Compliance"}},
	{industry: "healthcare", skills: []string{"Telemedicine", "Health Informatics", "Data Analysis", "Regulatory Compliance", "Patient Care", "Medical Technology"}},
	{industry: "design", skills: []string{"UX/UI Design", "Design Systems", "Prototyping", "User Research", "Accessibility", "Design Thinking"}},
}

var generalTrending = []string{
	"Digital Literacy", "Data Analysis", "Communication", "Problem Solving", "Adaptability", "Remote Collaboration",
}

var growthRates = []string{
	"+15% (Faster than average)",
	"+10% (Average growth)",
	"+25% (Much faster than average)",
}

var genericCompanies = []string{
	"Google", "Microsoft", "Amazon", "Apple", "Meta", "IBM", "Oracle", "Salesforce",
}

// keywordSkills is checked in order; the first keyword found in the title wins.
var keywordSkills = []struct {
	keyword string
	skills  []string
}{
	{"developer", []string{"Programming", "Git", "APIs", "Testing", "Debugging"}},
	{"analyst", []string{"SQL", "Excel", "Data Analysis", "Reporting", "Statistics"}},
	{"manager", []string{"Leadership", "Strategy", "Communication", "Project Management", "Analytics"}},
	{"designer", []string{"Design Tools", "Prototyping", "User Research", "Creative Suite", "Wireframing"}},
	{"engineer", []string{"Technical Skills", "Problem Solving", "System Design", "Testing", "Documentation"}},
}

var defaultSkills = []string{"Communication", "Problem Solving", "Teamwork", "Adaptability", "Technical Skills"}

// FallbackInsights is used when no catalog is available at all.
func FallbackInsights() model.MarketInsights {
	return model.MarketInsights{
		AverageSalary:  "$70,000 - $120,000",
		JobGrowth:      "+15% (Faster than average)",
		TopCompanies:   []string{"Google", "Microsoft", "Amazon", "Apple", "Meta"},
		InDemandSkills: []string{"Communication", "Problem Solving", "Technical Skills", "Teamwork", "Adaptability", "Leadership"},
	}
}
