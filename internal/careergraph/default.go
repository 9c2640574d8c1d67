package careergraph

import (
	"fmt"

	"github.com/jonathan/career-pathfinder/internal/types"
)

// DefaultDefinition returns the curated technology career graph: frontend,
// backend, data, infrastructure and product tracks plus two entry roles.
func DefaultDefinition() *types.RoleGraphDefinition {
	juniorFrontend := []string{"HTML", "CSS", "JavaScript", "React", "Git"}
	seniorFrontend := with(juniorFrontend, "TypeScript", "State Management (Redux/Zustand)", "Testing (Jest/Cypress)", "Webpack")
	techLead := with(seniorFrontend, "System Design", "Team Mentorship", "CI/CD", "Project Management")

	juniorBackend := []string{"Python", "Flask/Django", "SQL", "REST APIs", "Git"}
	seniorBackend := with(juniorBackend, "Docker", "Kubernetes", "Microservices", "System Design", "NoSQL (MongoDB)")

	juniorDataAnalyst := []string{"SQL", "Excel", "Tableau/PowerBI", "Python (Pandas)", "Statistics"}
	dataScientist := with(juniorDataAnalyst, "Machine Learning", "Scikit-learn", "TensorFlow/PyTorch", "Big Data (Spark)")

	devops := []string{"Linux", "Bash Scripting", "Docker", "Kubernetes", "CI/CD (Jenkins/GitLab)", "Terraform"}
	sre := with(devops, "Monitoring (Prometheus/Grafana)", "System Design", "Networking", "Python/Go")

	productManager := []string{"Project Management", "Agile/Scrum", "JIRA", "Roadmapping", "Communication"}

	return &types.RoleGraphDefinition{
		Version: DefinitionVersion,
		Roles: []types.RoleDefinition{
			{Title: "Junior Frontend Developer", Skills: juniorFrontend},
			{Title: "Senior Frontend Developer", Skills: seniorFrontend},
			{Title: "Tech Lead", Skills: techLead},
			{Title: "Junior Backend Developer", Skills: juniorBackend},
			{Title: "Senior Backend Developer", Skills: seniorBackend},
			{Title: "Junior Data Analyst", Skills: juniorDataAnalyst},
			{Title: "Data Scientist", Skills: dataScientist},
			{Title: "DevOps Engineer", Skills: devops},
			{Title: "Site Reliability Engineer (SRE)", Skills: sre},
			{Title: "Product Manager", Skills: productManager},
			{Title: "Software Engineer Intern", Skills: []string{"Git", "Python/JavaScript", "Problem Solving"}},
			{Title: "Graduate Software Engineer", Skills: []string{"Git", "Python/JavaScript", "Data Structures", "Algorithms"}},
		},
		Transitions: []types.TransitionDefinition{
			{From: "Software Engineer Intern", To: "Junior Frontend Developer"},
			{From: "Software Engineer Intern", To: "Junior Backend Developer"},
			{From: "Software Engineer Intern", To: "Junior Data Analyst"},
			{From: "Graduate Software Engineer", To: "Junior Frontend Developer"},
			{From: "Graduate Software Engineer", To: "Junior Backend Developer"},

			{From: "Junior Frontend Developer", To: "Senior Frontend Developer"},
			{From: "Senior Frontend Developer", To: "Tech Lead"},

			{From: "Junior Backend Developer", To: "Senior Backend Developer"},
			{From: "Senior Backend Developer", To: "Tech Lead"},

			{From: "Junior Backend Developer", To: "DevOps Engineer"},
			{From: "DevOps Engineer", To: "Site Reliability Engineer (SRE)"},

			{From: "Junior Data Analyst", To: "Data Scientist"},

			// Cross-functional moves
			{From: "Senior Frontend Developer", To: "Product Manager"},
			{From: "Senior Backend Developer", To: "Product Manager"},
		},
	}
}

// Default builds the curated graph. It panics if the built-in definition is
// inconsistent, which would be a programming error.
func Default() *Graph {
	g, err := FromDefinition(DefaultDefinition())
	if err != nil {
		panic(fmt.Sprintf("built-in role graph is invalid: %v", err))
	}
	return g
}

func with(base []string, extra ...string) []string {
	out := make([]string, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}
