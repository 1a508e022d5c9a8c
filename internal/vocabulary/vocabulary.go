// Package vocabulary holds the controlled vocabularies for skill and
// benefit tags. The registry is built once at startup and is read-only
// afterwards, so it is safe for unsynchronized concurrent use.
package vocabulary

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownTerm = errors.New("unknown vocabulary term")

var skillCategories = map[string][]string{
	"Programming Language": {
		"JavaScript", "Python", "Java", "C++", "C#", "Ruby", "PHP", "Swift", "Kotlin", "Go",
		"TypeScript", "Rust", "Scala", "R",
	},
	"Frontend": {
		"React.js", "Angular", "Vue.js", "Next.js", "HTML5", "CSS3", "SASS", "Tailwind",
		"Bootstrap", "Material_UI", "Redux", "jQuery",
	},
	"Backend": {
		"Node.js", "Express.js", "Django", "Spring_Boot", "Laravel", "ASP.NET", "Flask",
		"FastAPI", "Ruby_on_Rails", "NestJS",
	},
	"Database": {
		"MongoDB", "PostgreSQL", "MySQL", "Redis", "Oracle", "SQL_Server", "Elasticsearch",
		"Cassandra", "DynamoDB",
	},
	"Cloud & DevOps": {
		"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Jenkins", "GitLab_CI", "Terraform",
		"Ansible", "Linux",
	},
	"Mobile": {
		"React_Native", "Flutter", "iOS", "Android", "Xamarin",
	},
	"AI/ML": {
		"TensorFlow", "PyTorch", "Scikit_learn", "OpenCV", "NLTK",
	},
	"Testing": {
		"Jest", "Mocha", "Selenium", "Cypress", "JUnit",
	},
	"Other": {
		"Git", "GraphQL", "WebSocket", "REST_API", "gRPC",
	},
}

var benefitCategories = map[string][]string{
	"Healthcare": {
		"Health_Insurance", "Dental_Insurance", "Vision_Insurance", "Life_Insurance",
		"Mental_Health_Coverage", "Disability_Insurance", "Health_Savings_Account",
		"Wellness_Programs",
	},
	"Work-Life Balance": {
		"Flexible_Hours", "Remote_Work", "Unlimited_PTO", "Paid_Vacation",
		"Paid_Sick_Leave", "Paid_Parental_Leave", "Four_Day_Work_Week",
		"Sabbatical_Leave",
	},
	"Financial": {
		"Competitive_Salary", "401k_Match", "Stock_Options", "Performance_Bonus",
		"Sign_On_Bonus", "Profit_Sharing", "Employee_Discounts", "Student_Loan_Assistance",
	},
	"Professional Development": {
		"Training_Budget", "Conference_Budget", "Education_Reimbursement",
		"Professional_Certifications", "Career_Coaching", "Mentorship_Program",
		"Leadership_Development",
	},
	"Lifestyle": {
		"Gym_Membership", "Company_Events", "Free_Meals", "Transportation_Allowance",
		"Phone_Allowance", "Internet_Allowance", "Child_Care_Benefits",
		"Pet_Friendly_Office",
	},
}

// Registry maps vocabulary terms to their categories. Construct it with
// New and inject it; there is no package-level mutable state.
type Registry struct {
	skills        map[string]string
	benefits      map[string]string
	skillValues   []string
	benefitValues []string
}

func New() *Registry {
	r := &Registry{
		skills:   invert(skillCategories),
		benefits: invert(benefitCategories),
	}
	r.skillValues = sortedKeys(r.skills)
	r.benefitValues = sortedKeys(r.benefits)
	return r
}

func invert(categories map[string][]string) map[string]string {
	byName := make(map[string]string)
	for category, names := range categories {
		for _, name := range names {
			byName[name] = category
		}
	}
	return byName
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r *Registry) IsValidSkill(name string) bool {
	_, ok := r.skills[name]
	return ok
}

func (r *Registry) IsValidBenefit(name string) bool {
	_, ok := r.benefits[name]
	return ok
}

// SkillCategory returns the category the skill name belongs to.
func (r *Registry) SkillCategory(name string) (string, error) {
	category, ok := r.skills[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTerm, name)
	}
	return category, nil
}

// BenefitCategory returns the category the benefit name belongs to.
func (r *Registry) BenefitCategory(name string) (string, error) {
	category, ok := r.benefits[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTerm, name)
	}
	return category, nil
}

// SkillValues returns every valid skill name, sorted.
func (r *Registry) SkillValues() []string {
	return append([]string(nil), r.skillValues...)
}

// BenefitValues returns every valid benefit name, sorted.
func (r *Registry) BenefitValues() []string {
	return append([]string(nil), r.benefitValues...)
}
