package analysis

// Vocabulary holds the lexicons the signal extractors match against. It is
// built once at startup and never mutated afterwards, so it is safe to share
// across concurrent scans.
type Vocabulary struct {
	// SkillsByCategory maps an industry category to its skill terms.
	SkillsByCategory map[string][]string
	EducationTerms   []string
	ActionVerbs      []string
	WeakVerbs        []string
	Buzzwords        []string
	ResumeKeywords   []string
	NonResumeMarkers []string
}

// DefaultVocabulary returns the built-in lexicon set.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		SkillsByCategory: map[string][]string{
			"programming": {
				"Python", "Java", "JavaScript", "C++", "C#", "Ruby", "PHP", "Go", "Rust", "Swift",
				"Kotlin", "Scala", "R", "MATLAB", "SQL", "HTML", "CSS", "TypeScript", "ABAP",
				"Perl", "PowerShell", "Bash", "Shell", "VBA", "Objective-C", "Dart", "Lua",
			},
			"web": {
				"React", "Angular", "Vue.js", "Node.js", "Django", "Flask", "Spring", "Laravel",
				"Express.js", "Redux", "jQuery", "Bootstrap", "Tailwind CSS", "Next.js", "Nuxt.js",
				"Svelte", "Ember.js", "Backbone.js", "ASP.NET", "Spring Boot", "Hibernate",
			},
			"databases": {
				"MySQL", "PostgreSQL", "MongoDB", "Oracle", "SQLite", "Redis", "Cassandra",
				"DynamoDB", "Firebase", "Elasticsearch", "Neo4j", "CouchDB", "MariaDB",
			},
			"cloud_devops": {
				"AWS", "Azure", "Google Cloud", "Docker", "Kubernetes", "Jenkins", "Git",
				"GitHub", "GitLab", "CI/CD", "Terraform", "Ansible", "Chef", "Puppet",
				"Vagrant", "Prometheus", "Grafana", "ELK Stack", "Nginx", "Apache",
			},
			"data_ml": {
				"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch", "Pandas",
				"NumPy", "Scikit-learn", "Matplotlib", "Seaborn", "Jupyter", "Keras",
				"OpenCV", "NLTK", "Spark", "Hadoop", "Tableau", "Power BI",
			},
			"mobile": {
				"iOS", "Android", "React Native", "Flutter", "Xamarin", "Ionic",
			},
			"testing": {
				"Jest", "Selenium", "Cypress", "JUnit", "PyTest", "Mocha", "Chai",
			},
			"soft_skills": {
				"Leadership", "Communication", "Problem Solving", "Team Work", "Project Management",
				"Analytical Thinking", "Creativity", "Adaptability", "Time Management", "Critical Thinking",
			},
		},
		EducationTerms: []string{
			"Bachelor", "Master", "PhD", "Doctorate", "Associate",
			"B.S.", "B.A.", "M.S.", "M.A.", "MBA", "B.Tech", "M.Tech",
		},
		ActionVerbs: []string{
			"achieved", "managed", "led", "developed", "created", "improved",
			"increased", "reduced", "implemented", "designed", "built", "launched",
			"optimized", "delivered", "automated", "migrated", "scaled", "mentored",
			"architected", "streamlined", "negotiated", "coordinated", "spearheaded",
		},
		WeakVerbs: []string{
			"worked", "helped", "did", "made", "used", "handled",
			"was responsible for", "participated in", "assisted with",
		},
		Buzzwords: []string{
			"synergy", "leverage", "dynamic", "innovative", "detail-oriented",
			"team player", "hard worker", "go-getter",
		},
		ResumeKeywords: []string{
			"resume", "cv", "curriculum vitae", "years of experience",
			"responsible for", "managed", "developed", "implemented",
			"bachelor", "master", "degree", "university", "college",
			"phone", "email", "address", "linkedin", "portfolio",
		},
		NonResumeMarkers: []string{
			"article", "chapter", "abstract", "conclusion", "bibliography",
			"references cited", "methodology", "literature review",
			"invoice", "receipt", "statement", "bill", "payment",
			"contract", "agreement", "terms and conditions",
			"memo", "memorandum", "meeting minutes", "agenda",
			"manual", "guide", "instructions", "tutorial",
			"report", "analysis", "findings", "research",
		},
	}
}

// AllSkills flattens the categorized vocabulary into a single slice.
func (v *Vocabulary) AllSkills() []string {
	var skills []string
	for _, group := range v.SkillsByCategory {
		skills = append(skills, group...)
	}
	return skills
}

// Size reports how many skill terms are loaded, for health reporting.
func (v *Vocabulary) Size() int {
	n := 0
	for _, group := range v.SkillsByCategory {
		n += len(group)
	}
	return n
}

// stopwords used when tokenizing text for keyword-relevance comparison.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "have": true,
	"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
	"or": true, "our": true, "that": true, "the": true, "their": true,
	"this": true, "to": true, "was": true, "we": true, "were": true,
	"will": true, "with": true, "you": true, "your": true,
}
