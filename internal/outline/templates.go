package outline

type sectionTemplate struct {
	h2             string
	contentType    string
	wordCount      int
	readingTime    int
	keyPoints      []string
	targetKeywords []string
}

type outlineTemplate struct {
	h1       string
	sections []sectionTemplate
}

// ToolSuffix is appended to the keyword to form a tool outline's H1.
const ToolSuffix = " Online Tool"

var templates = map[Kind]outlineTemplate{
	KindTool: {
		h1: "{kw}" + ToolSuffix,
		sections: []sectionTemplate{
			{
				h2:          "What is {kw}?",
				contentType: "introduction",
				wordCount:   300,
				readingTime: 2,
				keyPoints: []string{
					"Definition and purpose of {kw}",
					"Why you need {kw}",
					"Where {kw} is used",
					"Advantages and features of {kw}",
				},
				targetKeywords: []string{"what is {kw}", "{kw} introduction", "{kw} definition"},
			},
			{
				h2:          "How to use our {kw} tool",
				contentType: "tutorial",
				wordCount:   500,
				readingTime: 3,
				keyPoints: []string{
					"Step 1: upload a file or enter your data",
					"Step 2: choose parameters and options",
					"Step 3: click generate or process",
					"Step 4: download the result or view the output",
					"Step 5: save or share the result",
				},
				targetKeywords: []string{"how to use {kw}", "{kw} usage", "{kw} tutorial"},
			},
			{
				h2:          "Core features of the {kw} tool",
				contentType: "features",
				wordCount:   400,
				readingTime: 2,
				keyPoints: []string{
					"Free to use, no sign-up required",
					"Results in 5 seconds",
					"Supports many input and output formats",
					"Accurate and reliable results",
					"Secure data handling",
					"Mobile friendly",
				},
				targetKeywords: []string{"{kw} features", "{kw} highlights", "{kw} advantages"},
			},
			{
				h2:          "{kw} use cases",
				contentType: "use_cases",
				wordCount:   350,
				readingTime: 2,
				keyPoints: []string{
					"Individuals: everyday work and study",
					"Businesses: streamlining workflows",
					"Students: homework and learning support",
					"Freelancers: getting more done",
					"E-commerce sellers: better product descriptions",
				},
				targetKeywords: []string{"{kw} applications", "{kw} scenarios", "{kw} uses"},
			},
			{
				h2:          "Frequently asked questions",
				contentType: "faq",
				wordCount:   300,
				readingTime: 2,
				keyPoints: []string{
					"Is the tool completely free? Are there limits?",
					"Which file formats are supported?",
					"How long does generation take?",
					"How is my data kept safe?",
					"Can I use the output commercially?",
					"How do I get better results?",
				},
				targetKeywords: []string{"{kw} faq", "{kw} questions", "{kw} help"},
			},
		},
	},
	KindBlog: {
		h1: "The complete {kw} guide: from beginner to expert",
		sections: []sectionTemplate{
			{
				h2:          "{kw} fundamentals",
				contentType: "basics",
				wordCount:   800,
				readingTime: 4,
				keyPoints: []string{
					"Definition and concepts of {kw}",
					"History and evolution of {kw}",
					"Why {kw} matters",
					"Core concepts explained",
					"Basic principles and how it works",
				},
				targetKeywords: []string{"{kw} for beginners", "{kw} basics", "{kw} concepts"},
			},
			{
				h2:          "Advanced {kw} tutorial",
				contentType: "tutorial",
				wordCount:   1200,
				readingTime: 6,
				keyPoints: []string{
					"Environment setup and configuration",
					"Basic operations and practice",
					"Advanced techniques and methods",
					"Hands-on projects and examples",
					"Performance tuning advice",
				},
				targetKeywords: []string{"{kw} tutorial", "advanced {kw}", "learn {kw}"},
			},
			{
				h2:          "{kw} best practices",
				contentType: "best_practices",
				wordCount:   1000,
				readingTime: 5,
				keyPoints: []string{
					"Industry standards and conventions",
					"Common problems and solutions",
					"Pitfalls to avoid",
					"Productivity tips",
					"Recommended tools and resources",
				},
				targetKeywords: []string{"{kw} best practices", "{kw} tips", "{kw} methods"},
			},
			{
				h2:          "{kw} case studies",
				contentType: "cases",
				wordCount:   600,
				readingTime: 3,
				keyPoints: []string{
					"Success story 1: a company rolling out {kw}",
					"Success story 2: an individual using it effectively",
					"Failure analysis: common mistakes and lessons",
					"Takeaways and lessons learned",
				},
				targetKeywords: []string{"{kw} case study", "{kw} in practice", "{kw} analysis"},
			},
			{
				h2:          "Frequently asked questions",
				contentType: "faq",
				wordCount:   400,
				readingTime: 2,
				keyPoints: []string{
					"Is {kw} suitable for beginners?",
					"How long does it take to learn {kw}?",
					"What prior knowledge do I need?",
					"What are the career prospects for {kw}?",
					"How do I keep learning and improving?",
				},
				targetKeywords: []string{"{kw} faq", "{kw} questions", "{kw} answers"},
			},
		},
	},
	KindDirectory: {
		h1: "{kw} resource directory",
		sections: []sectionTemplate{
			{
				h2:          "Official {kw} resources",
				contentType: "official",
				wordCount:   500,
				readingTime: 3,
				keyPoints: []string{
					"Official website and documentation",
					"Official tutorials and guides",
					"Official tools and software",
					"Official community and forums",
					"Changelogs and announcements",
				},
				targetKeywords: []string{"{kw} official", "{kw} official site", "{kw} documentation"},
			},
			{
				h2:          "Top third-party tools",
				contentType: "tools",
				wordCount:   600,
				readingTime: 3,
				keyPoints: []string{
					"Recommended online tools",
					"Recommended desktop software",
					"Recommended browser extensions",
					"Recommended mobile apps",
					"Tool comparisons and reviews",
				},
				targetKeywords: []string{"{kw} tools", "{kw} software", "{kw} recommendations"},
			},
			{
				h2:          "Learning resources",
				contentType: "resources",
				wordCount:   700,
				readingTime: 4,
				keyPoints: []string{
					"Recommended online courses",
					"Recommended books and e-books",
					"Recommended video tutorials",
					"Recommended blogs and newsletters",
					"Recommended communities and forums",
				},
				targetKeywords: []string{"learn {kw}", "{kw} resources", "{kw} tutorial"},
			},
			{
				h2:          "News and updates",
				contentType: "news",
				wordCount:   400,
				readingTime: 2,
				keyPoints: []string{
					"Industry news and trends",
					"New tool releases",
					"Technology updates and upgrades",
					"Conferences and events",
					"Expert opinions and commentary",
				},
				targetKeywords: []string{"{kw} news", "{kw} updates", "{kw} trends"},
			},
		},
	},
	KindGeneric: {
		h1: "{kw}",
		sections: []sectionTemplate{
			{
				h2:          "About {kw}",
				contentType: "overview",
				wordCount:   500,
				readingTime: 3,
				keyPoints: []string{
					"Definition of {kw}",
					"Background of {kw}",
					"Why {kw} matters",
					"Related concepts",
				},
				targetKeywords: []string{"{kw} introduction", "{kw} overview", "{kw} background"},
			},
			{
				h2:          "{kw} in detail",
				contentType: "details",
				wordCount:   800,
				readingTime: 4,
				keyPoints: []string{
					"Core content explained",
					"Technical details",
					"Implementation methods and steps",
					"Best practice recommendations",
				},
				targetKeywords: []string{"{kw} explained", "{kw} analysis", "{kw} methods"},
			},
			{
				h2:          "{kw} application guide",
				contentType: "guide",
				wordCount:   700,
				readingTime: 4,
				keyPoints: []string{
					"Application scenarios",
					"How to use it",
					"Things to watch out for",
					"Common questions",
				},
				targetKeywords: []string{"{kw} applications", "{kw} usage", "{kw} guide"},
			},
		},
	},
}
