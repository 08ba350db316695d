package catalog

// Default returns the built-in portfolio content. Each call returns a fresh
// copy so callers may modify it.
func Default() *Portfolio {
	return &Portfolio{
		Name:     "Nathan Yan",
		Headline: Headline,
		Tagline:  Tagline,
		About:    AboutMe,
		Contact: Contact{
			Email:    "nathancyan8@gmail.com",
			Phone:    "587-999-3525",
			GitHub:   "https://github.com/fflap",
			LinkedIn: "https://www.linkedin.com/in/nathan-yan-cs/",
			Location: "Calgary, Alberta",
		},
		Education: Education{
			School:     "University of Alberta",
			Degree:     "Bachelor of Science in Computer Science",
			Location:   "Edmonton, Alberta",
			Period:     "Sep. 2023 – May 2027",
			Coursework: "Data Structures and Algorithms, Linear Algebra, Digital Image Processing, Artificial Intelligence, Discrete Math, Statistics, Calculus",
		},
		Experience: []Experience{
			{
				Role:     "Business Analyst",
				Company:  "StackDX",
				Location: "Calgary, Alberta",
				Period:   "May 2025 – August 2025",
				Link:     "https://www.stackdx.com/",
				Description: []string{
					"Developed a user interface using C#, ASP.NET Razor, HTML, JavaScript, and CSS to display and interact with CSV-like files, allowing users to easily view, sort, and filter data in tables, charts, and reports. Handling over 900k previously unsupported files.",
					"Designed and implemented C# scripts to test and evaluate the performance of fine-tuned AI models, ensuring optimal classification accuracy and reliability for document processing tasks.",
					"Achieved over 95% classification accuracy by developing and training multiple machine learning models to categorize document content, improving automated data processing and reliability",
				},
			},
			{
				Role:     "Artificial Intelligence Research Assistant",
				Company:  "University of Alberta",
				Location: "Edmonton, Alberta",
				Period:   "May 2024 – August 2024",
				Link:     "https://www.ualberta.ca/",
				Description: []string{
					"Used AI to analyze toxicity of various comments in bug-tracking forums such as GitHub, StackOverflow, and Bugzilla",
					"Developed automated data processing and filtering pipelines in Python to enhance sentiment classification accuracy, eliminating noise, cleaning text, and organizing datasets to optimize AI-driven toxicity detection.",
					"Analyzed and handled over 5 million comments to statistically identify trends in online toxicity",
					"Under review publication of research paper to the ESEM 2025",
				},
			},
		},
		Projects: []Project{
			{
				Name:  "BlockBuddy (HackTheChange)",
				Tech:  "TypeScript, MongoDB, Express, React, Node.js",
				Date:  "November 2025",
				Video: "https://www.youtube.com/embed/uO3lSjInB1c",
				Description: []string{
					"Built an AI-assisted reporting experience capable of transforming camera uploads and descriptions into structured bylaw issues, automatically incorporating location and weather context to prioritize impact.",
					"Developed multi-channel community chat to facilitate neighbourhood, city, and private conversations with threaded discussions and inboxes, empowering residents to coordinate and escalate issues.",
					"Created geospatial map visualizations and a dynamic complaint feed.",
				},
			},
			{
				Name: "NASA Space Apps Challenge",
				Tech: "Next.js, TypeScript, TailwindCSS, PostgreSQL",
				Date: "October 2025",
				Description: []string{
					"Built a dynamic full-stack Next.js application capable of scraping and processing hundreds of research articles to automatically extract and rank impactful keywords, enabling quick discovery of meaningful connections across topics.",
					"Developed interactive mind maps and histograms to visualize frequency-based keyword relationships, empowering users to intuitively explore, compare, and interpret scientific themes within complex datasets.",
					"Integrated Google Gemini AI API to deliver real-time summarization and conversational insights, allowing users to interactively query and analyze large sets of research abstracts through a chat-like interface.",
				},
			},
			{
				Name: "University Course Availability Notifier",
				Tech: "Python, Selenium, BeautifulSoup, Discord API",
				Date: "January 2025",
				Description: []string{
					"Developed a web scraping tool using Selenium and BeautifulSoup to monitor university course availability in real time.",
					"Optimized script efficiency with headless browsing, dynamic HTML parsing, and randomized polling intervals to avoid detection.",
					"Integrated Discord notifications via webhooks to alert users when desired courses open up.",
				},
			},
			{
				Name: "Ray Tracing and 3D Rendering",
				Tech: "C",
				Date: "December 2024",
				Description: []string{
					"Developed a custom 3D ray tracer with sphere intersection, lighting, and shading",
					"Implemented core vector operations and color processing",
					"Optimized performance with dynamic memory allocation, Makefile automation, and efficient rendering techniques",
				},
			},
			{
				Name: "Slime World",
				Tech: "Java, Processing",
				Date: "Dec 2022 - April 2023",
				Description: []string{
					"Developed a 2D platformer game, implementing object-oriented programming with structured classes for players, enemies, platforms, and power-ups.",
					"Manually implemented physics-based mechanics, including gravity, jumping, and collision handling, without relying on external physics engines.",
					"Implemented collision detection and AI mechanics, enabling dynamic enemy behavior, player interactions, and projectile physics.",
				},
			},
		},
		Skills: []SkillCategory{
			{Name: "Languages", Skills: []string{"Java", "Python", "C", "C++", "C#", "SQL", "TypeScript", "JavaScript", "HTML/CSS"}},
			{Name: "Frameworks", Skills: []string{"ASP.NET", "Razor", "React", "Node.js", "Django"}},
			{Name: "Developer Tools", Skills: []string{"Git", "GitHub", "VS Code", "Visual Studio", "PyCharm", "IntelliJ", "Eclipse", "Microsoft Azure"}},
			{Name: "Libraries", Skills: []string{"pandas", "NumPy", "Matplotlib", "Scikit-Learn", "PyTorch", "ML.NET"}},
		},
	}
}
