package domain

// Built-in content used whenever the store has nothing usable. Every call
// returns a fresh value the caller may modify.

func DefaultHero() Hero {
	return Hero{
		Greeting:  "Hello, It's Me",
		Name:      OwnerName,
		Title:     "Frontend Developer",
		Bio:       "I specialize in crafting high-performance, visually stunning web experiences. With a focus on modern frameworks and cutting-edge design, I help brands stand out in the digital landscape.",
		ImageURL:  "https://picsum.photos/seed/kendric/800/800",
		Facebook:  "#",
		Twitter:   "#",
		Instagram: "#",
		LinkedIn:  "#",
	}
}

func DefaultAbout() About {
	return About{
		Heading:      "About Me",
		Subheading:   "Frontend Developer!",
		Description1: "I have always been passionate about the intersection of art and technology. My journey started with a simple HTML file and has evolved into building complex enterprise applications. I believe in writing clean code and creating intuitive user experiences.",
		Description2: "When I'm not coding, you'll find me exploring new design trends, contributing to open-source projects, or sharing my knowledge through technical blogging. My goal is to bridge the gap between imagination and digital reality.",
		ImageURL:     "https://picsum.photos/seed/kendric-about/800/800",
	}
}

func DefaultServices() []Service {
	return []Service{
		{
			ID:          "1",
			Title:       "Web Development",
			Description: "Building fast, responsive, and SEO-optimized websites using modern frameworks like React and Next.js.",
			Icon:        IconCode,
		},
		{
			ID:          "2",
			Title:       "Graphic Design",
			Description: "Creating visually stunning brand identities, logos, and digital marketing materials that resonate.",
			Icon:        IconPen,
		},
		{
			ID:          "3",
			Title:       "Digital Marketing",
			Description: "Driving growth through targeted social media campaigns, content strategy, and data-driven insights.",
			Icon:        IconChart,
		},
	}
}

func DefaultProjects() []Project {
	return []Project{
		{
			ID:              "1",
			Title:           "E-Commerce Platform",
			Category:        "Web App",
			Description:     "A full-stack commerce solution built with React and Node.js.",
			LongDescription: "This high-performance E-Commerce platform features real-time inventory tracking, a secure Stripe-integrated checkout flow, and a custom-built administrative dashboard for product management. Optimized for speed and mobile responsiveness.",
			TechStack:       "React, Node.js, Tailwind CSS, Stripe API, Redux",
			Image:           "https://images.unsplash.com/photo-1557821552-17105176677c?q=80&w=1000&auto=format&fit=crop",
			Gallery:         []string{},
			Link:            "#",
			GitHub:          "#",
		},
		{
			ID:              "2",
			Title:           "AI Dashboard",
			Category:        "UI Design",
			Description:     "Modern analytical dashboard with real-time data visualization.",
			LongDescription: "A comprehensive data visualization suite designed for enterprise-level analytics. It includes dynamic charting using Recharts, dark-mode optimized aesthetics, and an intuitive layout that handles massive datasets with ease.",
			TechStack:       "React, Framer Motion, Recharts, TypeScript",
			Image:           "https://images.unsplash.com/photo-1551288049-bebda4e38f71?q=80&w=1000&auto=format&fit=crop",
			Gallery:         []string{},
			Link:            "#",
			GitHub:          "#",
		},
		{
			ID:              "3",
			Title:           "Social Connect",
			Category:        "Mobile App",
			Description:     "Connect with professionals across the globe seamlessly.",
			LongDescription: "A cross-platform mobile experience focused on professional networking. Features include real-time messaging using Socket.io, AI-driven professional matching, and an encrypted profile storage system.",
			TechStack:       "React Native, Firebase, Socket.io, GraphQL",
			Image:           "https://images.unsplash.com/photo-1611162617474-5b21e879e113?q=80&w=1000&auto=format&fit=crop",
			Gallery:         []string{},
			Link:            "#",
			GitHub:          "#",
		},
		{
			ID:              "4",
			Title:           "Task Master",
			Category:        "Productivity",
			Description:     "A minimalist task management tool for agile teams.",
			LongDescription: "Designed for developers, Task Master removes the clutter of traditional tools. It supports Kanban boards, time-tracking extensions, and deep integration with Git platforms for automated status updates.",
			TechStack:       "Next.js, PostgreSQL, Prisma, Tailwind",
			Image:           "https://images.unsplash.com/photo-1484480974693-6ca0a78fb36b?q=80&w=1000&auto=format&fit=crop",
			Gallery:         []string{},
			Link:            "#",
			GitHub:          "#",
		},
		{
			ID:              "5",
			Title:           "Crypto Wallet",
			Category:        "Web3",
			Description:     "Secure and fast cryptocurrency management interface.",
			LongDescription: "A decentralized wallet interface that allows users to manage multiple chains (Ethereum, Polygon, Solana) from a single view. Includes real-time gas fee estimation and secure private key management.",
			TechStack:       "Web3.js, React, Ethers.js, Solidity",
			Image:           "https://images.unsplash.com/photo-1621416894569-0f39ed31d247?q=80&w=1000&auto=format&fit=crop",
			Gallery:         []string{},
			Link:            "#",
			GitHub:          "#",
		},
		{
			ID:              "6",
			Title:           "Health Tracker",
			Category:        "Healthcare",
			Description:     "IoT integrated fitness and health monitoring system.",
			LongDescription: "A modern healthcare dashboard that syncs with wearable devices to provide real-time heart rate, sleep quality, and daily activity metrics. Features customized health goal setting and trend analysis.",
			TechStack:       "TypeScript, AWS IoT, React, Chart.js",
			Image:           "https://images.unsplash.com/photo-1576091160550-2173dba999ef?q=80&w=1000&auto=format&fit=crop",
			Gallery:         []string{},
			Link:            "#",
			GitHub:          "#",
		},
	}
}

func DefaultExperience() []Experience {
	return []Experience{
		{
			ID:          "1",
			Role:        "Senior Frontend Developer",
			Company:     "Tech Giant Inc.",
			Period:      "2021 - Present",
			Description: "Leading the UI/UX team in developing scalable design systems and high-performance React applications.",
			Order:       0,
		},
		{
			ID:          "2",
			Role:        "Full Stack Engineer",
			Company:     "StartUp Hub",
			Period:      "2019 - 2021",
			Description: "Built microservices and responsive web interfaces for a rapidly growing SaaS platform.",
			Order:       1,
		},
		{
			ID:          "3",
			Role:        "Junior Web Developer",
			Company:     "Creative Agency",
			Period:      "2017 - 2019",
			Description: "Developed custom WordPress themes and static landing pages for diverse client portfolios.",
			Order:       2,
		},
	}
}

func DefaultSkills() []Skill {
	skills := []Skill{
		{ID: "1", Name: "React", Percentage: 95, Icon: "⚛️"},
		{ID: "2", Name: "TypeScript", Percentage: 90, Icon: "📘"},
		{ID: "3", Name: "Tailwind CSS", Percentage: 95, Icon: "🎨"},
		{ID: "4", Name: "Node.js", Percentage: 85, Icon: "🟢"},
		{ID: "5", Name: "UI/UX Design", Percentage: 88, Icon: "✨"},
		{ID: "6", Name: "Next.js", Percentage: 92, Icon: "🚀"},
	}
	SortSkills(skills)
	return skills
}

// DefaultFor returns the built-in value for kind: a struct for singletons,
// a slice for collections, nil for an unknown kind.
func DefaultFor(kind Kind) any {
	switch kind {
	case KindHero:
		return DefaultHero()
	case KindAbout:
		return DefaultAbout()
	case KindServices:
		return DefaultServices()
	case KindProjects:
		return DefaultProjects()
	case KindExperience:
		return DefaultExperience()
	case KindSkills:
		return DefaultSkills()
	}
	return nil
}

// New-item templates offered by the editor.

func NewService() Service {
	return Service{Icon: IconCode}
}

func NewProject() Project {
	return Project{Category: "Web App", Gallery: []string{}}
}

// NewExperience places the new entry after the existing ones.
func NewExperience(existing int) Experience {
	return Experience{Order: existing}
}

func NewSkill() Skill {
	return Skill{Percentage: 90, Icon: "⚛️"}
}
