// Package content holds the static content of the portfolio pages.
package content

import "time"

type Job struct {
	Title      string   `json:"title"`
	Department string   `json:"department"`
	Company    string   `json:"company"`
	Timeline   string   `json:"timeline"`
	Points     []string `json:"points"`
}

var (
	googleStart = time.Date(2019, time.June, 1, 0, 0, 0, 0, time.UTC)
	arcTSEnd    = time.Date(2019, time.May, 31, 0, 0, 0, 0, time.UTC)
)

// Resume returns the job timeline as of now, most recent first.
func Resume(now time.Time) []Job {
	jobs := make([]Job, 0, 5)

	google := Job{
		Title:      "Software Engineer, Tools and Infrastructure",
		Department: "Google Cloud Platform",
		Company:    "Google",
		Timeline:   "June 2019 - Present",
		Points:     []string{},
	}
	if !now.After(googleStart) {
		google.Title = "Incoming " + google.Title
		google.Timeline = "Starting June 2019"
	}
	jobs = append(jobs, google)

	arcTS := Job{
		Title:      "Computer Consultant/Engineer",
		Department: "Advanced Research Computing",
		Company:    "the University of Michigan",
		Timeline:   "May 2016 - May 2019",
		Points: []string{
			"Designed system infrastructure for continuous integration development across 1300+ high-performing computing (HPC) clusters",
			"Engineered container application allowing for a horizontal scalable system",
			"Prototyped a continuous integration (CI) framework to increase workplace productivity",
		},
	}
	if now.Before(arcTSEnd) {
		arcTS.Timeline = "May 2016 - Present"
	}
	jobs = append(jobs, arcTS)

	jobs = append(jobs,
		Job{
			Title:      "Information Technology Intern",
			Department: "Cyber Intelligence Technologies",
			Company:    "The Boeing Company",
			Timeline:   "May 2018 - Aug 2018",
			Points: []string{
				"Diminished system downtime by implementing a web portal to monitor application status",
				"Integrated backend support to import service data into web portal application data",
				"Investigated network security procedures to streamline cyber security incident responses",
			},
		},
		Job{
			Title:    "Software Developer Intern",
			Company:  "City Side Ventures",
			Timeline: "May 2016 - Dec 2016",
			Points: []string{
				"Delivered production Django web applications to startups preparing for Series A funding",
				"Established development workflow to increase deadline success rate from 70% to 90%",
				"Collaborated with a large team of developers in an agile environment",
			},
		},
		Job{
			Title:      "Intern",
			Department: "Information Technology Services",
			Company:    "the University of Michigan",
			Timeline:   "May 2016 - Aug 2016",
			Points: []string{
				"Implemented core components for a diversity, equity, and inclusion website for faculty",
				"Orchestrated modular development environment for easy turn-over and management",
				"Deployed robust, automated test suites to alleviate development processes",
			},
		},
	)
	return jobs
}
