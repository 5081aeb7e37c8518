package content

type Project struct {
	Name        string `json:"name"`
	Image       string `json:"img"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

const projectsPerRow = 3

var projects = []Project{
	{
		Name:        "Passgen",
		Image:       "passgen.png",
		Description: "A command-line tool to create secure passwords. Built in C++ and highly portable.",
		Link:        "https://github.com/dantespe/Passgen",
	},
	{
		Name:        "CAEN",
		Image:       "caen.png",
		Description: "A Dockerfile used to simulate on-campus CAEN environment. Used to run code in a sandbox.",
		Link:        "https://github.com/dantespe/caen",
	},
}

// ProjectRows returns the projects grouped into rows of three.
func ProjectRows() [][]Project {
	return chunk(projects, projectsPerRow)
}

// chunk always returns at least one row.
func chunk(items []Project, size int) [][]Project {
	rows := [][]Project{{}}
	for _, p := range items {
		if len(rows[len(rows)-1]) == size {
			rows = append(rows, []Project{})
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], p)
	}
	return rows
}
