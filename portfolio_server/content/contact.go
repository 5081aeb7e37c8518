package content

type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type About struct {
	Summary string `json:"summary"`
}

func Contact() []Link {
	return []Link{
		{Name: "GitHub", URL: "https://github.com/dantespe"},
		{Name: "Last.fm", URL: "https://www.last.fm/user/dantespe"},
	}
}

func AboutMe() About {
	return About{
		Summary: "Software engineer working on tools and infrastructure.",
	}
}
