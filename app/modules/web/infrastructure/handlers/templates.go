package webhandlers

import (
	"embed"
	"html/template"

	webdomain "github.com/Black-And-White-Club/retro-arcade/app/modules/web/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"medal": webdomain.Medal,
	"score": webdomain.FormatScore,
}

type pages struct {
	games       *template.Template
	game        *template.Template
	leaderboard *template.Template
	notFound    *template.Template
}

func parsePage(name string) *template.Template {
	return template.Must(template.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+name))
}

func loadPages() *pages {
	return &pages{
		games:       parsePage("games.html"),
		game:        parsePage("game.html"),
		leaderboard: parsePage("leaderboard.html"),
		notFound:    parsePage("notfound.html"),
	}
}
