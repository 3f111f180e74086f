package web

import (
	"context"
	"html"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

type LeaderboardRow struct {
	Name  string
	Total int
	Games int
}

func Leaderboard(rows []LeaderboardRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Puzzle Week Leaderboard</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Puzzle Week</span>
        <h1>Leaderboard</h1>
        <p>Scores refresh live as attempts land.</p>
      </header>
      <section class="panel">
        <table class="board">
          <thead><tr><th>#</th><th>Player</th><th>Games</th><th>Points</th></tr></thead>
          <tbody id="board">
`); err != nil {
			return err
		}
		for i, row := range rows {
			line := `            <tr><td>` + strconv.Itoa(i+1) + `</td><td>` +
				html.EscapeString(row.Name) + `</td><td>` + strconv.Itoa(row.Games) +
				`</td><td>` + strconv.Itoa(row.Total) + `</td></tr>` + "\n"
			if _, err := io.WriteString(w, line); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `          </tbody>
        </table>
      </section>
    </main>
    <script src="/static/leaderboard.js"></script>
  </body>
</html>
`)
		return err
	})
}
