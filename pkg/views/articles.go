package views

import (
	"context"
	"strings"
	"time"

	bspinner "github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"

	"github.com/oto-sh/oto/pkg/api"
)

type articlesLoadedMsg struct {
	articles []api.Article
	err      error
}

type articleBodyMsg struct {
	id      string
	article api.Article
	err     error
}

// ArticlesModel lists published newsletters and previews the selected one,
// with the markdown body rendered through glamour. The list view and the
// reading view share the window.
type ArticlesModel struct {
	env      Env
	spin     bspinner.Model
	vp       viewport.Model
	articles []api.Article
	cursor   int
	loading  bool
	reading  bool
	width    int
	height   int
}

func NewArticles(env Env) ArticlesModel {
	sp := bspinner.New()
	sp.Spinner = bspinner.Dot
	return ArticlesModel{env: env, spin: sp, vp: viewport.New(80, 20), loading: true}
}

func (m ArticlesModel) Init() tea.Cmd {
	env := m.env
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		articles, err := env.API.ListArticles(ctx)
		return articlesLoadedMsg{articles: articles, err: err}
	})
}

func (m ArticlesModel) openSelected() tea.Cmd {
	env := m.env
	id := m.articles[m.cursor].ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		article, err := env.API.GetArticle(ctx, id)
		return articleBodyMsg{id: id, article: article, err: err}
	}
}

func (m ArticlesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case articlesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			log.Warn().Err(msg.err).Str("component", "articles_view").Msg("article list fetch failed, showing empty state")
			return m, nil
		}
		m.articles = msg.articles
		return m, nil
	case articleBodyMsg:
		if msg.err != nil {
			log.Warn().Err(msg.err).Str("component", "articles_view").Str("article_id", msg.id).Msg("article fetch failed")
			return m, nil
		}
		m.reading = true
		m.vp.SetContent(m.renderBody(msg.article))
		m.vp.GotoTop()
		return m, nil
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = max(4, msg.Height-2)
		return m, nil
	case tea.KeyMsg:
		if m.reading {
			if msg.String() == "esc" || msg.String() == "backspace" {
				m.reading = false
				return m, nil
			}
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.articles)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.articles) > 0 {
				return m, m.openSelected()
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return m, cmd
}

func (m ArticlesModel) renderBody(a api.Article) string {
	md := "# " + a.Title + "\n\n" + a.Body
	width := m.width
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(min(width-2, 100)))
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimLeft(out, "\n")
}

func (m ArticlesModel) View() string {
	if m.reading {
		return m.vp.View() + "\n" + dimStyle.Render("esc: back to list · ↑/↓: scroll")
	}
	out := titleStyle.Render("Articles") + "\n"
	if m.loading {
		return out + m.spin.View() + dimStyle.Render(" loading articles…")
	}
	if len(m.articles) == 0 {
		return out + emptyState("articles", "Publish your first newsletter from the composer.")
	}
	for i, a := range m.articles {
		line := a.Title
		if a.PublishedAt != "" {
			line += "  " + dimStyle.Render(a.PublishedAt)
		}
		if i == m.cursor {
			out += selectedStyle.Render("› "+line) + "\n"
		} else {
			out += itemStyle.Render(line) + "\n"
		}
	}
	out += "\n" + dimStyle.Render("enter: read")
	return out
}
